// Package session keeps per-actor drawing settings and makes sure an actor
// runs one drawing at a time.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/SBPrime/MCPainter-sub001/pkg/palette"
)

// ErrBusy is returned by Begin while the actor already has a drawing running.
var ErrBusy = errors.New("actor already has a drawing in progress")

// Settings are the choices an actor made for its drawings.
type Settings struct {
	PaletteName string
	Colors      *palette.ColorMap
	Dither      bool
}

type actor struct {
	settings Settings
	busy     bool
}

// Store holds every known actor. The zero value is not usable; use NewStore.
type Store struct {
	defaults Settings

	mu     sync.Mutex
	actors map[uuid.UUID]*actor
}

// NewStore creates a store whose actors start with defaults.
func NewStore(defaults Settings) *Store {
	return &Store{
		defaults: defaults,
		actors:   make(map[uuid.UUID]*actor),
	}
}

// NewActor registers a fresh actor and returns its id.
func (s *Store) NewActor() uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.actors[id] = &actor{settings: s.defaults}
	s.mu.Unlock()
	return id
}

func (s *Store) get(id uuid.UUID) *actor {
	a, ok := s.actors[id]
	if !ok {
		a = &actor{settings: s.defaults}
		s.actors[id] = a
	}
	return a
}

// Settings returns the actor's settings; unknown actors get the defaults.
func (s *Store) Settings(id uuid.UUID) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id).settings
}

// SetPalette switches the actor's color map.
func (s *Store) SetPalette(id uuid.UUID, name string, colors *palette.ColorMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(id)
	a.settings.PaletteName = name
	a.settings.Colors = colors
}

// SetDither toggles error diffusion for the actor's images.
func (s *Store) SetDither(id uuid.UUID, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(id).settings.Dither = on
}

// Begin marks the actor busy. The returned release must be called once the
// drawing ends; calling it more than once is harmless.
func (s *Store) Begin(id uuid.UUID) (release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(id)
	if a.busy {
		return nil, ErrBusy
	}
	a.busy = true

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			a.busy = false
			s.mu.Unlock()
		})
	}, nil
}

// Busy reports whether the actor has a drawing running.
func (s *Store) Busy(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.actors[id]
	return ok && a.busy
}

// Forget drops the actor. A running drawing keeps its release working.
func (s *Store) Forget(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.actors, id)
}

// Len returns the number of known actors.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actors)
}
