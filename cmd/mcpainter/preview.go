package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/SBPrime/MCPainter-sub001/internal/config"
	"github.com/SBPrime/MCPainter-sub001/pkg/render"
)

// turnStep is how far one key press turns the view, in degrees.
const turnStep = 15.0

// SpringAxis eases an angle towards its target with a harmonica spring.
type SpringAxis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

// NewSpringAxis creates an axis resting at start.
func NewSpringAxis(fps int, frequency, damping, start float64) SpringAxis {
	return SpringAxis{
		Position: start,
		Target:   start,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Update advances the spring by one frame.
func (a *SpringAxis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

// ViewState is the camera heading and elevation of the preview, in degrees.
type ViewState struct {
	Yaw, Pitch SpringAxis
	AutoTurn   bool

	cfg config.PreviewConfig
}

// NewViewState starts turning slowly around the drawing.
func NewViewState(cfg config.PreviewConfig) *ViewState {
	v := &ViewState{cfg: cfg}
	v.Reset()
	return v
}

// Reset returns to the initial view.
func (v *ViewState) Reset() {
	v.Yaw = NewSpringAxis(v.cfg.FPS, v.cfg.Frequency, v.cfg.Damping, 45)
	v.Pitch = NewSpringAxis(v.cfg.FPS, v.cfg.Frequency, v.cfg.Damping, v.cfg.Pitch)
	v.AutoTurn = true
}

// Turn moves the heading target by delta degrees.
func (v *ViewState) Turn(delta float64) {
	v.Yaw.Target += delta
}

// Tilt moves the elevation target, keeping it short of straight up or down.
func (v *ViewState) Tilt(delta float64) {
	v.Pitch.Target = max(-85, min(85, v.Pitch.Target+delta))
}

// Step advances one frame.
func (v *ViewState) Step() {
	if v.AutoTurn {
		v.Yaw.Target += v.cfg.TurnSpeed / float64(v.cfg.FPS)
	}
	v.Yaw.Update()
	v.Pitch.Update()
}

// Angles returns the heading and elevation in radians.
func (v *ViewState) Angles() (yaw, pitch float64) {
	return v.Yaw.Position * math.Pi / 180, v.Pitch.Position * math.Pi / 180
}

func runPreview(ctx context.Context, cfg config.PreviewConfig, scene *render.Scene) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	// two pixel rows per terminal row
	preview := render.NewPreview(width, height*2)
	preview.SetScene(scene)
	view := NewViewState(cfg)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				preview.Resize(width, height*2)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "q", "ctrl+c"):
					return nil
				case ev.MatchString("a", "left"):
					view.AutoTurn = false
					view.Turn(-turnStep)
				case ev.MatchString("d", "right"):
					view.AutoTurn = false
					view.Turn(turnStep)
				case ev.MatchString("w", "up"):
					view.Tilt(turnStep / 3)
				case ev.MatchString("s", "down"):
					view.Tilt(-turnStep / 3)
				case ev.MatchString("space"):
					view.AutoTurn = !view.AutoTurn
				case ev.MatchString("r"):
					view.Reset()
				}
			}

		case <-ticker.C:
			view.Step()
			fb := preview.Render(view.Angles())
			fb.Draw(term, uv.Rect(0, 0, width, height))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
