package palette

import "image/color"

// wool lists the sixteen wool blocks with their averaged texture colors.
var wool = []DrawingBlock{
	{ID: "minecraft:white_wool", Color: color.RGBA{234, 236, 237, 255}},
	{ID: "minecraft:orange_wool", Color: color.RGBA{241, 118, 20, 255}},
	{ID: "minecraft:magenta_wool", Color: color.RGBA{190, 68, 180, 255}},
	{ID: "minecraft:light_blue_wool", Color: color.RGBA{58, 175, 217, 255}},
	{ID: "minecraft:yellow_wool", Color: color.RGBA{249, 198, 40, 255}},
	{ID: "minecraft:lime_wool", Color: color.RGBA{112, 185, 26, 255}},
	{ID: "minecraft:pink_wool", Color: color.RGBA{238, 141, 172, 255}},
	{ID: "minecraft:gray_wool", Color: color.RGBA{63, 68, 72, 255}},
	{ID: "minecraft:light_gray_wool", Color: color.RGBA{142, 142, 135, 255}},
	{ID: "minecraft:cyan_wool", Color: color.RGBA{21, 138, 145, 255}},
	{ID: "minecraft:purple_wool", Color: color.RGBA{122, 42, 173, 255}},
	{ID: "minecraft:blue_wool", Color: color.RGBA{53, 57, 157, 255}},
	{ID: "minecraft:brown_wool", Color: color.RGBA{114, 72, 41, 255}},
	{ID: "minecraft:green_wool", Color: color.RGBA{85, 110, 28, 255}},
	{ID: "minecraft:red_wool", Color: color.RGBA{161, 39, 35, 255}},
	{ID: "minecraft:black_wool", Color: color.RGBA{21, 21, 26, 255}},
}

// Default returns a color map over the wool blocks, usable for every kind,
// with stone as the fallback.
func Default() *ColorMap {
	blocks := make([]DrawingBlock, len(wool))
	for i, b := range wool {
		b.Kinds = KindAll
		blocks[i] = b
	}
	return NewColorMap(blocks, DrawingBlock{
		ID:    DefaultFallback,
		Color: color.RGBA{125, 125, 125, 255},
		Kinds: KindAll,
	})
}
