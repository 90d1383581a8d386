package renderer

import "image"

// TileSize is the edge length of a dispatch tile. Work is grouped into
// fixed 8x8 pixel tiles handed to the worker pool.
const TileSize = 8

// Tile is a rectangular region of the frame rendered by one task
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid creates a grid of tiles covering the entire frame
func NewTileGrid(width, height int) []Tile {
	tilesX := (width + TileSize - 1) / TileSize // Ceiling division
	tilesY := (height + TileSize - 1) / TileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	tileID := 0

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * TileSize
			y0 := tileY * TileSize
			x1 := min(x0+TileSize, width) // Don't exceed frame bounds
			y1 := min(y0+TileSize, height)

			tiles = append(tiles, Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}
