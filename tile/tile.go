/*
Package tile implements the encoder for individual Deep Zoom tiles.

Every tile is written as a baseline JPEG at a fixed quality so that all tiles
in a pyramid share the same format string and file extension, which are
recorded in the pyramid descriptor.
*/
package tile

const (
	// Format is the descriptor format string for encoded tiles.
	Format = "jpg"
	// Extension is the file extension of encoded tiles.
	Extension = "." + Format
	// Quality is the JPEG quality used for every tile.
	Quality = 85
	// DefaultSize is the default edge length of a tile in pixels.
	DefaultSize = 256
)
