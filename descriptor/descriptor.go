/*
Package descriptor implements the Deep Zoom Image (.dzi) descriptor written
alongside each tile pyramid.

The descriptor records the tile format, overlap, tile size and full
resolution dimensions, which is everything a viewer needs to address tiles
as {name}_files/{level}/{col}_{row}.{format}.
*/
package descriptor

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"mime"
	"path"
	"strconv"
)

const (
	// Namespace is the Deep Zoom schema namespace.
	Namespace = "http://schemas.microsoft.com/deepzoom/2008"

	// Extension is the descriptor file extension
	Extension = ".dzi"

	filesSuffix = "_files"
)

func init() {
	// Not in the default MIME tables
	_ = mime.AddExtensionType(Extension, "application/xml")
}

// Size holds the full resolution image dimensions.
type Size struct {
	Width  int `xml:"Width,attr"`
	Height int `xml:"Height,attr"`
}

// Descriptor is the .dzi document. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Descriptor struct {
	XMLName  xml.Name `xml:"Image"`
	Xmlns    string   `xml:"xmlns,attr"`
	Format   string   `xml:"Format,attr"`
	Overlap  int      `xml:"Overlap,attr"`
	TileSize int      `xml:"TileSize,attr"`
	Size     Size     `xml:"Size"`
}

// New returns a descriptor for a pyramid of the given dimensions
func New(format string, tileSize, overlap, width, height int) *Descriptor {
	return &Descriptor{
		Xmlns:    Namespace,
		Format:   format,
		Overlap:  overlap,
		TileSize: tileSize,
		Size: Size{
			Width:  width,
			Height: height,
		},
	}
}

// Validate checks the descriptor fields are usable
func (d *Descriptor) Validate() error {
	switch {
	case d.Format == "":
		return errors.New("descriptor: missing format")
	case d.TileSize <= 0:
		return fmt.Errorf("descriptor: invalid tile size %d", d.TileSize)
	case d.Overlap < 0:
		return fmt.Errorf("descriptor: invalid overlap %d", d.Overlap)
	case d.Size.Width <= 0 || d.Size.Height <= 0:
		return fmt.Errorf("descriptor: invalid size %dx%d", d.Size.Width, d.Size.Height)
	}
	return nil
}

// MaxLevel returns the index of the full resolution level.
func (d *Descriptor) MaxLevel() int {
	var n int
	for w, h := d.Size.Width, d.Size.Height; w > 1 || h > 1; n++ {
		w, h = (w+1)/2, (h+1)/2
	}
	return n
}

// MarshalBinary encodes the descriptor as an XML document. The output only
// depends on the field values.
func (d *Descriptor) MarshalBinary() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	dup := *d
	dup.XMLName = xml.Name{}
	if dup.Xmlns == "" {
		dup.Xmlns = Namespace
	}

	b := new(bytes.Buffer)
	b.WriteString(xml.Header)

	e := xml.NewEncoder(b)
	e.Indent("", "  ")
	if err := e.Encode(&dup); err != nil {
		return nil, err
	}
	b.WriteByte('\n')

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the descriptor from an XML document
func (d *Descriptor) UnmarshalBinary(b []byte) error {
	var tmp Descriptor
	if err := xml.Unmarshal(b, &tmp); err != nil {
		return err
	}
	if err := tmp.Validate(); err != nil {
		return err
	}
	// The namespace is carried by Xmlns
	tmp.XMLName = xml.Name{}
	*d = tmp
	return nil
}

// Key returns the descriptor key for the pyramid called name.
func Key(name string) string {
	return name + Extension
}

// LevelKey returns the container key holding the tiles of a level.
func LevelKey(name string, level int) string {
	return path.Join(name+filesSuffix, strconv.Itoa(level))
}

// TileKey returns the key of a single tile.
func (d *Descriptor) TileKey(name string, level, col, row int) string {
	return TileKey(name, d.Format, level, col, row)
}

// TileKey returns the key of a single tile encoded in format.
func TileKey(name, format string, level, col, row int) string {
	return path.Join(LevelKey(name, level), fmt.Sprintf("%d_%d.%s", col, row, format))
}
