package imaging

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Orientation describes how stored pixels must be transformed to appear
// upright. Values are persisted with each photo.
type Orientation int

const (
	OrientUp Orientation = iota
	OrientDown
	OrientLeft
	OrientRight
	OrientUpMirrored
	OrientDownMirrored
	OrientLeftMirrored
	OrientRightMirrored
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	return o >= OrientUp && o <= OrientRightMirrored
}

// Orient decodes data, applies the orientation correction and re-encodes the
// result as JPEG. OrientUp returns data unchanged.
func Orient(data []byte, orientation int) ([]byte, error) {
	o := Orientation(orientation)
	if !o.Valid() {
		return nil, fmt.Errorf("invalid orientation %d", orientation)
	}
	if o == OrientUp {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	return encodeJPEG(orient(img, o))
}

// orient returns a copy of img transformed by o.
func orient(img image.Image, o Orientation) image.Image {
	b := img.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)

	w, h := b.Dx(), b.Dy()
	var dst *image.RGBA
	var from func(x, y int) (int, int)

	switch o {
	case OrientDown:
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		from = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case OrientLeft:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		from = func(x, y int) (int, int) { return w - 1 - y, x }
	case OrientRight:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		from = func(x, y int) (int, int) { return y, h - 1 - x }
	case OrientUpMirrored:
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		from = func(x, y int) (int, int) { return w - 1 - x, y }
	case OrientDownMirrored:
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		from = func(x, y int) (int, int) { return x, h - 1 - y }
	case OrientLeftMirrored:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		from = func(x, y int) (int, int) { return w - 1 - y, h - 1 - x }
	case OrientRightMirrored:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		from = func(x, y int) (int, int) { return y, x }
	default:
		return src
	}

	db := dst.Bounds()
	for y := 0; y < db.Dy(); y++ {
		for x := 0; x < db.Dx(); x++ {
			sx, sy := from(x, y)
			dst.SetRGBA(x, y, src.RGBAAt(sx, sy))
		}
	}
	return dst
}
