// Package imaging prepares item photos for storage and serving.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension bounds the longer side of a stored photo.
	MaxDimension = 1024
	// JPEGQuality is used for every stored or re-oriented photo.
	JPEGQuality = 85
	// StoredMIME is the content type of every processed photo.
	StoredMIME = "image/jpeg"
)

var (
	// ErrTooLarge is returned when an upload exceeds its byte limit.
	ErrTooLarge = errors.New("photo too large")
	// ErrUnsupported is returned for anything but JPEG or PNG input.
	ErrUnsupported = errors.New("unsupported photo format")
)

// Photo is an item photo ready to be stored with its item.
type Photo struct {
	Data        []byte
	MIME        string
	Orientation Orientation
	Width       int
	Height      int
}

// Process reads at most limit bytes of a JPEG or PNG upload, shrinks it to
// fit MaxDimension and re-encodes it as JPEG. The orientation is recorded on
// the photo and applied when it is served. A limit of 0 or less disables the
// size check.
func Process(r io.Reader, limit int64, o Orientation) (*Photo, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid orientation %d", o)
	}

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}

	// Client-supplied content types are ignored.
	switch detected := http.DetectContentType(data); detected {
	case "image/jpeg", "image/png":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}
	img = fit(img, MaxDimension)

	out, err := encodeJPEG(img)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &Photo{
		Data:        out,
		MIME:        StoredMIME,
		Orientation: o,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales img down, keeping its aspect ratio, so neither side exceeds
// maxDim. Smaller images are returned untouched.
func fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
