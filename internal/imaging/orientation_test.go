package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// quad is a 2x2 image:
//
//	red   green
//	blue  white
func quad() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, green)
	img.SetRGBA(0, 1, blue)
	img.SetRGBA(1, 1, white)
	return img
}

func pixels(img image.Image) [2][2]color.RGBA {
	rgba := img.(*image.RGBA)
	return [2][2]color.RGBA{
		{rgba.RGBAAt(0, 0), rgba.RGBAAt(1, 0)},
		{rgba.RGBAAt(0, 1), rgba.RGBAAt(1, 1)},
	}
}

func TestOrientTransforms(t *testing.T) {
	tests := []struct {
		o    Orientation
		want [2][2]color.RGBA
	}{
		{OrientUp, [2][2]color.RGBA{{red, green}, {blue, white}}},
		{OrientDown, [2][2]color.RGBA{{white, blue}, {green, red}}},
		{OrientLeft, [2][2]color.RGBA{{green, white}, {red, blue}}},
		{OrientRight, [2][2]color.RGBA{{blue, red}, {white, green}}},
		{OrientUpMirrored, [2][2]color.RGBA{{green, red}, {white, blue}}},
		{OrientDownMirrored, [2][2]color.RGBA{{blue, white}, {red, green}}},
		{OrientLeftMirrored, [2][2]color.RGBA{{white, green}, {blue, red}}},
		{OrientRightMirrored, [2][2]color.RGBA{{red, blue}, {green, white}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pixels(orient(quad(), tt.o)), "orientation %d", tt.o)
	}
}

func TestOrientSwapsDimensions(t *testing.T) {
	data := encodeTestJPEG(t, solid(40, 20, red))

	out, err := Orient(data, int(OrientRight))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestOrientUpIsPassthrough(t *testing.T) {
	data := encodeTestJPEG(t, solid(10, 10, red))
	out, err := Orient(data, int(OrientUp))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestOrientInvalid(t *testing.T) {
	_, err := Orient(encodeTestJPEG(t, solid(10, 10, red)), 8)
	assert.Error(t, err)

	_, err = Orient([]byte("garbage"), int(OrientDown))
	assert.Error(t, err)
}
