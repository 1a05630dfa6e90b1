package placeholder

import (
	"bytes"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Options{
		Width:      320,
		Height:     180,
		Text:       "320 x 180",
		Background: DefaultBackground,
		Foreground: DefaultForeground,
	})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 180, img.Bounds().Dy())

	// Corners keep the background, the label puts foreground pixels in the middle band
	assert.Equal(t, DefaultBackground, color.RGBAModel.Convert(img.At(0, 0)))

	found := false
	for x := 0; x < 320 && !found; x++ {
		for y := 45; y < 135; y++ {
			if color.RGBAModel.Convert(img.At(x, y)) == DefaultForeground {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected label pixels")
}

func TestRender_TextWiderThanImage(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Options{Width: 10, Height: 10, Text: "a very long label", Background: DefaultBackground})
	require.NoError(t, err)
}

func TestRender_InvalidDimensions(t *testing.T) {
	for _, o := range []Options{{Width: 0, Height: 10}, {Width: 10, Height: -1}, {Width: MaxDimension + 1, Height: 10}} {
		assert.Error(t, Render(&bytes.Buffer{}, o))
	}
}

func TestRender_TextLimit(t *testing.T) {
	o := Options{Width: 10, Height: 10, Background: DefaultBackground}

	o.Text = strings.Repeat("W", 200000)
	assert.ErrorIs(t, Render(io.Discard, o), ErrTextTooLong)

	o.Text = strings.Repeat("W", MaxTextLength+1)
	assert.ErrorIs(t, o.Validate(), ErrTextTooLong)

	// Runes, not bytes
	o.Text = strings.Repeat("é", MaxTextLength)
	assert.NoError(t, Render(io.Discard, o))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = ParseHexColor("abc")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}, c)

	for _, bad := range []string{"", "#12", "zzzzzz", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}
