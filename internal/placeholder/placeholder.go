// Package placeholder renders solid-colour PNG images with a centred text label.
package placeholder

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	MaxDimension = 4000

	// MaxTextLength caps the label in runes. The label is drawn at native
	// size before scaling, so its memory grows with the text, not the image.
	MaxTextLength = 256
)

var (
	DefaultBackground = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	DefaultForeground = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

// Options describes the image to render.
type Options struct {
	Width      int
	Height     int
	Text       string
	Background color.RGBA
	Foreground color.RGBA
}

var (
	ErrInvalidSize = fmt.Errorf("dimensions must be between 1 and %d pixels", MaxDimension)
	ErrTextTooLong = fmt.Errorf("text must be at most %d characters", MaxTextLength)
)

// Validate checks the dimensions are within 1..MaxDimension and the text
// is at most MaxTextLength runes.
func (o Options) Validate() error {
	if o.Width < 1 || o.Width > MaxDimension || o.Height < 1 || o.Height > MaxDimension {
		return ErrInvalidSize
	}
	if utf8.RuneCountInString(o.Text) > MaxTextLength {
		return ErrTextTooLong
	}
	return nil
}

// Render draws the image described by o and encodes it to w as PNG.
func Render(w io.Writer, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.Background), image.Point{}, draw.Src)

	if o.Text != "" {
		drawLabel(img, o.Text, o.Foreground)
	}

	return png.Encode(w, img)
}

// drawLabel renders text with the fixed 7x13 face and scales it up by the
// largest whole factor that fits 80% of the width and half the height.
func drawLabel(img *image.RGBA, text string, fg color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face, Src: image.NewUniform(fg)}

	textW := d.MeasureString(text).Ceil()
	textH := face.Metrics().Height.Ceil()
	if textW == 0 || textH == 0 {
		return
	}

	label := image.NewRGBA(image.Rect(0, 0, textW, textH))
	d.Dst = label
	d.Dot = fixed.P(0, face.Metrics().Ascent.Ceil())
	d.DrawString(text)

	b := img.Bounds()
	scale := min(b.Dx()*8/10/textW, b.Dy()/2/textH)
	if scale < 1 {
		scale = 1
	}

	w, h := textW*scale, textH*scale
	x0, y0 := (b.Dx()-w)/2, (b.Dy()-h)/2
	draw.NearestNeighbor.Scale(img, image.Rect(x0, y0, x0+w, y0+h), label, label.Bounds(), draw.Over, nil)
}

// ParseHexColor parses "rgb", "rrggbb" or either with a leading '#'.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
