package ascii

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"cascii/internal/faults"
)

// RGB is one cell's color in a color frame.
type RGB struct {
	R, G, B uint8
}

// Frame is one rendered text frame plus its optional color grid.
type Frame struct {
	Columns int
	Rows    int
	Text    string
	Colors  []RGB
}

// ConvertImage renders img into a character grid.
func ConvertImage(img image.Image, opts Options) Frame {
	bounds := img.Bounds()
	cols := opts.columns
	rows := opts.rows(bounds.Dx(), bounds.Dy())

	scaled := resize.Resize(uint(cols), uint(rows), img, resize.Lanczos3)

	var text strings.Builder
	text.Grow(rows * (cols + 1))
	var colors []RGB
	if opts.color {
		colors = make([]RGB, 0, rows*cols)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, g, b, _ := scaled.At(x, y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			text.WriteByte(glyphFor(r8, g8, b8, opts.luminance))
			if opts.color {
				colors = append(colors, RGB{R: r8, G: g8, B: b8})
			}
		}
		text.WriteByte('\n')
	}

	return Frame{Columns: cols, Rows: rows, Text: text.String(), Colors: colors}
}

// ConvertImageFile renders the image at path and writes the text frame (and
// color companion when enabled) into dir under name.txt. It returns the
// bytes written.
func ConvertImageFile(path, dir, name string, opts Options) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, faults.Wrap(faults.ErrIO, "ascii", "convert_image", "open source image", err)
	}
	img, _, err := image.Decode(file)
	file.Close()
	if err != nil {
		return 0, faults.Wrap(faults.ErrInvalidInput, "ascii", "convert_image", "decode source image", err)
	}
	return writeFrame(ConvertImage(img, opts), dir, name)
}

// writeFrame persists frame as dir/name.txt plus dir/name.cframe when the
// frame carries colors. It returns total bytes written.
func writeFrame(frame Frame, dir, name string) (int64, error) {
	textPath := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(textPath, []byte(frame.Text), 0o644); err != nil {
		return 0, faults.Wrap(faults.ErrIO, "ascii", "write_frame", "write text frame", err)
	}
	written := int64(len(frame.Text))

	if len(frame.Colors) > 0 {
		colorPath := filepath.Join(dir, name+".cframe")
		body := encodeColorFrame(frame)
		if err := os.WriteFile(colorPath, body, 0o644); err != nil {
			return 0, faults.Wrap(faults.ErrIO, "ascii", "write_frame", "write color frame", err)
		}
		written += int64(len(body))
	}
	return written, nil
}

// glyphFor maps a pixel to a ramp character. Luminance acts as a gain
// centered at 128.
func glyphFor(r, g, b uint8, luminance int) byte {
	// ITU-R BT.601 luma weights.
	gray := (299*int(r) + 587*int(g) + 114*int(b)) / 1000
	if luminance != defaultLuminance && luminance > 0 {
		gray = gray * luminance / defaultLuminance
	}
	if gray > 255 {
		gray = 255
	}
	idx := gray * (len(ramp) - 1) / 255
	return ramp[idx]
}

func decodePNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return png.Decode(file)
}
