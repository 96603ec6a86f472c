package ascii

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func solidImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestConvertImageGridShape(t *testing.T) {
	opts := NewOptions().WithColumns(40).WithFontRatio(0.5)
	frame := ConvertImage(solidImage(200, 100, color.White), opts)

	if frame.Columns != 40 {
		t.Fatalf("columns = %d", frame.Columns)
	}
	// 100/200 * 40 * 0.5 = 10 rows.
	if frame.Rows != 10 {
		t.Fatalf("rows = %d", frame.Rows)
	}
	lines := strings.Split(strings.TrimRight(frame.Text, "\n"), "\n")
	if len(lines) != frame.Rows {
		t.Fatalf("text has %d lines, want %d", len(lines), frame.Rows)
	}
	for _, line := range lines {
		if len(line) != frame.Columns {
			t.Fatalf("line width %d, want %d", len(line), frame.Columns)
		}
	}
}

func TestConvertImageBrightnessMapping(t *testing.T) {
	opts := NewOptions().WithColumns(10)

	white := ConvertImage(solidImage(20, 20, color.White), opts)
	if !strings.Contains(white.Text, "@") || strings.ContainsAny(white.Text, " .") {
		t.Fatalf("white image should map to densest glyph: %q", white.Text)
	}

	black := ConvertImage(solidImage(20, 20, color.Black), opts)
	if strings.Trim(black.Text, " \n") != "" {
		t.Fatalf("black image should map to blank glyph: %q", black.Text)
	}
}

func TestConvertImageLuminanceGain(t *testing.T) {
	gray := color.RGBA{R: 100, G: 100, B: 100, A: 255}
	base := ConvertImage(solidImage(20, 20, gray), NewOptions().WithColumns(10))
	bright := ConvertImage(solidImage(20, 20, gray), NewOptions().WithColumns(10).WithLuminance(255))
	dark := ConvertImage(solidImage(20, 20, gray), NewOptions().WithColumns(10).WithLuminance(32))

	baseIdx := strings.IndexByte(ramp, base.Text[0])
	if strings.IndexByte(ramp, bright.Text[0]) <= baseIdx {
		t.Fatalf("raised luminance should pick a brighter glyph: base %q bright %q", base.Text[0], bright.Text[0])
	}
	if strings.IndexByte(ramp, dark.Text[0]) >= baseIdx {
		t.Fatalf("lowered luminance should pick a darker glyph: base %q dark %q", base.Text[0], dark.Text[0])
	}
}

func TestConvertImageColorCompanion(t *testing.T) {
	red := color.RGBA{R: 200, G: 10, B: 10, A: 255}
	frame := ConvertImage(solidImage(20, 20, red), NewOptions().WithColumns(8).WithColor(true))

	if len(frame.Colors) != frame.Columns*frame.Rows {
		t.Fatalf("colors len = %d, want %d", len(frame.Colors), frame.Columns*frame.Rows)
	}
	cell := frame.Colors[0]
	if cell.R < 150 || cell.G > 60 || cell.B > 60 {
		t.Fatalf("unexpected cell color %+v", cell)
	}
}

func TestColorFrameRoundTrip(t *testing.T) {
	frame := ConvertImage(solidImage(16, 8, color.RGBA{R: 1, G: 2, B: 3, A: 255}),
		NewOptions().WithColumns(4).WithColor(true))

	body := encodeColorFrame(frame)
	cols, rows, colors, err := DecodeColorFrame(body)
	if err != nil {
		t.Fatalf("DecodeColorFrame: %v", err)
	}
	if cols != frame.Columns || rows != frame.Rows {
		t.Fatalf("decoded grid %dx%d, want %dx%d", cols, rows, frame.Columns, frame.Rows)
	}
	if len(colors) != len(frame.Colors) || colors[0] != frame.Colors[0] {
		t.Fatalf("decoded colors mismatch")
	}
}

func TestDecodeColorFrameRejectsGarbage(t *testing.T) {
	if _, _, _, err := DecodeColorFrame([]byte("nope")); err == nil {
		t.Fatal("expected header error")
	}
	frame := Frame{Columns: 2, Rows: 2, Colors: make([]RGB, 4)}
	body := encodeColorFrame(frame)
	if _, _, _, err := DecodeColorFrame(body[:len(body)-1]); err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestOptionsClampAndDefaults(t *testing.T) {
	opts := NewOptions().WithColumns(-1).WithLuminance(999).WithFontRatio(-2)
	if opts.columns != defaultColumns {
		t.Fatalf("columns = %d", opts.columns)
	}
	if opts.luminance != 255 {
		t.Fatalf("luminance = %d", opts.luminance)
	}
	if opts.fontRatio != defaultFontRatio {
		t.Fatalf("fontRatio = %v", opts.fontRatio)
	}
}
