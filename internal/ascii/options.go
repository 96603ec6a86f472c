package ascii

const (
	defaultColumns   = 100
	defaultFontRatio = 0.45
	defaultLuminance = 128

	// ramp orders glyphs from dark to bright.
	ramp = " .:-=+*#%@"
)

// Options configures a conversion. The zero value is not useful; start from
// NewOptions and chain the With setters.
type Options struct {
	columns   int
	fontRatio float64
	luminance int
	fps       int
	color     bool
}

// NewOptions returns conversion defaults: 100 columns, 0.45 font ratio,
// neutral luminance, native frame rate, no color.
func NewOptions() Options {
	return Options{
		columns:   defaultColumns,
		fontRatio: defaultFontRatio,
		luminance: defaultLuminance,
	}
}

// WithColumns sets the output grid width in characters.
func (o Options) WithColumns(columns int) Options {
	if columns > 0 {
		o.columns = columns
	}
	return o
}

// WithFontRatio sets the width/height aspect of the target font cell.
func (o Options) WithFontRatio(ratio float64) Options {
	if ratio > 0 {
		o.fontRatio = ratio
	}
	return o
}

// WithLuminance sets the brightness gain, 0..255 with 128 neutral.
func (o Options) WithLuminance(luminance int) Options {
	if luminance < 0 {
		luminance = 0
	}
	if luminance > 255 {
		luminance = 255
	}
	o.luminance = luminance
	return o
}

// WithFPS sets the frame sampling rate for video input. Zero keeps the
// source rate.
func (o Options) WithFPS(fps int) Options {
	if fps >= 0 {
		o.fps = fps
	}
	return o
}

// WithColor enables color companion output.
func (o Options) WithColor(color bool) Options {
	o.color = color
	return o
}

// Columns reports the configured grid width.
func (o Options) Columns() int { return o.columns }

// FPS reports the configured sampling rate, 0 for native.
func (o Options) FPS() int { return o.fps }

// Color reports whether color companions are produced.
func (o Options) Color() bool { return o.color }

// rows derives the grid height for a source of the given pixel dimensions.
// The font ratio compensates for character cells being taller than wide.
func (o Options) rows(width, height int) int {
	if width <= 0 || height <= 0 {
		return 1
	}
	rows := int(float64(height) / float64(width) * float64(o.columns) * o.fontRatio)
	if rows < 1 {
		rows = 1
	}
	return rows
}
