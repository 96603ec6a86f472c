package ascii

import (
	"encoding/binary"

	"cascii/internal/faults"
)

// Color frame layout: 4-byte magic, uint16 columns, uint16 rows, then one
// RGB triplet per cell in row-major order. All integers big endian.
const colorFrameMagic = "CFR1"

const colorFrameHeaderLen = 8

func encodeColorFrame(frame Frame) []byte {
	body := make([]byte, colorFrameHeaderLen+len(frame.Colors)*3)
	copy(body, colorFrameMagic)
	binary.BigEndian.PutUint16(body[4:6], uint16(frame.Columns))
	binary.BigEndian.PutUint16(body[6:8], uint16(frame.Rows))
	at := colorFrameHeaderLen
	for _, c := range frame.Colors {
		body[at] = c.R
		body[at+1] = c.G
		body[at+2] = c.B
		at += 3
	}
	return body
}

// DecodeColorFrame parses a color companion file body.
func DecodeColorFrame(body []byte) (columns, rows int, colors []RGB, err error) {
	if len(body) < colorFrameHeaderLen || string(body[:4]) != colorFrameMagic {
		return 0, 0, nil, faults.Wrap(faults.ErrInvalidInput, "ascii", "decode_color_frame", "bad color frame header", nil)
	}
	columns = int(binary.BigEndian.Uint16(body[4:6]))
	rows = int(binary.BigEndian.Uint16(body[6:8]))
	cells := columns * rows
	if len(body) != colorFrameHeaderLen+cells*3 {
		return 0, 0, nil, faults.Wrap(faults.ErrInvalidInput, "ascii", "decode_color_frame", "color frame body truncated", nil)
	}
	colors = make([]RGB, cells)
	at := colorFrameHeaderLen
	for i := range colors {
		colors[i] = RGB{R: body[at], G: body[at+1], B: body[at+2]}
		at += 3
	}
	return columns, rows, colors, nil
}
