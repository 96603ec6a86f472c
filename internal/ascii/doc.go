// Package ascii renders images and video frames as text art. Images resolve
// to a character grid sized by column count and font aspect ratio; when
// color output is enabled each text frame gets a parallel binary color
// companion file.
package ascii
