// Package transcoder wraps the ffmpeg/ffprobe binary pair: discovery on
// PATH or in a bundled sidecar directory, duration probing, MP4 conversion
// with live progress parsing, audio extraction, and time-range cuts.
package transcoder
