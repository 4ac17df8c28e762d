package model

import (
	"bufio"
	"errors"
	"io"
)

// MaxLineLength is the longest input line accepted, excluding the terminator.
const MaxLineLength = 10 * 1024 * 1024

// ErrLineTooLong is returned by LineReader.Next for a line longer than the
// reader's limit. The line is consumed, so reading can continue.
var ErrLineTooLong = errors.New("line too long")

// LineReader reads newline-terminated lines without a hard buffer limit on
// the stream. Unlike bufio.Scanner, one oversized line does not end reading.
type LineReader struct {
	r     *bufio.Reader
	limit int
}

// NewLineReader reads lines of at most limit bytes from r.
func NewLineReader(r io.Reader, limit int) *LineReader {
	if limit <= 0 {
		limit = MaxLineLength
	}
	return &LineReader{r: bufio.NewReader(r), limit: limit}
}

// Next returns the next line with "\n" or "\r\n" stripped. It returns io.EOF
// once the input is exhausted, and ErrLineTooLong for an oversized line.
func (lr *LineReader) Next() (string, error) {
	var buf []byte
	n := 0
	over := false
	for {
		chunk, err := lr.r.ReadSlice('\n')
		n += len(chunk)
		if !over {
			// +2 leaves room for a CRLF terminator.
			if len(buf)+len(chunk) > lr.limit+2 {
				over = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if errors.Is(err, io.EOF) && n == 0 {
			return "", io.EOF
		}
		break
	}

	if over {
		return "", ErrLineTooLong
	}
	if len(buf) > 0 && buf[len(buf)-1] == '\n' {
		buf = buf[:len(buf)-1]
	}
	if len(buf) > 0 && buf[len(buf)-1] == '\r' {
		buf = buf[:len(buf)-1]
	}
	if len(buf) > lr.limit {
		return "", ErrLineTooLong
	}
	return string(buf), nil
}
