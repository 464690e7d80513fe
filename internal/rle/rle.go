// Package rle implements the tagged run-length format used for nametable
// backgrounds.
//
// The first byte of a stream is the tag. Every other byte is a literal,
// except that the tag followed by a count n repeats the previous literal
// n more times. A count of zero ends the stream.
package rle

import (
	"errors"
)

// MaxDecodedSize is one nametable including its attribute table
const MaxDecodedSize = 1024

var (
	// ErrTruncated is returned when a stream ends without its terminator
	ErrTruncated = errors.New("rle: truncated stream")

	// ErrOverflow is returned when a stream decodes past its size limit
	ErrOverflow = errors.New("rle: decoded data exceeds limit")

	// ErrDanglingRun is returned for a run that has no preceding literal
	ErrDanglingRun = errors.New("rle: run without literal")

	// ErrNoTag is returned by Encode when every byte value is in use
	ErrNoTag = errors.New("rle: no free tag byte")
)

// Decode expands a stream of at most MaxDecodedSize bytes
func Decode(blob []byte) ([]byte, error) {
	return DecodeLimit(blob, MaxDecodedSize)
}

// DecodeLimit expands a stream, failing once more than limit bytes are
// produced.
func DecodeLimit(blob []byte, limit int) ([]byte, error) {
	if len(blob) == 0 {
		return nil, ErrTruncated
	}

	tag := blob[0]
	out := make([]byte, 0, limit)
	haveLiteral := false
	var last byte

	for i := 1; i < len(blob); i++ {
		b := blob[i]
		if b != tag {
			if len(out) >= limit {
				return nil, ErrOverflow
			}
			out = append(out, b)
			last = b
			haveLiteral = true
			continue
		}

		i++
		if i >= len(blob) {
			return nil, ErrTruncated
		}
		count := int(blob[i])
		if count == 0 {
			return out, nil
		}
		if !haveLiteral {
			return nil, ErrDanglingRun
		}
		if len(out)+count > limit {
			return nil, ErrOverflow
		}
		for r := 0; r < count; r++ {
			out = append(out, last)
		}
	}

	return nil, ErrTruncated
}

// Encode compresses data, using the lowest byte value that
// does not occur in data as the tag.
func Encode(data []byte) ([]byte, error) {
	var used [256]bool
	for _, b := range data {
		used[b] = true
	}

	tag := -1
	for v := 0; v < 256; v++ {
		if !used[v] {
			tag = v
			break
		}
	}
	if tag < 0 {
		return nil, ErrNoTag
	}

	out := []byte{byte(tag)}
	for i := 0; i < len(data); {
		b := data[i]
		run := 1
		for i+run < len(data) && data[i+run] == b {
			run++
		}
		i += run

		out = append(out, b)
		repeat := run - 1

		// two repeats cost the same as a tagged run
		if repeat <= 2 {
			for r := 0; r < repeat; r++ {
				out = append(out, b)
			}
			continue
		}
		for repeat > 0 {
			n := min(repeat, 255)
			out = append(out, byte(tag), byte(n))
			repeat -= n
		}
	}

	return append(out, byte(tag), 0), nil
}
