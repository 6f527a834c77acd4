package binio

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
)

// Errors
var (
	ErrOutOfRange      = errors.New("read out of range")
	ErrVarintOverflow  = errors.New("7-bit encoded int overflows 32 bits")
	ErrUnencodableText = errors.New("text not representable in encoding")
)

// maxVarintLen is the longest 7-bit encoding of a 32-bit value.
const maxVarintLen = 5

type options struct {
	order binary.ByteOrder
	text  encoding.Encoding
}

func defaultOptions() options {
	return options{order: binary.LittleEndian}
}

// Option configures a Reader or Writer.
type Option func(*options)

// WithByteOrder sets the initial byte order. The default is little-endian.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

// WithTextEncoding sets the encoding used for strings. A nil encoding means
// UTF-8.
func WithTextEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.text = enc
	}
}

func outOfRange(offset, want, have int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, %d available", ErrOutOfRange, want, offset, have)
}
