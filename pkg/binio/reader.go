package binio

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding"
)

// Reader provides sequential access to a private copy of a byte buffer
type Reader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
	text  encoding.Encoding
}

// NewReader creates a reader over a copy of buf, so the caller may reuse
// buf afterwards.
func NewReader(buf []byte, opts ...Option) *Reader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	own := make([]byte, len(buf))
	copy(own, buf)
	return &Reader{buf: own, order: o.order, text: o.text}
}

// SetByteOrder changes the byte order used by subsequent reads
func (r *Reader) SetByteOrder(order binary.ByteOrder) {
	r.order = order
}

// ByteOrder returns the current byte order
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// Offset returns the cursor position
func (r *Reader) Offset() int {
	return r.off
}

// Len returns the size of the underlying buffer
func (r *Reader) Len() int {
	return len(r.buf)
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	if r.off >= len(r.buf) {
		return 0
	}
	return len(r.buf) - r.off
}

// EOF reports whether the cursor has reached the end of the buffer
func (r *Reader) EOF() bool {
	return r.off >= len(r.buf)
}

// next returns the next n bytes without copying and advances the cursor.
func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, outOfRange(r.off, n, r.Remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadInt64Pair reads a 64-bit integer as its [low, high] 32-bit words
func (r *Reader) ReadInt64Pair() ([2]int32, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return [2]int32{}, err
	}
	return SplitInt64(v), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBool reads one byte; any nonzero value is true
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

// ReadBytes returns a detached copy of the next n bytes
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Read7BitEncodedInt reads a base-128 little-endian varint. Each byte
// carries 7 payload bits; a set high bit means another byte follows.
func (r *Reader) Read7BitEncodedInt() (uint32, error) {
	start := r.off
	var value uint32
	for i := 0; i < maxVarintLen; i++ {
		b, err := r.ReadUint8()
		if err != nil {
			r.off = start
			return 0, err
		}
		if i == maxVarintLen-1 && b > 0x0F {
			r.off = start
			return 0, fmt.Errorf("%w at offset %d", ErrVarintOverflow, start)
		}
		value |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return value, nil
		}
	}
	r.off = start
	return 0, fmt.Errorf("%w at offset %d", ErrVarintOverflow, start)
}

// ReadString reads a 7-bit encoded length followed by that many bytes of
// text.
func (r *Reader) ReadString() (string, error) {
	start := r.off
	n, err := r.Read7BitEncodedInt()
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(r.Remaining()) {
		err := outOfRange(r.off, int(min(n, math.MaxInt32)), r.Remaining())
		r.off = start
		return "", err
	}
	b, _ := r.next(int(n))
	if r.text == nil {
		return string(b), nil
	}
	s, err := r.text.NewDecoder().Bytes(b)
	if err != nil {
		r.off = start
		return "", fmt.Errorf("failed to decode string at offset %d: %w", start, err)
	}
	return string(s), nil
}
