package binio

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding"
)

// defaultCapacity is the initial buffer size of a new Writer.
const defaultCapacity = 256

// Writer appends encoded values to a growable buffer
type Writer struct {
	buf   []byte
	order binary.ByteOrder
	text  encoding.Encoding
}

// NewWriter creates an empty writer
func NewWriter(opts ...Option) *Writer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Writer{
		buf:   make([]byte, 0, defaultCapacity),
		order: o.order,
		text:  o.text,
	}
}

// SetByteOrder changes the byte order used by subsequent writes
func (w *Writer) SetByteOrder(order binary.ByteOrder) {
	w.order = order
}

// ByteOrder returns the current byte order
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns a copy of everything written so far
func (w *Writer) Bytes() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Reset discards the written bytes but keeps the allocated capacity
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	w.order.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

// WriteInt64Pair writes a 64-bit integer given as its [low, high] words
func (w *Writer) WriteInt64Pair(pair [2]int32) {
	w.WriteInt64(JoinInt64(pair))
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteBool writes 1 for true and 0 for false
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
		return
	}
	w.WriteUint8(0)
}

func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Write7BitEncodedInt writes v as a minimal base-128 little-endian varint
func (w *Writer) Write7BitEncodedInt(v uint32) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v&0x7F)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// WriteString writes s prefixed by its encoded byte length. Without a text
// encoding the bytes are the UTF-8 bytes of s.
func (w *Writer) WriteString(s string) error {
	b := []byte(s)
	if w.text != nil {
		enc, err := w.text.NewEncoder().Bytes(b)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrUnencodableText, s, err)
		}
		b = enc
	}
	if uint64(len(b)) > math.MaxUint32 {
		return fmt.Errorf("string of %d bytes is too long", len(b))
	}
	w.Write7BitEncodedInt(uint32(len(b)))
	w.WriteBytes(b)
	return nil
}

// VarintLen returns the number of bytes Write7BitEncodedInt uses for v
func VarintLen(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// SplitInt64 returns the [low, high] 32-bit words of v
func SplitInt64(v int64) [2]int32 {
	return [2]int32{int32(uint32(v)), int32(uint64(v) >> 32)}
}

// JoinInt64 rebuilds a 64-bit integer from its [low, high] words
func JoinInt64(pair [2]int32) int64 {
	return int64(uint64(uint32(pair[1]))<<32 | uint64(uint32(pair[0])))
}
