// Package binio provides cursor-based sequential access to in-memory byte
// buffers.
//
// A Reader walks an immutable private copy of its input; a Writer appends to
// a growable buffer. Both speak the same set of encodings:
//
//   - fixed-width signed and unsigned integers of 8, 16, 32 and 64 bits
//   - IEEE-754 single and double precision floats
//   - booleans stored as a single byte (0 is false, anything else is true)
//   - raw byte slices
//   - the base-128 "7-bit encoded int" used as a string length prefix
//   - length-prefixed strings
//
// # Byte Order
//
// Multi-byte values default to little-endian. The order can be chosen at
// construction with WithByteOrder or changed between calls with
// SetByteOrder, so a caller can mix orders field by field as long as the
// reader and writer make the same choices.
//
// 64-bit integers are also exposed as a [low, high] pair of 32-bit words
// through ReadInt64Pair and WriteInt64Pair. The word order inside the stream
// follows the selected byte order.
//
// # Text Encoding
//
// Strings are UTF-8 unless a golang.org/x/text encoding is supplied with
// WithTextEncoding, which lets legacy Shift_JIS data be read and written.
//
// # Errors
//
// Reading past the end of the buffer fails with ErrOutOfRange and leaves the
// cursor where it was. Nothing is ever silently zero-filled.
package binio
