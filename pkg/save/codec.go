package save

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"

	"github.com/ssargent/cm3d2save/pkg/binio"
)

// Codec converts between save file bytes and Documents. A Codec holds no
// per-call state and is safe for concurrent use.
type Codec struct {
	opts []binio.Option
}

// Option configures a Codec
type Option func(*Codec)

// WithTextEncoding stores strings in enc instead of UTF-8. Use it for saves
// written by builds that store Shift_JIS text.
func WithTextEncoding(enc encoding.Encoding) Option {
	return func(c *Codec) {
		if enc != nil {
			c.opts = append(c.opts, binio.WithTextEncoding(enc))
		}
	}
}

// NewCodec creates a codec. Without options strings are UTF-8.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode parses a complete save file. The whole buffer must be consumed;
// leftover bytes fail with ErrUnknownFormat.
func (c *Codec) Decode(data []byte) (*Document, error) {
	r := binio.NewReader(data, c.opts...)
	s := newDecodeStream(r)

	doc := &Document{}
	walkDocument(s, doc)
	if err := s.result(); err != nil {
		return nil, err
	}
	if !r.EOF() {
		return nil, &Error{
			Op:     "decode",
			Offset: r.Offset(),
			Err:    fmt.Errorf("%w: %d trailing bytes", ErrUnknownFormat, r.Remaining()),
		}
	}
	return doc, nil
}

// Encode serializes doc. The document version is written into every record
// header and selects which optional sections are written.
func (c *Codec) Encode(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, &Error{Op: "encode", Err: fmt.Errorf("%w: nil document", ErrInvalidDocument)}
	}
	if !SupportedVersion(doc.Version) {
		return nil, &Error{Op: "encode", Path: "version", Err: &VersionError{Version: doc.Version}}
	}
	if !HasDeskDecorations(doc.Version) && len(doc.DskMgr.DeskDecoration) > 0 {
		return nil, &Error{Op: "encode", Path: "dskMgr.deskDecoration", Err: fmt.Errorf(
			"%w: desk decorations need version %d or later, document is %d",
			ErrInvalidDocument, DeskDecorationVersion, doc.Version)}
	}

	w := binio.NewWriter(c.opts...)
	s := newEncodeStream(w, doc.Version)
	walkDocument(s, doc)
	if err := s.result(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// PeekVersion reads only the top-level record header and returns the
// document version.
func (c *Codec) PeekVersion(data []byte) (int32, error) {
	s := newDecodeStream(binio.NewReader(data, c.opts...))
	s.marker(MarkerSave)
	if err := s.result(); err != nil {
		return 0, err
	}
	return s.version, nil
}

// VerifyResult describes a decode/encode round trip of a save file
type VerifyResult struct {
	Version   int32 `json:"version"`
	Size      int   `json:"size"`
	Encoded   int   `json:"encoded"`
	Identical bool  `json:"identical"`
	// FirstDiff is the first differing byte offset, or -1.
	FirstDiff int `json:"firstDiff"`
}

// Verify decodes data, encodes the result and compares the bytes. An error is
// returned only when either direction fails; a mismatch is reported in the
// result.
func (c *Codec) Verify(data []byte) (*VerifyResult, error) {
	doc, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	out, err := c.Encode(doc)
	if err != nil {
		return nil, err
	}
	res := &VerifyResult{
		Version:   doc.Version,
		Size:      len(data),
		Encoded:   len(out),
		Identical: bytes.Equal(data, out),
		FirstDiff: -1,
	}
	if !res.Identical {
		res.FirstDiff = firstDiff(data, out)
	}
	return res, nil
}

func firstDiff(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

var defaultCodec = NewCodec()

// Decode parses a UTF-8 save file with the default codec
func Decode(data []byte) (*Document, error) {
	return defaultCodec.Decode(data)
}

// Encode serializes doc with the default codec
func Encode(doc *Document) ([]byte, error) {
	return defaultCodec.Encode(doc)
}

// Verify round-trips data with the default codec
func Verify(data []byte) (*VerifyResult, error) {
	return defaultCodec.Verify(data)
}

// PeekVersion returns the version of a save file without decoding it
func PeekVersion(data []byte) (int32, error) {
	return defaultCodec.PeekVersion(data)
}
