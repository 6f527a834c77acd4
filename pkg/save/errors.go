package save

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ssargent/cm3d2save/pkg/binio"
)

// Errors
var (
	// ErrOutOfRange is returned when a read runs past the end of the input.
	ErrOutOfRange = binio.ErrOutOfRange

	ErrFormatMismatch     = errors.New("format mismatch")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrUnknownFormat      = errors.New("unknown save data format")
	ErrInvalidDocument    = errors.New("invalid document")
)

// MarkerError reports a record marker that did not match
type MarkerError struct {
	Expected Marker
	Got      string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("expected %s, got %q", e.Expected, e.Got)
}

func (e *MarkerError) Unwrap() error {
	return ErrFormatMismatch
}

// VersionError reports a version number outside the supported range
type VersionError struct {
	Version int32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("version %d (v%s) is not supported, want %d..%d",
		e.Version, FormatVersion(e.Version), MinVersion, MaxVersion)
}

func (e *VersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

// ChecksumError reports a trailing magic number that did not match
type ChecksumError struct {
	Want int32
	Got  int32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("magic number mismatch: want %d, got %d", e.Want, e.Got)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}

// Error records where in the document a decode or encode failed
type Error struct {
	Op     string // "decode" or "encode"
	Path   string // nesting point, e.g. chrMgr.stockMaid[1].param
	Offset int    // byte offset in the input (decode) or output (encode)
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	fmt.Fprintf(&b, " at offset %d: %v", e.Offset, e.Err)
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FormatVersion renders a version number the way the game does, e.g. 153 as
// "1.53".
func FormatVersion(v int32) string {
	x := int64(v)
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	return fmt.Sprintf("%s%d.%02d", sign, x/100, x%100)
}
