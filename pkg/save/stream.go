package save

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ssargent/cm3d2save/pkg/binio"
	"github.com/ssargent/cm3d2save/pkg/ordered"
)

// stream is one side of the schema walk. Exactly one of r and w is set, and
// every primitive either reads into or writes from the pointer it is given,
// so a single walk function per record serves both directions.
//
// The first failure is sticky: later calls are no-ops and the error keeps the
// path and offset where it happened.
type stream struct {
	r       *binio.Reader
	w       *binio.Writer
	version int32

	path  []string
	err   error
	at    int
	where string
}

func newDecodeStream(r *binio.Reader) *stream {
	return &stream{r: r}
}

func newEncodeStream(w *binio.Writer, version int32) *stream {
	return &stream{w: w, version: version}
}

func (s *stream) decoding() bool {
	return s.r != nil
}

func (s *stream) offset() int {
	if s.decoding() {
		return s.r.Offset()
	}
	return s.w.Len()
}

func (s *stream) fail(err error) {
	if s.err != nil || err == nil {
		return
	}
	s.err = err
	s.at = s.offset()
	s.where = strings.Join(s.path, "")
}

func (s *stream) failed() bool {
	return s.err != nil
}

// result returns the sticky error wrapped with its location, or nil
func (s *stream) result() error {
	if s.err == nil {
		return nil
	}
	op := "encode"
	if s.decoding() {
		op = "decode"
	}
	return &Error{Op: op, Path: s.where, Offset: s.at, Err: s.err}
}

// enter pushes a field name onto the error path
func (s *stream) enter(name string) {
	if len(s.path) > 0 {
		name = "." + name
	}
	s.path = append(s.path, name)
}

// index pushes a list position onto the error path
func (s *stream) index(i int) {
	s.path = append(s.path, "["+strconv.Itoa(i)+"]")
}

// key pushes a dictionary key onto the error path
func (s *stream) key(k string) {
	s.path = append(s.path, "["+strconv.Quote(k)+"]")
}

func (s *stream) leave() {
	s.path = s.path[:len(s.path)-1]
}

func (s *stream) i32(v *int32) {
	if s.failed() {
		return
	}
	if s.decoding() {
		n, err := s.r.ReadInt32()
		s.fail(err)
		*v = n
		return
	}
	s.w.WriteInt32(*v)
}

func (s *stream) u32(v *uint32) {
	if s.failed() {
		return
	}
	if s.decoding() {
		n, err := s.r.ReadUint32()
		s.fail(err)
		*v = n
		return
	}
	s.w.WriteUint32(*v)
}

func (s *stream) i64(v *Int64) {
	if s.failed() {
		return
	}
	if s.decoding() {
		n, err := s.r.ReadInt64()
		s.fail(err)
		*v = Int64(n)
		return
	}
	s.w.WriteInt64(int64(*v))
}

func (s *stream) f32(v *float32) {
	if s.failed() {
		return
	}
	if s.decoding() {
		f, err := s.r.ReadFloat32()
		s.fail(err)
		*v = f
		return
	}
	s.w.WriteFloat32(*v)
}

func (s *stream) boolean(v *bool) {
	if s.failed() {
		return
	}
	if s.decoding() {
		b, err := s.r.ReadBool()
		s.fail(err)
		*v = b
		return
	}
	s.w.WriteBool(*v)
}

func (s *stream) str(v *string) {
	if s.failed() {
		return
	}
	if s.decoding() {
		str, err := s.r.ReadString()
		s.fail(err)
		*v = str
		return
	}
	s.fail(s.w.WriteString(*v))
}

// blob is an int32 byte length followed by the bytes
func (s *stream) blob(v *Blob) {
	if s.failed() {
		return
	}
	if s.decoding() {
		n := s.count(1)
		if s.failed() {
			return
		}
		b, err := s.r.ReadBytes(n)
		s.fail(err)
		*v = b
		return
	}
	s.count(len(*v))
	s.w.WriteBytes(*v)
}

func (s *stream) xyz(v *XYZ) {
	s.f32(&v.X)
	s.f32(&v.Y)
	s.f32(&v.Z)
}

func (s *stream) rgba(v *RGBA) {
	s.f32(&v.R)
	s.f32(&v.G)
	s.f32(&v.B)
	s.f32(&v.A)
}

// count moves an int32 collection length. When decoding, n is the minimum
// encoded size of one entry and the result is checked against the bytes
// left so a corrupt count fails before anything is allocated. When encoding,
// n is the length to write.
func (s *stream) count(n int) int {
	if s.failed() {
		return 0
	}
	if s.decoding() {
		start := s.r.Offset()
		c, err := s.r.ReadInt32()
		if err != nil {
			s.fail(err)
			return 0
		}
		if c < 0 || int64(c)*int64(n) > int64(s.r.Remaining()) {
			s.fail(fmt.Errorf("%w: count %d at offset %d exceeds the %d bytes left",
				ErrOutOfRange, c, start, s.r.Remaining()))
			return 0
		}
		return int(c)
	}
	if n > math.MaxInt32 {
		s.fail(fmt.Errorf("%w: collection of %d entries is too long", ErrInvalidDocument, n))
		return 0
	}
	s.w.WriteInt32(int32(n))
	return n
}

// marker moves a record header: the marker literal and a version number.
// Decoding checks both and records the first version seen as the document
// version. Encoding always writes the document version.
func (s *stream) marker(m Marker) {
	if s.failed() {
		return
	}
	if !s.decoding() {
		s.fail(s.w.WriteString(string(m)))
		s.w.WriteInt32(s.version)
		return
	}
	got, err := s.r.ReadString()
	if err != nil {
		s.fail(err)
		return
	}
	if got != string(m) {
		s.fail(&MarkerError{Expected: m, Got: got})
		return
	}
	v, err := s.r.ReadInt32()
	if err != nil {
		s.fail(err)
		return
	}
	if !SupportedVersion(v) {
		s.fail(&VersionError{Version: v})
		return
	}
	if s.version == 0 {
		s.version = v
	}
}

// magic moves a trailing checksum constant
func (s *stream) magic(want int32) {
	if s.failed() {
		return
	}
	if !s.decoding() {
		s.w.WriteInt32(want)
		return
	}
	got, err := s.r.ReadInt32()
	if err != nil {
		s.fail(err)
		return
	}
	if got != want {
		s.fail(&ChecksumError{Want: want, Got: got})
	}
}

// list moves a count-prefixed sequence. minSize is the smallest encoded entry.
func list[T any](s *stream, name string, items *[]T, minSize int, walk func(*stream, *T)) {
	s.enter(name)
	defer s.leave()

	var n int
	if s.decoding() {
		n = s.count(minSize)
		if s.failed() {
			return
		}
		*items = make([]T, n)
	} else {
		n = s.count(len(*items))
	}
	for i := 0; i < n && !s.failed(); i++ {
		s.index(i)
		walk(s, &(*items)[i])
		s.leave()
	}
}

// int32s moves a count-prefixed list of int32
func (s *stream) int32s(name string, items *[]int32) {
	list(s, name, items, 4, (*stream).i32)
}

// dict moves a count-prefixed dictionary as key/value pairs in map order.
// A key repeated in the input keeps its first position and its last value.
func dict[K ordered.Key, V any](s *stream, name string, m *ordered.Map[K, V], minSize int,
	walkKey func(*stream, *K), walkValue func(*stream, *V)) {
	s.enter(name)
	defer s.leave()

	if s.decoding() {
		n := s.count(minSize)
		out := ordered.New[K, V](n)
		for i := 0; i < n && !s.failed(); i++ {
			var k K
			var v V
			walkKey(s, &k)
			s.key(fmt.Sprint(k))
			walkValue(s, &v)
			s.leave()
			out.Set(k, v)
		}
		*m = *out
		return
	}

	s.count(m.Len())
	m.Range(func(k K, v V) bool {
		walkKey(s, &k)
		s.key(fmt.Sprint(k))
		walkValue(s, &v)
		s.leave()
		return !s.failed()
	})
}
