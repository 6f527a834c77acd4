package codec

import (
	"errors"
	"fmt"
	"hash/crc32"
	"math"
	"time"

	"github.com/ssargent/cm3d2save/pkg/binio"
)

// HeaderSize is the fixed part of an encoded snapshot
const HeaderSize = 24

var (
	ErrTruncated = errors.New("snapshot truncated")
	ErrCorrupted = errors.New("snapshot checksum mismatch")
	ErrTooLarge  = errors.New("snapshot field too large")
)

// Snapshot is an archived copy of a save file
type Snapshot struct {
	CRC32     uint32 // checksum of everything after this field
	Version   int32  // save format version, 0 if unknown
	Timestamp uint64 // Unix time in nanoseconds
	Name      string // original path
	Data      []byte // save file bytes
}

// NewSnapshot creates a snapshot stamped with the current time
func NewSnapshot(name string, version int32, data []byte) *Snapshot {
	return &Snapshot{
		Version:   version,
		Timestamp: uint64(time.Now().UnixNano()),
		Name:      name,
		Data:      data,
	}
}

// Time returns the snapshot timestamp
func (s *Snapshot) Time() time.Time {
	return time.Unix(0, int64(s.Timestamp))
}

// Size returns the encoded size
func (s *Snapshot) Size() int {
	return HeaderSize + len(s.Name) + len(s.Data)
}

// SnapshotCodec serializes snapshots
type SnapshotCodec struct{}

func NewSnapshotCodec() *SnapshotCodec {
	return &SnapshotCodec{}
}

// Encode serializes s and fills in its checksum
func (c *SnapshotCodec) Encode(s *Snapshot) ([]byte, error) {
	if uint64(len(s.Name)) > math.MaxUint32 || uint64(len(s.Data)) > math.MaxUint32 {
		return nil, ErrTooLarge
	}
	body := encodeBody(s)
	s.CRC32 = crc32.ChecksumIEEE(body)

	w := binio.NewWriter()
	w.WriteUint32(s.CRC32)
	w.WriteBytes(body)
	return w.Bytes(), nil
}

// Decode parses an encoded snapshot and validates its checksum. The result
// does not alias data.
func (c *SnapshotCodec) Decode(data []byte) (*Snapshot, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), HeaderSize)
	}

	r := binio.NewReader(data)
	s := &Snapshot{}
	var nameSize, dataSize uint32
	var err error
	if s.CRC32, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if s.Version, err = r.ReadInt32(); err != nil {
		return nil, err
	}
	if s.Timestamp, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if nameSize, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if dataSize, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if uint64(nameSize)+uint64(dataSize) != uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: header declares %d bytes, %d present",
			ErrTruncated, uint64(nameSize)+uint64(dataSize), r.Remaining())
	}
	name, err := r.ReadBytes(int(nameSize))
	if err != nil {
		return nil, err
	}
	s.Name = string(name)
	if s.Data, err = r.ReadBytes(int(dataSize)); err != nil {
		return nil, err
	}

	if got := crc32.ChecksumIEEE(data[4:]); got != s.CRC32 {
		return nil, fmt.Errorf("%w: stored %08x, computed %08x", ErrCorrupted, s.CRC32, got)
	}
	return s, nil
}

// Validate recomputes the checksum of a snapshot
func (s *Snapshot) Validate() error {
	if got := crc32.ChecksumIEEE(encodeBody(s)); got != s.CRC32 {
		return fmt.Errorf("%w: stored %08x, computed %08x", ErrCorrupted, s.CRC32, got)
	}
	return nil
}

func encodeBody(s *Snapshot) []byte {
	w := binio.NewWriter()
	w.WriteInt32(s.Version)
	w.WriteUint64(s.Timestamp)
	w.WriteUint32(uint32(len(s.Name)))
	w.WriteUint32(uint32(len(s.Data)))
	w.WriteBytes([]byte(s.Name))
	w.WriteBytes(s.Data)
	return w.Bytes()
}
