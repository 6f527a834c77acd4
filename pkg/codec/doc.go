// Package codec provides the snapshot envelope used by the backup archive.
//
// Before a save file is overwritten its previous bytes are archived. Each
// archived copy is wrapped in an envelope that records where it came from
// and carries a checksum, so a damaged archive entry is detected before it
// is restored over a good file.
//
// # Snapshot Format
//
//	[CRC32(4)][Version(4)][Timestamp(8)][NameSize(4)][DataSize(4)][Name][Data]
//
// Fields:
//   - CRC32: IEEE checksum over every byte that follows it (little-endian)
//   - Version: save format version of Data, or 0 when it could not be read
//   - Timestamp: Unix time of the snapshot in nanoseconds
//   - NameSize, DataSize: lengths of the two variable fields
//   - Name: the path the data was taken from
//   - Data: the raw save file bytes
//
// The header is 24 bytes; the total size is 24 + len(Name) + len(Data).
//
// # Usage
//
//	c := codec.NewSnapshotCodec()
//
//	encoded, err := c.Encode(codec.NewSnapshot("SaveData001.save", 153, data))
//	if err != nil {
//	    return err
//	}
//
//	snap, err := c.Decode(encoded)
//	if err != nil {
//	    return err // truncated or corrupted
//	}
//
// Decode validates the checksum; a mismatch returns ErrCorrupted.
package codec
