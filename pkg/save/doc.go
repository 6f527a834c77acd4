// Package save reads and writes Custom Maid 3D2 save files.
//
// A save file is a sequence of records. Every record starts with a header
//
//	[marker string][version int32]
//
// where the marker is a fixed literal such as CM3D2_PPARAM and the version is
// 100*major+minor (153 is v1.53). Fields follow in a fixed order. Integers
// and floats are little-endian, strings carry a base-128 length prefix and
// collections an int32 count. Two records end with a magic number that acts
// as a structural checksum.
//
// # Layout
//
//	CM3D2_SAVE         header fields
//	CM3D2_CHR_MGR
//	  CM3D2_PPARAM     player, 6 schedule slots, dictionaries, magic 348195810
//	  stock men        CM3D2_MPROP_LIST, CM3D2_MAID_MISC
//	  stock maids      CM3D2_MPROP_LIST, CM3D2_MULTI_COL,
//	                   CM3D2_MAID_PPARAM (magic 1923480616), CM3D2_MAID_MISC
//	CM3D2_SCRIPT
//	CM3D2_KAG          script blob, fadeWait, enabled
//	CM3D2_DeskCustomize  decorations (version 146 and later)
//
// Rental maid backups inside CM3D2_PPARAM appear from version 117. Both
// thresholds compare against the document version.
//
// # Round Trips
//
// Each record is described once, by a walk function that either reads or
// writes depending on the direction of the stream it is handed. Decoding
// and encoding therefore cannot drift apart, and
//
//	Encode(Decode(b)) == b
//
// holds for every well-formed file whose records all carry the document
// version. Dictionaries keep the order they had in the file.
//
// # Errors
//
// Failures are returned as *Error, which records the operation, the nesting
// path (for example chrMgr.stockMaid[1].param) and the byte offset. The
// cause can be tested with errors.Is against ErrOutOfRange,
// ErrFormatMismatch, ErrUnsupportedVersion, ErrChecksumMismatch,
// ErrUnknownFormat and ErrInvalidDocument, or inspected with errors.As as a
// *MarkerError, *VersionError or *ChecksumError.
package save
