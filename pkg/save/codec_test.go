package save

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/ssargent/cm3d2save/pkg/binio"
)

var docCompare = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateEmpty(),
}

func mustEncode(t *testing.T, doc *Document) []byte {
	t.Helper()
	data, err := Encode(doc)
	require.NoError(t, err)
	return data
}

// versionOffset returns the offset of the version word that follows the
// first occurrence of marker m.
func versionOffset(t *testing.T, data []byte, m Marker) int {
	t.Helper()
	i := bytes.Index(data, []byte(m))
	require.GreaterOrEqual(t, i, 0, "marker %s not found", m)
	return i + len(m)
}

func le32(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func TestCodec_DocumentRoundTrip(t *testing.T) {
	for _, version := range []int32{101, 116, 117, 145, 146, 153} {
		doc := sampleDocument(version)
		data := mustEncode(t, doc)

		got, err := Decode(data)
		require.NoError(t, err, "version %d", version)
		if diff := cmp.Diff(doc, got, docCompare...); diff != "" {
			t.Errorf("version %d: decode(encode(doc)) mismatch (-want +got):\n%s", version, diff)
		}
	}
}

func TestCodec_ByteRoundTrip(t *testing.T) {
	for _, version := range []int32{101, 117, 146, 153} {
		data := mustEncode(t, sampleDocument(version))

		doc, err := Decode(data)
		require.NoError(t, err)
		again, err := Encode(doc)
		require.NoError(t, err)
		assert.Equal(t, data, again, "version %d", version)
	}
}

func TestCodec_HeaderLayout(t *testing.T) {
	data := mustEncode(t, sampleDocument(101))

	want := append([]byte{10}, "CM3D2_SAVE"...)
	want = append(want, 101, 0, 0, 0)
	assert.Equal(t, want, data[:15])
}

func TestCodec_DictionaryOrderPreserved(t *testing.T) {
	doc := sampleDocument(153)
	got, err := Decode(mustEncode(t, doc))
	require.NoError(t, err)

	assert.Equal(t, []int32{20, 3}, got.ChrMgr.PlayerParam.NightWorksStateDict.Keys())
	assert.Equal(t, []int32{900, -5}, got.ChrMgr.PlayerParam.ShopLineupDict.Keys())
	assert.Equal(t, []int32{300, 12}, got.ChrMgr.StockMaid[0].Param.SkillData.Keys())
	assert.Equal(t, []string{"maid_body", "maid_head"}, got.ChrMgr.StockMaid[0].Props.Keys())
}

func TestCodec_VersionBoundaries(t *testing.T) {
	for _, v := range []int32{MinVersion, MaxVersion} {
		doc, err := Decode(mustEncode(t, sampleDocument(v)))
		require.NoError(t, err)
		assert.Equal(t, v, doc.Version)
	}

	for _, v := range []int32{MinVersion - 1, MaxVersion + 1} {
		data := mustEncode(t, sampleDocument(153))
		copy(data[11:15], le32(v))

		_, err := Decode(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
		var verr *VersionError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, v, verr.Version)

		doc := sampleDocument(101)
		doc.Version = v
		_, err = Encode(doc)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	}
}

func TestCodec_NestedVersionChecked(t *testing.T) {
	data := mustEncode(t, sampleDocument(153))
	off := versionOffset(t, data, MarkerCharacterMgr)
	copy(data[off:off+4], le32(200))

	_, err := Decode(data)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "decode", serr.Op)
	assert.Equal(t, "chrMgr", serr.Path)
}

func TestCodec_MarkerMismatch(t *testing.T) {
	data := mustEncode(t, sampleDocument(153))
	data[1] = 'X'

	_, err := Decode(data)
	require.ErrorIs(t, err, ErrFormatMismatch)
	var merr *MarkerError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, MarkerSave, merr.Expected)
	assert.Equal(t, "XM3D2_SAVE", merr.Got)
	assert.Contains(t, err.Error(), "CM3D2_SAVE")
}

func TestCodec_NestedMarkerMismatchReportsPath(t *testing.T) {
	data := mustEncode(t, sampleDocument(153))
	i := bytes.Index(data, []byte(MarkerMaidParam))
	require.Greater(t, i, 0)
	data[i+len(MarkerMaidParam)-1] = 'X'

	_, err := Decode(data)
	require.ErrorIs(t, err, ErrFormatMismatch)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "chrMgr.stockMaid[0].param", serr.Path)
}

func TestCodec_ChecksumMismatch(t *testing.T) {
	cases := []struct {
		name  string
		magic int32
		path  string
	}{
		{"player", PlayerParamMagic, "chrMgr.playerParam"},
		{"maid", MaidParamMagic, "chrMgr.stockMaid[0].param"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := mustEncode(t, sampleDocument(153))
			i := bytes.Index(data, le32(tc.magic))
			require.Greater(t, i, 0)
			data[i] ^= 0x01

			_, err := Decode(data)
			require.ErrorIs(t, err, ErrChecksumMismatch)
			var cerr *ChecksumError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tc.magic, cerr.Want)
			assert.Equal(t, tc.magic^1, cerr.Got)

			var serr *Error
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tc.path, serr.Path)
			assert.Equal(t, i, serr.Offset-4)
		})
	}
}

func TestCodec_TrailingBytes(t *testing.T) {
	data := append(mustEncode(t, sampleDocument(153)), 0x00)

	_, err := Decode(data)
	require.ErrorIs(t, err, ErrUnknownFormat)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, len(data)-1, serr.Offset)
}

func TestCodec_EveryTruncationFails(t *testing.T) {
	data := mustEncode(t, sampleDocument(146))
	for n := 0; n < len(data); n++ {
		_, err := Decode(data[:n])
		if !assert.ErrorIs(t, err, ErrOutOfRange, "prefix of %d bytes", n) {
			return
		}
	}
}

func TestCodec_DeskDecorationGating(t *testing.T) {
	below := mustEncode(t, sampleDocument(145))
	assert.False(t, bytes.Contains(below, []byte(MarkerDeskCustomize)))

	at := mustEncode(t, sampleDocument(146))
	assert.True(t, bytes.Contains(at, []byte(MarkerDeskCustomize)))

	doc := sampleDocument(145)
	doc.DskMgr.DeskDecoration = []DeskDecoration{{ID: 1}}
	_, err := Encode(doc)
	require.ErrorIs(t, err, ErrInvalidDocument)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "dskMgr.deskDecoration", serr.Path)
}

func TestCodec_RentalBackupGating(t *testing.T) {
	doc := sampleDocument(116)
	before := mustEncode(t, doc)

	doc.Version = 117
	after := mustEncode(t, doc)
	// an empty dictionary is a single zero count
	assert.Equal(t, len(before)+4, len(after))

	bad := sampleDocument(117)
	bad.Version = 116
	_, err := Encode(bad)
	require.ErrorIs(t, err, ErrInvalidDocument)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "chrMgr.playerParam", serr.Path)
}

func TestCodec_ScheduleSlotCount(t *testing.T) {
	doc := sampleDocument(153)
	doc.ChrMgr.PlayerParam.ScheduleSlots = doc.ChrMgr.PlayerParam.ScheduleSlots[:5]

	_, err := Encode(doc)
	require.ErrorIs(t, err, ErrInvalidDocument)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "chrMgr.playerParam.scheduleSlots", serr.Path)
}

func TestCodec_EncodeNil(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestCodec_RecordVersionsFollowDocument(t *testing.T) {
	data := mustEncode(t, sampleDocument(150))
	off := versionOffset(t, data, MarkerCharacterMgr)
	copy(data[off:off+4], le32(140))

	doc, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int32(150), doc.Version)

	res, err := Verify(data)
	require.NoError(t, err)
	assert.False(t, res.Identical)
	assert.Equal(t, off, res.FirstDiff)
}

func TestCodec_NonCanonicalBool(t *testing.T) {
	data := mustEncode(t, sampleDocument(140))
	// fadeWait and enabled are the last two bytes below version 146
	data[len(data)-1] = 7

	doc, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, doc.Script.Enabled)

	res, err := Verify(data)
	require.NoError(t, err)
	assert.False(t, res.Identical)
	assert.Equal(t, len(data)-1, res.FirstDiff)
}

func TestVerify_Identical(t *testing.T) {
	data := mustEncode(t, sampleDocument(153))
	res, err := Verify(data)
	require.NoError(t, err)
	assert.True(t, res.Identical)
	assert.Equal(t, -1, res.FirstDiff)
	assert.Equal(t, int32(153), res.Version)
	assert.Equal(t, len(data), res.Size)
	assert.Equal(t, len(data), res.Encoded)
}

func TestPeekVersion(t *testing.T) {
	data := mustEncode(t, sampleDocument(132))
	v, err := PeekVersion(data[:15])
	require.NoError(t, err)
	assert.Equal(t, int32(132), v)

	_, err = PeekVersion([]byte("nope"))
	assert.Error(t, err)
}

func TestCodec_ShiftJIS(t *testing.T) {
	c := NewCodec(WithTextEncoding(japanese.ShiftJIS))
	doc := sampleDocument(153)

	data, err := c.Encode(doc)
	require.NoError(t, err)
	// "ご主人様" is four two-byte characters in Shift_JIS
	assert.True(t, bytes.Contains(data, append([]byte{8}, mustShiftJIS(t, "ご主人様")...)))

	got, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "ご主人様", got.Header.PlayerName)

	doc.Header.Comment = "emoji 😀"
	_, err = c.Encode(doc)
	assert.Error(t, err)
}

func mustShiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	b, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestStream_CountFailsFast(t *testing.T) {
	cases := map[string][]byte{
		"negative":  le32(-1),
		"too large": append(le32(3), 0, 0, 0, 0, 0, 0, 0, 0),
		"huge":      le32(0x7FFFFFFF),
	}
	for name, buf := range cases {
		t.Run(name, func(t *testing.T) {
			s := newDecodeStream(binio.NewReader(buf))
			var xs []int32
			s.int32s("xs", &xs)
			err := s.result()
			require.ErrorIs(t, err, ErrOutOfRange)
			assert.Nil(t, xs)
		})
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Op: "decode", Path: "chrMgr.playerParam", Offset: 12, Err: &ChecksumError{Want: 1, Got: 2}}
	assert.Equal(t, "decode chrMgr.playerParam at offset 12: magic number mismatch: want 1, got 2", err.Error())
	assert.True(t, errors.Is(err, ErrChecksumMismatch))
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "1.53", FormatVersion(153))
	assert.Equal(t, "1.01", FormatVersion(101))
	assert.Equal(t, "-0.05", FormatVersion(-5))
}

func TestDocument_Summary(t *testing.T) {
	sum := sampleDocument(153).Summary()
	assert.Equal(t, "1.53", sum.VersionString)
	assert.Equal(t, 1, sum.Men)
	assert.Equal(t, 1, sum.Maids)
	assert.Equal(t, 1, sum.RentalMaids)
	assert.Equal(t, 1, sum.DeskDecorations)
	assert.Equal(t, int64(5_000_000_000), sum.Money)
	assert.Equal(t, 7, sum.ScriptBytes)
}

func TestCodec_ListLengths(t *testing.T) {
	t.Run("longer than the smallest entry size", func(t *testing.T) {
		doc := sampleDocument(153)
		doc.ChrMgr.PlayerParam.HaveTrophyList = []int32{1, 2, 3, 4, 5, 6}
		doc.ChrMgr.StockMan = append(doc.ChrMgr.StockMan, StockMan{Props: sampleProps("man2"), Misc: sampleMisc(1)})
		doc.ChrMgr.StockMaid[0].Param.Features = []int32{1, 2, 3, 4, 5, 6, 7, 8, 9}
		doc.DskMgr.DeskDecoration = append(doc.DskMgr.DeskDecoration, doc.DskMgr.DeskDecoration[0], doc.DskMgr.DeskDecoration[0])

		got, err := Decode(mustEncode(t, doc))
		require.NoError(t, err)
		assert.Len(t, got.ChrMgr.PlayerParam.HaveTrophyList, 6)
		assert.Len(t, got.ChrMgr.StockMan, 2)
		assert.Len(t, got.ChrMgr.StockMaid[0].Param.Features, 9)
		assert.Len(t, got.DskMgr.DeskDecoration, 3)
		if diff := cmp.Diff(doc, got, docCompare...); diff != "" {
			t.Errorf("decode(encode(doc)) mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty", func(t *testing.T) {
		doc := sampleDocument(153)
		pp := &doc.ChrMgr.PlayerParam
		pp.HaveTrophyList = nil
		pp.MaidClassOpenFlag = nil
		pp.SexualClassOpenFlag = nil
		doc.ChrMgr.StockMan = nil
		doc.ChrMgr.StockMaid = nil
		doc.DskMgr.DeskDecoration = nil

		data, err := Encode(doc)
		require.NoError(t, err)
		got, err := Decode(data)
		require.NoError(t, err)
		if diff := cmp.Diff(doc, got, docCompare...); diff != "" {
			t.Errorf("decode(encode(doc)) mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("count written is the list length", func(t *testing.T) {
		w := binio.NewWriter()
		s := newEncodeStream(w, 153)
		items := []int32{7, 8, 9}
		s.int32s("list", &items)
		require.NoError(t, s.result())
		assert.Equal(t, append(le32(3), append(le32(7), append(le32(8), le32(9)...)...)...), w.Bytes())
	})
}

func TestCodec_InvalidUTF8SurvivesBinaryRoundTrip(t *testing.T) {
	doc := sampleDocument(153)
	doc.Header.Comment = "\x82\xa0 not utf-8 \xff"

	res, err := Verify(mustEncode(t, doc))
	require.NoError(t, err)
	assert.True(t, res.Identical)
}
