package save

// Marker is the literal tag written at the start of every record.
type Marker string

const (
	MarkerSave          Marker = "CM3D2_SAVE"
	MarkerCharacterMgr  Marker = "CM3D2_CHR_MGR"
	MarkerPlayerParam   Marker = "CM3D2_PPARAM"
	MarkerMaidPropList  Marker = "CM3D2_MPROP_LIST"
	MarkerMaidProp      Marker = "CM3D2_MPROP"
	MarkerMaidMisc      Marker = "CM3D2_MAID_MISC"
	MarkerMultiColor    Marker = "CM3D2_MULTI_COL"
	MarkerMaidParam     Marker = "CM3D2_MAID_PPARAM"
	MarkerScript        Marker = "CM3D2_SCRIPT"
	MarkerKAG           Marker = "CM3D2_KAG"
	MarkerDeskCustomize Marker = "CM3D2_DeskCustomize"
)

// Magic numbers written after the two largest records.
const (
	PlayerParamMagic int32 = 348195810
	MaidParamMagic   int32 = 1923480616
)

// Supported save format versions, 100*major + minor.
const (
	MinVersion int32 = 101
	MaxVersion int32 = 153
)

// Version thresholds for optional sections, compared against the document
// version.
const (
	RentalMaidBackupVersion int32 = 117
	DeskDecorationVersion   int32 = 146
)

// ScheduleSlotCount is the fixed number of schedule slots in PlayerParam.
const ScheduleSlotCount = 6

// SupportedVersion reports whether v is within [MinVersion, MaxVersion]
func SupportedVersion(v int32) bool {
	return v >= MinVersion && v <= MaxVersion
}

// HasRentalMaidBackup reports whether documents of version v carry the
// rental maid backup dictionary
func HasRentalMaidBackup(v int32) bool {
	return v >= RentalMaidBackupVersion
}

// HasDeskDecorations reports whether documents of version v carry the desk
// customization section
func HasDeskDecorations(v int32) bool {
	return v >= DeskDecorationVersion
}
