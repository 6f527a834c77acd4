package save

import "github.com/ssargent/cm3d2save/pkg/ordered"

// Document is a complete save file. The version applies to every nested
// record.
type Document struct {
	Version int32        `json:"version" yaml:"version"`
	Header  Header       `json:"header" yaml:"header"`
	ChrMgr  CharacterMgr `json:"chrMgr" yaml:"chrMgr"`
	DskMgr  DeskMgr      `json:"dskMgr" yaml:"dskMgr"`
	Script  Script       `json:"script" yaml:"script"`
}

// Header is the summary shown on the load screen
type Header struct {
	SaveTime   string `json:"saveTime" yaml:"saveTime"`
	GameDay    int32  `json:"gameDay" yaml:"gameDay"`
	PlayerName string `json:"playerName" yaml:"playerName"`
	MaidNum    int32  `json:"maidNum" yaml:"maidNum"`
	Comment    string `json:"comment" yaml:"comment"`
}

// CharacterMgr holds the player and every character in the save
type CharacterMgr struct {
	PlayerParam PlayerParam `json:"playerParam" yaml:"playerParam"`
	StockMan    []StockMan  `json:"stockMan" yaml:"stockMan"`
	StockMaid   []StockMaid `json:"stockMaid" yaml:"stockMaid"`
}

// DeskMgr holds the office desk layout. Only present from version 146.
type DeskMgr struct {
	DeskDecoration []DeskDecoration `json:"deskDecoration" yaml:"deskDecoration"`
}

// Script is the KAG script engine state
type Script struct {
	KAG      Blob `json:"kag" yaml:"kag"`
	FadeWait bool `json:"fadeWait" yaml:"fadeWait"`
	Enabled  bool `json:"enabled" yaml:"enabled"`
}

type DeskDecoration struct {
	ID        float32 `json:"id" yaml:"id"`
	Index     float32 `json:"index" yaml:"index"`
	Visible   bool    `json:"visible" yaml:"visible"`
	MonthOnly bool    `json:"monthOnly" yaml:"monthOnly"`
	Pos       XYZ     `json:"pos" yaml:"pos"`
	Rot       XYZ     `json:"rot" yaml:"rot"`
	Sca       XYZ     `json:"sca" yaml:"sca"`
}

// PlayerParam is the player's profile and salon progress
type PlayerParam struct {
	PlayerName        string `json:"playerName" yaml:"playerName"`
	ScenarioPhase     int32  `json:"scenarioPhase" yaml:"scenarioPhase"`
	PhaseDays         int32  `json:"phaseDays" yaml:"phaseDays"`
	Days              int32  `json:"days" yaml:"days"`
	ShopUseMoney      Int64  `json:"shopUseMoney" yaml:"shopUseMoney"`
	Money             Int64  `json:"money" yaml:"money"`
	InitialSalonLoan  Int64  `json:"initialSalonLoan" yaml:"initialSalonLoan"`
	SalonLoan         Int64  `json:"salonLoan" yaml:"salonLoan"`
	SalonClean        int32  `json:"salonClean" yaml:"salonClean"`
	SalonBeautiful    int32  `json:"salonBeautiful" yaml:"salonBeautiful"`
	SalonEvaluation   int32  `json:"salonEvaluation" yaml:"salonEvaluation"`
	IsFirstNameCall   bool   `json:"isFirstNameCall" yaml:"isFirstNameCall"`
	CurrentSalonGrade int32  `json:"currentSalonGrade" yaml:"currentSalonGrade"`
	BestSalonGrade    int32  `json:"bestSalonGrade" yaml:"bestSalonGrade"`

	// ScheduleSlots always has ScheduleSlotCount entries.
	ScheduleSlots []ScheduleSlot `json:"scheduleSlots" yaml:"scheduleSlots"`

	GenericFlag         ordered.Map[string, int32]          `json:"genericFlag" yaml:"genericFlag"`
	NightWorksStateDict ordered.Map[int32, NightWorksState] `json:"nightWorksStateDict" yaml:"nightWorksStateDict"`
	ShopLineupDict      ordered.Map[int32, int32]           `json:"shopLineupDict" yaml:"shopLineupDict"`
	HaveItemList        ordered.Map[string, bool]           `json:"haveItemList" yaml:"haveItemList"`
	HaveTrophyList      []int32                             `json:"haveTrophyList" yaml:"haveTrophyList"`
	MaidClassOpenFlag   []int32                             `json:"maidClassOpenFlag" yaml:"maidClassOpenFlag"`
	SexualClassOpenFlag []int32                             `json:"sexualClassOpenFlag" yaml:"sexualClassOpenFlag"`

	// RentalMaidBackupDataDict is only stored from version 117.
	RentalMaidBackupDataDict ordered.Map[string, RentalMaidBackup] `json:"rentalMaidBackupDataDict" yaml:"rentalMaidBackupDataDict"`
}

type ScheduleSlot struct {
	MaidGUID          string                     `json:"maidGuid" yaml:"maidGuid"`
	NoonSuccessLevel  int32                      `json:"noonSuccessLevel" yaml:"noonSuccessLevel"`
	NightSuccessLevel int32                      `json:"nightSuccessLevel" yaml:"nightSuccessLevel"`
	Communication     bool                       `json:"communication" yaml:"communication"`
	BackupStatusDict  ordered.Map[string, int32] `json:"backupStatusDict" yaml:"backupStatusDict"`
}

type NightWorksState struct {
	WorkID         int32  `json:"workId" yaml:"workId"`
	CalledMaidGUID string `json:"calledMaidGuid" yaml:"calledMaidGuid"`
	Finish         bool   `json:"finish" yaml:"finish"`
}

type RentalMaidBackup struct {
	Name        string                     `json:"name" yaml:"name"`
	Experience  int32                      `json:"experience" yaml:"experience"`
	GenericFlag ordered.Map[string, int32] `json:"genericFlag" yaml:"genericFlag"`
}

// StockMan is a male character: properties and misc only.
type StockMan struct {
	Props MaidPropList `json:"props" yaml:"props"`
	Misc  MaidMisc     `json:"misc" yaml:"misc"`
}

// StockMaid is a maid with her full parameter record.
type StockMaid struct {
	Props MaidPropList `json:"props" yaml:"props"`
	Parts []PartsColor `json:"parts" yaml:"parts"`
	Param MaidParam    `json:"param" yaml:"param"`
	Misc  MaidMisc     `json:"misc" yaml:"misc"`
}

// MaidPropList maps property names to their values
type MaidPropList = ordered.Map[string, MaidProp]

// MaidProp is one bounded body or outfit property
type MaidProp struct {
	Idx          int32  `json:"idx" yaml:"idx"`
	Name         string `json:"name" yaml:"name"`
	Type         int32  `json:"type" yaml:"type"`
	ValueDefault int32  `json:"valueDefault" yaml:"valueDefault"`
	Value        int32  `json:"value" yaml:"value"`
	TempValue    int32  `json:"tempValue" yaml:"tempValue"`
	ValueLinkMax int32  `json:"valueLinkMax" yaml:"valueLinkMax"`
	FileName     string `json:"fileName" yaml:"fileName"`
	FileNameRID  int32  `json:"fileNameRid" yaml:"fileNameRid"`
	Dut          bool   `json:"dut" yaml:"dut"`
	Max          int32  `json:"max" yaml:"max"`
	Min          int32  `json:"min" yaml:"min"`
}

type MaidMisc struct {
	ActiveSlotNo  int32  `json:"activeSlotNo" yaml:"activeSlotNo"`
	TexIcon       Blob   `json:"texIcon" yaml:"texIcon"`
	ThumbCardTime string `json:"thumbCardTime" yaml:"thumbCardTime"`
	ColorMan      RGBA   `json:"colorMan" yaml:"colorMan"`
}

type PartsColor struct {
	Use              bool  `json:"use" yaml:"use"`
	MainHue          int32 `json:"mainHue" yaml:"mainHue"`
	MainChroma       int32 `json:"mainChroma" yaml:"mainChroma"`
	MainBrightness   int32 `json:"mainBrightness" yaml:"mainBrightness"`
	MainContrast     int32 `json:"mainConstrast" yaml:"mainConstrast"`
	ShadowRate       int32 `json:"shadowRate" yaml:"shadowRate"`
	ShadowHue        int32 `json:"shadowHue" yaml:"shadowHue"`
	ShadowChroma     int32 `json:"shadowChroma" yaml:"shadowChroma"`
	ShadowBrightness int32 `json:"shadowBrightness" yaml:"shadowBrightness"`
	ShadowContrast   int32 `json:"shadowContrast" yaml:"shadowContrast"`
}

// MaidParam is a maid's identity, progression and stats
type MaidParam struct {
	GUID               string      `json:"guid" yaml:"guid"`
	CreateTime         string      `json:"createTime" yaml:"createTime"`
	CreateTimeNum      Int64       `json:"createTimeNum" yaml:"createTimeNum"`
	EmploymentDay      int32       `json:"employmentDay" yaml:"employmentDay"`
	MaidPoint          int32       `json:"maidPoint" yaml:"maidPoint"`
	LastName           string      `json:"lastName" yaml:"lastName"`
	FirstName          string      `json:"firstName" yaml:"firstName"`
	Profile            string      `json:"profile" yaml:"profile"`
	FreeComment        string      `json:"freeComment" yaml:"freeComment"`
	InitialExperience  int32       `json:"initialExperience" yaml:"initialExperience"`
	Experience         int32       `json:"experience" yaml:"experience"`
	Personal           int32       `json:"personal" yaml:"personal"`
	ContractType       int32       `json:"contractType" yaml:"contractType"`
	MaidClassData      []ClassData `json:"maidClassData" yaml:"maidClassData"`
	CurrentMaidClass   int32       `json:"currentMaidClass" yaml:"currentMaidClass"`
	SexualClassData    []ClassData `json:"sexualClassData" yaml:"sexualClassData"`
	CurrentSexualClass int32       `json:"currentSexualClass" yaml:"currentSexualClass"`
	Features           []int32     `json:"features" yaml:"features"`
	Propensities       []int32     `json:"propensities" yaml:"propensities"`
	Body               Body        `json:"body" yaml:"body"`

	Condition        int32 `json:"condition" yaml:"condition"`
	ConditionSpecial int32 `json:"conditionSpecial" yaml:"conditionSpecial"`
	SexCount         int32 `json:"sexCount" yaml:"sexCount"`
	OthersPlayCount  int32 `json:"othersPlayCount" yaml:"othersPlayCount"`
	Likability       int32 `json:"likability" yaml:"likability"`
	StudyRate        int32 `json:"studyRate" yaml:"studyRate"`
	CurrentHP        int32 `json:"currentHP" yaml:"currentHP"`
	HP               int32 `json:"hp" yaml:"hp"`
	CurrentMind      int32 `json:"currentMind" yaml:"currentMind"`
	Mind             int32 `json:"mind" yaml:"mind"`
	CurrentReason    int32 `json:"currentReason" yaml:"currentReason"`
	Reason           int32 `json:"reason" yaml:"reason"`
	Reception        int32 `json:"reception" yaml:"reception"`
	Care             int32 `json:"care" yaml:"care"`
	Lovely           int32 `json:"lovely" yaml:"lovely"`
	Lust             int32 `json:"lust" yaml:"lust"`
	Elegance         int32 `json:"elegance" yaml:"elegance"`
	Masochism        int32 `json:"masochism" yaml:"masochism"`
	Charm            int32 `json:"charm" yaml:"charm"`
	Pervert          int32 `json:"pervert" yaml:"pervert"`
	Service          int32 `json:"service" yaml:"service"`
	TeachRate        int32 `json:"teachRate" yaml:"teachRate"`

	Sexual SexualAffinity `json:"sexual" yaml:"sexual"`

	PlayNumber      int32 `json:"playNumber" yaml:"playNumber"`
	Frustration     int32 `json:"frustration" yaml:"frustration"`
	PopularRank     int32 `json:"popularRank" yaml:"popularRank"`
	Evaluation      Int64 `json:"evaluation" yaml:"evaluation"`
	TotalEvaluation Int64 `json:"totalEvaluation" yaml:"totalEvaluation"`
	Sales           Int64 `json:"sales" yaml:"sales"`
	TotalSales      Int64 `json:"totalSales" yaml:"totalSales"`
	IsFirstNameCall bool  `json:"isFirstNameCall" yaml:"isFirstNameCall"`
	IsRentalMaid    bool  `json:"isRentalMaid" yaml:"isRentalMaid"`
	NoonWorkID      int32 `json:"noonWorkID" yaml:"noonWorkID"`
	NightWorkID     int32 `json:"nightWorkID" yaml:"nightWorkID"`

	SkillData   ordered.Map[int32, SkillData] `json:"skillData" yaml:"skillData"`
	WorkData    ordered.Map[int32, WorkData]  `json:"workData" yaml:"workData"`
	GenericFlag ordered.Map[string, int32]    `json:"genericFlag" yaml:"genericFlag"`
	Employment  bool                          `json:"employment" yaml:"employment"`
	Leader      bool                          `json:"leader" yaml:"leader"`
	EyePartsTab int32                         `json:"eyePartsTab" yaml:"eyePartsTab"`
	PartsDict   ordered.Map[string, string]   `json:"partsDict" yaml:"partsDict"`

	MaidClassBonusStatus ClassBonus `json:"maidClassBonusStatus" yaml:"maidClassBonusStatus"`
}

// ClassData is one entry of the maid or night class history
type ClassData struct {
	Have bool    `json:"have" yaml:"have"`
	Exp  ExpData `json:"exp" yaml:"exp"`
}

type ExpData struct {
	CurrentExp int32 `json:"currentExp" yaml:"currentExp"`
	TotalExp   int32 `json:"totalExp" yaml:"totalExp"`
	NextExp    int32 `json:"nextExp" yaml:"nextExp"`
	Level      int32 `json:"level" yaml:"level"`
}

type Body struct {
	Height int32  `json:"height" yaml:"height"`
	Weight int32  `json:"weight" yaml:"weight"`
	Bust   int32  `json:"bust" yaml:"bust"`
	Waist  int32  `json:"waist" yaml:"waist"`
	Hip    int32  `json:"hip" yaml:"hip"`
	Cup    string `json:"cup" yaml:"cup"`
}

type SexualAffinity struct {
	Mouth  int32 `json:"mouth" yaml:"mouth"`
	Throat int32 `json:"throat" yaml:"throat"`
	Nipple int32 `json:"nipple" yaml:"nipple"`
	Front  int32 `json:"front" yaml:"front"`
	Back   int32 `json:"back" yaml:"back"`
	Curi   int32 `json:"curi" yaml:"curi"`
}

type SkillData struct {
	ID        int32   `json:"id" yaml:"id"`
	PlayCount uint32  `json:"playCount" yaml:"playCount"`
	Exp       ExpData `json:"exp" yaml:"exp"`
}

type WorkData struct {
	ID        int32  `json:"id" yaml:"id"`
	PlayCount uint32 `json:"playCount" yaml:"playCount"`
	Level     int32  `json:"level" yaml:"level"`
}

// ClassBonus is the stat bonus granted by the current maid class
type ClassBonus struct {
	HP        int32 `json:"hp" yaml:"hp"`
	Mind      int32 `json:"mind" yaml:"mind"`
	Reception int32 `json:"reception" yaml:"reception"`
	Care      int32 `json:"care" yaml:"care"`
	Lovely    int32 `json:"lovely" yaml:"lovely"`
	Lust      int32 `json:"lust" yaml:"lust"`
	Elegance  int32 `json:"elegance" yaml:"elegance"`
	Masochism int32 `json:"masochism" yaml:"masochism"`
	Charm     int32 `json:"charm" yaml:"charm"`
	Pervert   int32 `json:"pervert" yaml:"pervert"`
	Service   int32 `json:"service" yaml:"service"`
	TeachRate int32 `json:"teachRate" yaml:"teachRate"`
}
