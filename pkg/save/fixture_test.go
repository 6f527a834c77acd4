package save

import (
	"github.com/ssargent/cm3d2save/pkg/ordered"
)

// sampleDocument builds a document that exercises every record type. Desk
// decorations and rental backups are only filled in when version allows.
func sampleDocument(version int32) *Document {
	doc := &Document{
		Version: version,
		Header: Header{
			SaveTime:   "20240102123456",
			GameDay:    42,
			PlayerName: "ご主人様",
			MaidNum:    1,
			Comment:    "before the festival",
		},
		ChrMgr: CharacterMgr{
			PlayerParam: samplePlayerParam(version),
			StockMan: []StockMan{
				{Props: sampleProps("man"), Misc: sampleMisc(0)},
			},
			StockMaid: []StockMaid{
				{
					Props: sampleProps("maid"),
					Parts: []PartsColor{
						{Use: true, MainHue: 10, MainChroma: 20, MainBrightness: 30, MainContrast: 40,
							ShadowRate: 50, ShadowHue: 60, ShadowChroma: 70, ShadowBrightness: 80, ShadowContrast: 90},
						{},
					},
					Param: sampleMaidParam(),
					Misc:  sampleMisc(2),
				},
			},
		},
		Script: Script{
			KAG:      Blob{0x00, 0x01, 0xFE, 0xFF, 'k', 'a', 'g'},
			FadeWait: true,
			Enabled:  false,
		},
	}
	if HasDeskDecorations(version) {
		doc.DskMgr.DeskDecoration = []DeskDecoration{
			{
				ID: 1, Index: 0, Visible: true, MonthOnly: false,
				Pos: XYZ{X: 0.5, Y: -1.25, Z: 3},
				Rot: XYZ{Y: 90},
				Sca: XYZ{X: 1, Y: 1, Z: 1},
			},
		}
	}
	return doc
}

func samplePlayerParam(version int32) PlayerParam {
	p := PlayerParam{
		PlayerName:        "ご主人様",
		ScenarioPhase:     3,
		PhaseDays:         7,
		Days:              42,
		ShopUseMoney:      1500,
		Money:             Int64(5_000_000_000),
		InitialSalonLoan:  Int64(-1),
		SalonLoan:         Int64(-2_147_483_649),
		SalonClean:        80,
		SalonBeautiful:    60,
		SalonEvaluation:   4,
		IsFirstNameCall:   true,
		CurrentSalonGrade: 2,
		BestSalonGrade:    3,
		HaveTrophyList:    []int32{100, 101, 250},
		MaidClassOpenFlag: []int32{1, 2},
	}
	for i := 0; i < ScheduleSlotCount; i++ {
		slot := ScheduleSlot{NoonSuccessLevel: int32(i), NightSuccessLevel: int32(i * 2)}
		if i == 0 {
			slot.MaidGUID = "5f3c-maid-guid"
			slot.Communication = true
			slot.BackupStatusDict.Set("likability", 12)
			slot.BackupStatusDict.Set("care", -3)
		}
		p.ScheduleSlots = append(p.ScheduleSlots, slot)
	}
	p.GenericFlag.Set("チュートリアル", 1)
	p.GenericFlag.Set("flag_b", 0)
	p.NightWorksStateDict.Set(20, NightWorksState{WorkID: 20, CalledMaidGUID: "5f3c-maid-guid", Finish: true})
	p.NightWorksStateDict.Set(3, NightWorksState{WorkID: 3})
	p.ShopLineupDict.Set(900, 1)
	p.ShopLineupDict.Set(-5, 0)
	p.HaveItemList.Set("item_a", true)
	p.HaveItemList.Set("item_b", false)
	if HasRentalMaidBackup(version) {
		var flags ordered.Map[string, int32]
		flags.Set("rental", 7)
		p.RentalMaidBackupDataDict.Set("rental-guid", RentalMaidBackup{Name: "Rina", Experience: 99, GenericFlag: flags})
	}
	return p
}

func sampleProps(prefix string) MaidPropList {
	var l MaidPropList
	l.Set(prefix+"_body", MaidProp{Idx: 0, Name: prefix + "_body", Type: 1, ValueDefault: 50, Value: 55, TempValue: 55,
		ValueLinkMax: 100, FileName: "body001.menu", FileNameRID: -123456, Dut: true, Max: 100, Min: 0})
	l.Set(prefix+"_head", MaidProp{Idx: 1, Name: prefix + "_head", Type: 3, FileName: "", Max: 20, Min: -20})
	return l
}

func sampleMisc(slot int32) MaidMisc {
	return MaidMisc{
		ActiveSlotNo:  slot,
		TexIcon:       Blob{0x89, 'P', 'N', 'G'},
		ThumbCardTime: "20240101",
		ColorMan:      RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1},
	}
}

func sampleMaidParam() MaidParam {
	p := MaidParam{
		GUID:               "5f3c-maid-guid",
		CreateTime:         "2024/01/01 10:00",
		CreateTimeNum:      Int64(638396136000000000),
		EmploymentDay:      3,
		MaidPoint:          12,
		LastName:           "Sakura",
		FirstName:          "Mai",
		Profile:            "profile text",
		FreeComment:        "",
		InitialExperience:  1,
		Experience:         2,
		Personal:           10,
		ContractType:       1,
		MaidClassData:      []ClassData{{Have: true, Exp: ExpData{CurrentExp: 1, TotalExp: 2, NextExp: 3, Level: 4}}, {}},
		CurrentMaidClass:   0,
		SexualClassData:    []ClassData{{Have: false, Exp: ExpData{Level: 1}}},
		CurrentSexualClass: 0,
		Features:           []int32{5, 9},
		Body:               Body{Height: 158, Weight: 45, Bust: 84, Waist: 58, Hip: 86, Cup: "C"},
		Condition:          1,
		Likability:         77,
		CurrentHP:          90,
		HP:                 100,
		Lust:               12,
		Masochism:          3,
		TeachRate:          5,
		Sexual:             SexualAffinity{Mouth: 1, Throat: 2, Nipple: 3, Front: 4, Back: 5, Curi: 6},
		PlayNumber:         8,
		PopularRank:        -1,
		Evaluation:         Int64(1 << 40),
		TotalEvaluation:    Int64(-(1 << 40)),
		Sales:              123,
		TotalSales:         456,
		IsRentalMaid:       true,
		NoonWorkID:         11,
		NightWorkID:        21,
		Employment:         true,
		Leader:             false,
		EyePartsTab:        1,
		MaidClassBonusStatus: ClassBonus{
			HP: 1, Mind: 2, Reception: 3, Care: 4, Lovely: 5, Lust: 6,
			Elegance: 7, Masochism: 8, Charm: 9, Pervert: 10, Service: 11, TeachRate: 12,
		},
	}
	p.SkillData.Set(300, SkillData{ID: 300, PlayCount: 4_000_000_000, Exp: ExpData{Level: 2}})
	p.SkillData.Set(12, SkillData{ID: 12, PlayCount: 1})
	p.WorkData.Set(11, WorkData{ID: 11, PlayCount: 3, Level: 1})
	p.GenericFlag.Set("maid_flag", 1)
	p.PartsDict.Set("hair", "hair_f_001.menu")
	p.PartsDict.Set("eye", "")
	return p
}
