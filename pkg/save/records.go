package save

import "fmt"

// Each walk function below is the single description of a record's layout.
// Field order is the on-disk order.

func walkDocument(s *stream, d *Document) {
	s.marker(MarkerSave)
	if s.decoding() {
		d.Version = s.version
	}

	s.enter("header")
	walkHeader(s, &d.Header)
	s.leave()

	s.enter("chrMgr")
	walkCharacterMgr(s, &d.ChrMgr)
	s.leave()

	s.enter("script")
	walkScript(s, &d.Script)
	s.leave()

	if HasDeskDecorations(s.version) {
		s.enter("dskMgr")
		s.marker(MarkerDeskCustomize)
		list(s, "deskDecoration", &d.DskMgr.DeskDecoration, 1, walkDeskDecoration)
		s.leave()
	}
}

func walkHeader(s *stream, h *Header) {
	s.str(&h.SaveTime)
	s.i32(&h.GameDay)
	s.str(&h.PlayerName)
	s.i32(&h.MaidNum)
	s.str(&h.Comment)
}

func walkCharacterMgr(s *stream, c *CharacterMgr) {
	s.marker(MarkerCharacterMgr)

	s.enter("playerParam")
	walkPlayerParam(s, &c.PlayerParam)
	s.leave()

	list(s, "stockMan", &c.StockMan, 1, walkStockMan)
	list(s, "stockMaid", &c.StockMaid, 1, walkStockMaid)
}

func walkScript(s *stream, sc *Script) {
	s.marker(MarkerScript)
	s.marker(MarkerKAG)
	s.enter("kag")
	s.blob(&sc.KAG)
	s.leave()
	s.boolean(&sc.FadeWait)
	s.boolean(&sc.Enabled)
}

func walkDeskDecoration(s *stream, d *DeskDecoration) {
	s.f32(&d.ID)
	s.f32(&d.Index)
	s.boolean(&d.Visible)
	s.boolean(&d.MonthOnly)
	s.xyz(&d.Pos)
	s.xyz(&d.Rot)
	s.xyz(&d.Sca)
}

func walkPlayerParam(s *stream, p *PlayerParam) {
	s.marker(MarkerPlayerParam)

	s.str(&p.PlayerName)
	s.i32(&p.ScenarioPhase)
	s.i32(&p.PhaseDays)
	s.i32(&p.Days)
	s.i64(&p.ShopUseMoney)
	s.i64(&p.Money)
	s.i64(&p.InitialSalonLoan)
	s.i64(&p.SalonLoan)
	s.i32(&p.SalonClean)
	s.i32(&p.SalonBeautiful)
	s.i32(&p.SalonEvaluation)
	s.boolean(&p.IsFirstNameCall)
	s.i32(&p.CurrentSalonGrade)
	s.i32(&p.BestSalonGrade)

	s.enter("scheduleSlots")
	if s.decoding() {
		p.ScheduleSlots = make([]ScheduleSlot, ScheduleSlotCount)
	} else if len(p.ScheduleSlots) != ScheduleSlotCount {
		s.fail(fmt.Errorf("%w: %d schedule slots, want %d",
			ErrInvalidDocument, len(p.ScheduleSlots), ScheduleSlotCount))
	}
	for i := 0; i < ScheduleSlotCount && !s.failed(); i++ {
		s.index(i)
		walkScheduleSlot(s, &p.ScheduleSlots[i])
		s.leave()
	}
	s.leave()

	dict(s, "genericFlag", &p.GenericFlag, 5, (*stream).str, (*stream).i32)
	dict(s, "nightWorksStateDict", &p.NightWorksStateDict, 10, (*stream).i32, walkNightWorksState)
	dict(s, "shopLineupDict", &p.ShopLineupDict, 8, (*stream).i32, (*stream).i32)
	dict(s, "haveItemList", &p.HaveItemList, 2, (*stream).str, (*stream).boolean)
	s.int32s("haveTrophyList", &p.HaveTrophyList)
	s.int32s("maidClassOpenFlag", &p.MaidClassOpenFlag)
	s.int32s("sexualClassOpenFlag", &p.SexualClassOpenFlag)

	if HasRentalMaidBackup(s.version) {
		dict(s, "rentalMaidBackupDataDict", &p.RentalMaidBackupDataDict, 10, (*stream).str, walkRentalMaidBackup)
	} else if !s.decoding() && p.RentalMaidBackupDataDict.Len() > 0 {
		s.fail(fmt.Errorf("%w: rental maid backups need version %d or later",
			ErrInvalidDocument, RentalMaidBackupVersion))
	}

	s.magic(PlayerParamMagic)
}

func walkScheduleSlot(s *stream, slot *ScheduleSlot) {
	s.str(&slot.MaidGUID)
	s.i32(&slot.NoonSuccessLevel)
	s.i32(&slot.NightSuccessLevel)
	s.boolean(&slot.Communication)
	dict(s, "backupStatusDict", &slot.BackupStatusDict, 5, (*stream).str, (*stream).i32)
}

func walkNightWorksState(s *stream, n *NightWorksState) {
	s.i32(&n.WorkID)
	s.str(&n.CalledMaidGUID)
	s.boolean(&n.Finish)
}

func walkRentalMaidBackup(s *stream, b *RentalMaidBackup) {
	s.str(&b.Name)
	s.i32(&b.Experience)
	dict(s, "genericFlag", &b.GenericFlag, 5, (*stream).str, (*stream).i32)
}

func walkStockMan(s *stream, m *StockMan) {
	walkMaidPropList(s, &m.Props)

	s.enter("misc")
	walkMaidMisc(s, &m.Misc)
	s.leave()
}

func walkStockMaid(s *stream, m *StockMaid) {
	walkMaidPropList(s, &m.Props)
	walkPartsColors(s, &m.Parts)

	s.enter("param")
	walkMaidParam(s, &m.Param)
	s.leave()

	s.enter("misc")
	walkMaidMisc(s, &m.Misc)
	s.leave()
}

func walkMaidPropList(s *stream, l *MaidPropList) {
	s.enter("props")
	s.marker(MarkerMaidPropList)
	s.leave()
	dict(s, "props", l, 1, (*stream).str, walkMaidProp)
}

func walkMaidProp(s *stream, p *MaidProp) {
	s.marker(MarkerMaidProp)
	s.i32(&p.Idx)
	s.str(&p.Name)
	s.i32(&p.Type)
	s.i32(&p.ValueDefault)
	s.i32(&p.Value)
	s.i32(&p.TempValue)
	s.i32(&p.ValueLinkMax)
	s.str(&p.FileName)
	s.i32(&p.FileNameRID)
	s.boolean(&p.Dut)
	s.i32(&p.Max)
	s.i32(&p.Min)
}

func walkMaidMisc(s *stream, m *MaidMisc) {
	s.marker(MarkerMaidMisc)
	s.i32(&m.ActiveSlotNo)
	s.enter("texIcon")
	s.blob(&m.TexIcon)
	s.leave()
	s.str(&m.ThumbCardTime)
	s.rgba(&m.ColorMan)
}

func walkPartsColors(s *stream, parts *[]PartsColor) {
	s.enter("parts")
	s.marker(MarkerMultiColor)
	s.leave()
	list(s, "parts", parts, 37, walkPartsColor)
}

func walkPartsColor(s *stream, c *PartsColor) {
	s.boolean(&c.Use)
	s.i32(&c.MainHue)
	s.i32(&c.MainChroma)
	s.i32(&c.MainBrightness)
	s.i32(&c.MainContrast)
	s.i32(&c.ShadowRate)
	s.i32(&c.ShadowHue)
	s.i32(&c.ShadowChroma)
	s.i32(&c.ShadowBrightness)
	s.i32(&c.ShadowContrast)
}

func walkMaidParam(s *stream, p *MaidParam) {
	s.marker(MarkerMaidParam)

	s.str(&p.GUID)
	s.str(&p.CreateTime)
	s.i64(&p.CreateTimeNum)
	s.i32(&p.EmploymentDay)
	s.i32(&p.MaidPoint)
	s.str(&p.LastName)
	s.str(&p.FirstName)
	s.str(&p.Profile)
	s.str(&p.FreeComment)
	s.i32(&p.InitialExperience)
	s.i32(&p.Experience)
	s.i32(&p.Personal)
	s.i32(&p.ContractType)

	list(s, "maidClassData", &p.MaidClassData, 17, walkClassData)
	s.i32(&p.CurrentMaidClass)
	list(s, "sexualClassData", &p.SexualClassData, 17, walkClassData)
	s.i32(&p.CurrentSexualClass)
	s.int32s("features", &p.Features)
	s.int32s("propensities", &p.Propensities)

	walkBody(s, &p.Body)

	for _, v := range []*int32{
		&p.Condition, &p.ConditionSpecial, &p.SexCount, &p.OthersPlayCount,
		&p.Likability, &p.StudyRate, &p.CurrentHP, &p.HP,
		&p.CurrentMind, &p.Mind, &p.CurrentReason, &p.Reason,
		&p.Reception, &p.Care, &p.Lovely, &p.Lust,
		&p.Elegance, &p.Masochism, &p.Charm, &p.Pervert,
		&p.Service, &p.TeachRate,
	} {
		s.i32(v)
	}

	walkSexualAffinity(s, &p.Sexual)

	s.i32(&p.PlayNumber)
	s.i32(&p.Frustration)
	s.i32(&p.PopularRank)
	s.i64(&p.Evaluation)
	s.i64(&p.TotalEvaluation)
	s.i64(&p.Sales)
	s.i64(&p.TotalSales)
	s.boolean(&p.IsFirstNameCall)
	s.boolean(&p.IsRentalMaid)
	s.i32(&p.NoonWorkID)
	s.i32(&p.NightWorkID)

	dict(s, "skillData", &p.SkillData, 28, (*stream).i32, walkSkillData)
	dict(s, "workData", &p.WorkData, 16, (*stream).i32, walkWorkData)
	dict(s, "genericFlag", &p.GenericFlag, 5, (*stream).str, (*stream).i32)
	s.boolean(&p.Employment)
	s.boolean(&p.Leader)
	s.i32(&p.EyePartsTab)
	dict(s, "partsDict", &p.PartsDict, 2, (*stream).str, (*stream).str)

	walkClassBonus(s, &p.MaidClassBonusStatus)

	s.magic(MaidParamMagic)
}

func walkExpData(s *stream, e *ExpData) {
	s.i32(&e.CurrentExp)
	s.i32(&e.TotalExp)
	s.i32(&e.NextExp)
	s.i32(&e.Level)
}

func walkClassData(s *stream, c *ClassData) {
	s.boolean(&c.Have)
	walkExpData(s, &c.Exp)
}

func walkBody(s *stream, b *Body) {
	s.i32(&b.Height)
	s.i32(&b.Weight)
	s.i32(&b.Bust)
	s.i32(&b.Waist)
	s.i32(&b.Hip)
	s.str(&b.Cup)
}

func walkSexualAffinity(s *stream, a *SexualAffinity) {
	s.i32(&a.Mouth)
	s.i32(&a.Throat)
	s.i32(&a.Nipple)
	s.i32(&a.Front)
	s.i32(&a.Back)
	s.i32(&a.Curi)
}

func walkSkillData(s *stream, d *SkillData) {
	s.i32(&d.ID)
	s.u32(&d.PlayCount)
	walkExpData(s, &d.Exp)
}

func walkWorkData(s *stream, d *WorkData) {
	s.i32(&d.ID)
	s.u32(&d.PlayCount)
	s.i32(&d.Level)
}

func walkClassBonus(s *stream, b *ClassBonus) {
	for _, v := range []*int32{
		&b.HP, &b.Mind, &b.Reception, &b.Care, &b.Lovely, &b.Lust,
		&b.Elegance, &b.Masochism, &b.Charm, &b.Pervert, &b.Service, &b.TeachRate,
	} {
		s.i32(v)
	}
}
