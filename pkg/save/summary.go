package save

// Summary is a short description of a document for logs and the info
// command
type Summary struct {
	Version         int32  `json:"version" yaml:"version"`
	VersionString   string `json:"versionString" yaml:"versionString"`
	SaveTime        string `json:"saveTime" yaml:"saveTime"`
	GameDay         int32  `json:"gameDay" yaml:"gameDay"`
	PlayerName      string `json:"playerName" yaml:"playerName"`
	Comment         string `json:"comment" yaml:"comment"`
	Money           int64  `json:"money" yaml:"money"`
	Men             int    `json:"men" yaml:"men"`
	Maids           int    `json:"maids" yaml:"maids"`
	RentalMaids     int    `json:"rentalMaids" yaml:"rentalMaids"`
	DeskDecorations int    `json:"deskDecorations" yaml:"deskDecorations"`
	ScriptBytes     int    `json:"scriptBytes" yaml:"scriptBytes"`
}

func (d *Document) Summary() Summary {
	sum := Summary{
		Version:         d.Version,
		VersionString:   FormatVersion(d.Version),
		SaveTime:        d.Header.SaveTime,
		GameDay:         d.Header.GameDay,
		PlayerName:      d.Header.PlayerName,
		Comment:         d.Header.Comment,
		Money:           int64(d.ChrMgr.PlayerParam.Money),
		Men:             len(d.ChrMgr.StockMan),
		Maids:           len(d.ChrMgr.StockMaid),
		DeskDecorations: len(d.DskMgr.DeskDecoration),
		ScriptBytes:     len(d.Script.KAG),
	}
	for _, m := range d.ChrMgr.StockMaid {
		if m.Param.IsRentalMaid {
			sum.RentalMaids++
		}
	}
	return sum
}
