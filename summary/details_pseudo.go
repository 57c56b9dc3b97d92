package summary

func init() {
	Register("EnableAmendment", parseEnableAmendment)
	Register("SetFee", parseSetFee)
	Register("UNLModify", parseUNLModify)
}

func parseEnableAmendment(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	flags := uint32Of(tx, "Flags")
	status := "enabled"
	switch {
	case HasFlag("EnableAmendment", flags, "tfGotMajority"):
		status = "got_majority"
	case HasFlag("EnableAmendment", flags, "tfLostMajority"):
		status = "lost_majority"
	}
	d.AddSimple("amendment", str(tx, "Amendment"))
	d.AddSimple("status", status)
	return d, nil
}

// SetFee carries drops fields since the XRPFees amendment and fee units
// before it.
func parseSetFee(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	if _, ok := tx["BaseFeeDrops"]; ok {
		d.AddSimple("base_fee", p.Drops(tx, "BaseFeeDrops"))
		d.AddSimple("reserve_base", p.Drops(tx, "ReserveBaseDrops"))
		d.AddSimple("reserve_increment", p.Drops(tx, "ReserveIncrementDrops"))
		return d, nil
	}
	refUnits, err := optUint32(tx, "ReferenceFeeUnits")
	if err != nil {
		return nil, err
	}
	d.AddSimple("base_fee", p.Drops(tx, "BaseFee"))
	d.Add("reference_fee_units", refUnits)
	d.AddSimple("reserve_base", p.Drops(tx, "ReserveBase"))
	d.AddSimple("reserve_increment", p.Drops(tx, "ReserveIncrement"))
	return d, nil
}

func parseUNLModify(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	disabling, err := optUint32(tx, "UNLModifyDisabling")
	if err != nil {
		return nil, err
	}
	seq, err := optUint32(tx, "LedgerSequence")
	if err != nil {
		return nil, err
	}
	action := "enable"
	if disabling == uint32(1) {
		action = "disable"
	}
	d.AddSimple("action", action)
	d.AddSimple("validator", str(tx, "UNLModifyValidator"))
	d.Add("ledger_sequence", seq)
	return d, nil
}
