package summary

func init() {
	Register("XChainCommit", parseXChainCommit)
	Register("XChainClaim", parseXChainClaim)
	Register("XChainCreateClaimID", parseXChainCreateClaimID)
	Register("XChainCreateBridge", parseXChainBridge)
	Register("XChainModifyBridge", parseXChainBridge)
}

func bridge(p *Parser, tx map[string]interface{}, d *Details) {
	b := mapOf(tx, "XChainBridge")
	if b == nil {
		return
	}
	d.Add("locking_chain_door", str(b, "LockingChainDoor"))
	d.Add("locking_chain_issue", p.Asset(b, "LockingChainIssue"))
	d.Add("issuing_chain_door", str(b, "IssuingChainDoor"))
	d.Add("issuing_chain_issue", p.Asset(b, "IssuingChainIssue"))
}

func parseXChainCommit(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.RequiredAmount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	d.AddSimple("amount", amt)
	d.AddSimple("xchain_claim_id", str(tx, "XChainClaimID"))
	d.Add("other_chain_destination", str(tx, "OtherChainDestination"))
	bridge(p, tx, &d)
	return d, nil
}

func parseXChainClaim(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.RequiredAmount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	destinationTag, err := optUint32(tx, "DestinationTag")
	if err != nil {
		return nil, err
	}
	d.AddSimple("destination", str(tx, "Destination"))
	d.Add("destination_tag", destinationTag)
	d.AddSimple("amount", amt)
	d.Add("xchain_claim_id", str(tx, "XChainClaimID"))
	bridge(p, tx, &d)
	return d, nil
}

func parseXChainCreateClaimID(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	reward, err := p.Amount(tx, "SignatureReward")
	if err != nil {
		return nil, err
	}
	d.AddSimple("other_chain_source", str(tx, "OtherChainSource"))
	d.Add("signature_reward", reward)
	bridge(p, tx, &d)
	return d, nil
}

func parseXChainBridge(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	reward, err := p.Amount(tx, "SignatureReward")
	if err != nil {
		return nil, err
	}
	minCreate, err := p.Amount(tx, "MinAccountCreateAmount")
	if err != nil {
		return nil, err
	}
	bridge(p, tx, &d)
	d.Add("signature_reward", reward)
	d.Add("min_account_create_amount", minCreate)
	return d, nil
}
