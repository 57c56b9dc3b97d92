package summary

func init() {
	Register("Payment", parsePayment)
	Register("EscrowCreate", parseEscrowCreate)
	Register("EscrowFinish", parseEscrowFinish)
	Register("EscrowCancel", parseEscrowCancel)
	Register("PaymentChannelCreate", parsePaymentChannelCreate)
	Register("PaymentChannelFund", parsePaymentChannelFund)
	Register("PaymentChannelClaim", parsePaymentChannelClaim)
	Register("CheckCreate", parseCheckCreate)
	Register("CheckCash", parseCheckCash)
	Register("CheckCancel", parseCheckCancel)
	Register("Clawback", parseClawback)
}

// deliverKey prefers DeliverMax, the api v2 name of a payment's Amount.
func deliverKey(tx map[string]interface{}) string {
	if _, ok := tx["DeliverMax"]; ok {
		return "DeliverMax"
	}
	return "Amount"
}

func parsePayment(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.RequiredAmount(tx, deliverKey(tx))
	if err != nil {
		return nil, err
	}
	sendMax, err := p.Amount(tx, "SendMax")
	if err != nil {
		return nil, err
	}
	deliverMin, err := p.Amount(tx, "DeliverMin")
	if err != nil {
		return nil, err
	}
	delivered, err := p.Amount(meta, "delivered_amount")
	if err != nil {
		return nil, err
	}
	if delivered == nil {
		if delivered, err = p.Amount(meta, "DeliveredAmount"); err != nil {
			return nil, err
		}
	}
	destinationTag, err := optUint32(tx, "DestinationTag")
	if err != nil {
		return nil, err
	}
	sourceTag, err := optUint32(tx, "SourceTag")
	if err != nil {
		return nil, err
	}

	d.AddSimple("destination", str(tx, "Destination"))
	d.Add("destination_tag", destinationTag)
	d.Add("source_tag", sourceTag)
	if delivered != nil {
		d.Add("amount", amt)
		d.AddSimple("delivered_amount", delivered)
	} else {
		d.AddSimple("amount", amt)
	}
	d.Add("send_max", sendMax)
	d.Add("deliver_min", deliverMin)
	d.Add("invoice_id", str(tx, "InvoiceID"))
	d.Add("partial_payment", HasFlag("Payment", uint32Of(tx, "Flags"), "tfPartialPayment"))
	return d, nil
}

func parseEscrowCreate(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.Amount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	finishAfter, err := rippleTime(tx, "FinishAfter")
	if err != nil {
		return nil, err
	}
	cancelAfter, err := rippleTime(tx, "CancelAfter")
	if err != nil {
		return nil, err
	}
	d.AddSimple("destination", str(tx, "Destination"))
	d.AddSimple("amount", amt)
	d.Add("finish_after", finishAfter)
	d.Add("cancel_after", cancelAfter)
	d.Add("condition", str(tx, "Condition"))
	d.Add("escrow_index", createdIndex(meta, "Escrow"))
	return d, nil
}

func parseEscrowFinish(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d, err := escrowReference(tx)
	if err != nil {
		return nil, err
	}
	d.Add("fulfillment", str(tx, "Fulfillment"))
	if escrow := FindNode(meta, "DeletedNode", "Escrow"); escrow != nil {
		final := mapOf(escrow, "FinalFields")
		amt, err := p.Amount(final, "Amount")
		if err != nil {
			return nil, err
		}
		d.AddSimple("destination", str(final, "Destination"))
		d.AddSimple("amount", amt)
	}
	return d, nil
}

func parseEscrowCancel(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	return escrowReference(tx)
}

func escrowReference(tx map[string]interface{}) (Details, error) {
	d := Details{}
	seq, err := optUint32(tx, "OfferSequence")
	if err != nil {
		return nil, err
	}
	d.AddSimple("owner", str(tx, "Owner"))
	d.AddSimple("escrow_sequence", seq)
	return d, nil
}

func parsePaymentChannelCreate(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.RequiredAmount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	settleDelay, err := optUint32(tx, "SettleDelay")
	if err != nil {
		return nil, err
	}
	cancelAfter, err := rippleTime(tx, "CancelAfter")
	if err != nil {
		return nil, err
	}
	destinationTag, err := optUint32(tx, "DestinationTag")
	if err != nil {
		return nil, err
	}
	d.AddSimple("amount", amt)
	d.Add("source", str(tx, "Account"))
	d.AddSimple("destination", str(tx, "Destination"))
	d.Add("destination_tag", destinationTag)
	d.Add("public_key", str(tx, "PublicKey"))
	d.Add("settle_delay", settleDelay)
	d.Add("cancel_after", cancelAfter)
	d.AddSimple("channel", createdIndex(meta, "PayChannel"))
	return d, nil
}

func parsePaymentChannelFund(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.RequiredAmount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	expiration, err := rippleTime(tx, "Expiration")
	if err != nil {
		return nil, err
	}
	d.AddSimple("channel", str(tx, "Channel"))
	d.AddSimple("amount", amt)
	d.Add("expiration", expiration)
	return d, nil
}

func parsePaymentChannelClaim(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	balance, err := p.Amount(tx, "Balance")
	if err != nil {
		return nil, err
	}
	amt, err := p.Amount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	flags := uint32Of(tx, "Flags")
	d.AddSimple("channel", str(tx, "Channel"))
	d.AddSimple("balance", balance)
	d.Add("amount", amt)
	d.Add("public_key", str(tx, "PublicKey"))
	d.Add("renew", HasFlag("PaymentChannelClaim", flags, "tfRenew"))
	d.Add("close", HasFlag("PaymentChannelClaim", flags, "tfClose"))
	if channel := FindNode(meta, "ModifiedNode", "PayChannel"); channel != nil {
		d.Add("destination", str(mapOf(channel, "FinalFields"), "Destination"))
	}
	return d, nil
}

func parseCheckCreate(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	sendMax, err := p.RequiredAmount(tx, "SendMax")
	if err != nil {
		return nil, err
	}
	expiration, err := rippleTime(tx, "Expiration")
	if err != nil {
		return nil, err
	}
	destinationTag, err := optUint32(tx, "DestinationTag")
	if err != nil {
		return nil, err
	}
	d.AddSimple("destination", str(tx, "Destination"))
	d.Add("destination_tag", destinationTag)
	d.AddSimple("send_max", sendMax)
	d.Add("expiration", expiration)
	d.Add("invoice_id", str(tx, "InvoiceID"))
	d.Add("check_index", createdIndex(meta, "Check"))
	return d, nil
}

func parseCheckCash(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.Amount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	deliverMin, err := p.Amount(tx, "DeliverMin")
	if err != nil {
		return nil, err
	}
	d.AddSimple("check_id", str(tx, "CheckID"))
	d.AddSimple("amount", amt)
	d.AddSimple("deliver_min", deliverMin)
	return d, nil
}

func parseCheckCancel(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	d.AddSimple("check_id", str(tx, "CheckID"))
	return d, nil
}

func parseClawback(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.RequiredAmount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	// For trust line tokens the holder is carried in Amount.issuer
	holder := str(tx, "Holder")
	if holder == "" {
		holder = amt.Issuer
		amt.Issuer = str(tx, "Account")
	}
	d.AddSimple("holder", holder)
	d.AddSimple("amount", amt)
	return d, nil
}
