package summary

import "github.com/xrpscan/explorer/codec"

func init() {
	Register("NFTokenMint", parseNFTokenMint)
	Register("NFTokenBurn", parseNFTokenBurn)
	Register("NFTokenCreateOffer", parseNFTokenCreateOffer)
	Register("NFTokenCancelOffer", parseNFTokenCancelOffer)
	Register("NFTokenAcceptOffer", parseNFTokenAcceptOffer)
	Register("NFTokenModify", parseNFTokenModify)
}

func parseNFTokenMint(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	taxon, err := optUint32(tx, "NFTokenTaxon")
	if err != nil {
		return nil, err
	}
	fee, err := optUint32(tx, "TransferFee")
	if err != nil {
		return nil, err
	}
	amt, err := p.Amount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	id := str(meta, "nftoken_id")
	if id == "" {
		id = mintedTokenID(meta)
	}
	d.AddSimple("nftoken_id", id)
	d.Add("taxon", taxon)
	if fee != nil {
		d.Add("transfer_fee", percentOf(fee.(uint32), 100000))
	}
	d.Add("issuer", str(tx, "Issuer"))
	if uri, ok := tx["URI"].(string); ok {
		d.Add("uri", codec.HexToString(uri))
	}
	d.Add("amount", amt)
	d.Add("destination", str(tx, "Destination"))
	d.Add("nftoken", decodedToken(id))
	return d, nil
}

func decodedToken(id string) *codec.NFTokenID {
	token, err := codec.DecodeNFTokenID(id)
	if err != nil {
		return nil
	}
	return &token
}

// mintedTokenID finds the token id present in the final NFTokenPage state
// but not in the previous one. Ledgers older than the nftoken_id metadata
// field only carry the page diff. A modified page only counts when its token
// list changed; a split can touch just the page links.
func mintedTokenID(meta map[string]interface{}) string {
	before := map[string]bool{}
	after := []string{}
	for _, raw := range sliceOf(meta, "AffectedNodes") {
		wrapper, _ := raw.(map[string]interface{})
		for _, nodeType := range []string{"CreatedNode", "ModifiedNode"} {
			node := mapOf(wrapper, nodeType)
			if str(node, "LedgerEntryType") != "NFTokenPage" {
				continue
			}
			previous := mapOf(node, "PreviousFields")
			if nodeType == "ModifiedNode" {
				if _, ok := previous["NFTokens"]; !ok {
					continue
				}
			}
			final := mapOf(node, "FinalFields")
			if final == nil {
				final = mapOf(node, "NewFields")
			}
			after = append(after, pageTokenIDs(final)...)
			for _, id := range pageTokenIDs(previous) {
				before[id] = true
			}
		}
	}
	for _, id := range after {
		if !before[id] {
			return id
		}
	}
	return ""
}

func pageTokenIDs(fields map[string]interface{}) []string {
	ids := []string{}
	for _, raw := range sliceOf(fields, "NFTokens") {
		entry, _ := raw.(map[string]interface{})
		if id := str(mapOf(entry, "NFToken"), "NFTokenID"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseNFTokenBurn(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	id := str(tx, "NFTokenID")
	d.AddSimple("nftoken_id", id)
	d.Add("owner", str(tx, "Owner"))
	d.Add("nftoken", decodedToken(id))
	return d, nil
}

func parseNFTokenCreateOffer(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.RequiredAmount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	expiration, err := rippleTime(tx, "Expiration")
	if err != nil {
		return nil, err
	}
	offer := str(meta, "offer_id")
	if offer == "" {
		offer = createdIndex(meta, "NFTokenOffer")
	}
	d.AddSimple("nftoken_id", str(tx, "NFTokenID"))
	d.AddSimple("amount", amt)
	d.Add("sell", HasFlag("NFTokenCreateOffer", uint32Of(tx, "Flags"), "tfSellNFToken"))
	d.Add("owner", str(tx, "Owner"))
	d.Add("destination", str(tx, "Destination"))
	d.Add("expiration", expiration)
	d.Add("offer_index", offer)
	return d, nil
}

func parseNFTokenCancelOffer(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	offers := []string{}
	for _, raw := range sliceOf(tx, "NFTokenOffers") {
		if id, ok := raw.(string); ok {
			offers = append(offers, id)
		}
	}
	d.AddSimple("offers", offers)
	return d, nil
}

func parseNFTokenAcceptOffer(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	brokerFee, err := p.Amount(tx, "NFTokenBrokerFee")
	if err != nil {
		return nil, err
	}
	d.AddSimple("nftoken_id", str(meta, "nftoken_id"))
	d.Add("sell_offer", str(tx, "NFTokenSellOffer"))
	d.Add("buy_offer", str(tx, "NFTokenBuyOffer"))
	d.Add("broker_fee", brokerFee)
	if offer := FindNode(meta, "DeletedNode", "NFTokenOffer"); offer != nil {
		price, err := p.Amount(mapOf(offer, "FinalFields"), "Amount")
		if err != nil {
			return nil, err
		}
		d.AddSimple("amount", price)
	}
	return d, nil
}

func parseNFTokenModify(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	d.AddSimple("nftoken_id", str(tx, "NFTokenID"))
	d.Add("owner", str(tx, "Owner"))
	if uri, ok := tx["URI"].(string); ok {
		d.Add("uri", codec.HexToString(uri))
	}
	return d, nil
}
