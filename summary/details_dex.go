package summary

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xrpscan/explorer/amount"
)

func init() {
	Register("OfferCreate", parseOfferCreate)
	Register("OfferCancel", parseOfferCancel)
	Register("TrustSet", parseTrustSet)
	Register("AMMCreate", parseAMMCreate)
	Register("AMMDeposit", parseAMMDeposit)
	Register("AMMWithdraw", parseAMMWithdraw)
	Register("AMMVote", parseAMMVote)
	Register("AMMBid", parseAMMBid)
	Register("AMMDelete", parseAMMDelete)
	Register("AMMClawback", parseAMMClawback)
}

func parseOfferCreate(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	gets, err := p.RequiredAmount(tx, "TakerGets")
	if err != nil {
		return nil, err
	}
	pays, err := p.RequiredAmount(tx, "TakerPays")
	if err != nil {
		return nil, err
	}
	replaces, err := optUint32(tx, "OfferSequence")
	if err != nil {
		return nil, err
	}
	expiration, err := rippleTime(tx, "Expiration")
	if err != nil {
		return nil, err
	}
	d.AddSimple("taker_gets", gets)
	d.AddSimple("taker_pays", pays)
	d.Add("price", price(pays, gets))
	d.Add("cancel_offer_sequence", replaces)
	d.Add("expiration", expiration)
	d.Add("offer_index", createdIndex(meta, "Offer"))
	return d, nil
}

// price is pays per unit of gets, or "" when gets is zero.
func price(pays, gets *amount.Amount) string {
	p, _ := decimal.NewFromString(pays.Value)
	g, _ := decimal.NewFromString(gets.Value)
	if g.IsZero() {
		return ""
	}
	return p.DivRound(g, 16).String()
}

func parseOfferCancel(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	seq, err := optUint32(tx, "OfferSequence")
	if err != nil {
		return nil, err
	}
	d.AddSimple("offer_sequence", seq)
	return d, nil
}

func parseTrustSet(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	if _, ok := tx["LimitAmount"].(map[string]interface{}); !ok {
		return nil, fmt.Errorf("%w: LimitAmount must be an issued amount", ErrMalformedField)
	}
	limit, err := p.RequiredAmount(tx, "LimitAmount")
	if err != nil {
		return nil, err
	}
	qualityIn, err := optUint32(tx, "QualityIn")
	if err != nil {
		return nil, err
	}
	qualityOut, err := optUint32(tx, "QualityOut")
	if err != nil {
		return nil, err
	}
	d.AddSimple("limit", limit)
	d.Add("quality_in", qualityIn)
	d.Add("quality_out", qualityOut)
	return d, nil
}

func ammPool(p *Parser, tx map[string]interface{}, d *Details) {
	d.AddSimple("asset", p.Asset(tx, "Asset"))
	d.AddSimple("asset2", p.Asset(tx, "Asset2"))
}

func parseAMMCreate(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	amt, err := p.RequiredAmount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	amt2, err := p.RequiredAmount(tx, "Amount2")
	if err != nil {
		return nil, err
	}
	fee, err := optUint32(tx, "TradingFee")
	if err != nil {
		return nil, err
	}
	d.AddSimple("amount", amt)
	d.AddSimple("amount2", amt2)
	if fee != nil {
		d.Add("trading_fee", percentOf(fee.(uint32), 100000))
	}
	if amm := FindNode(meta, "CreatedNode", "AMM"); amm != nil {
		d.Add("amm_account", str(mapOf(amm, "NewFields"), "Account"))
	}
	return d, nil
}

func ammLiquidity(p *Parser, tx map[string]interface{}, lpKey string) (Details, error) {
	d := Details{}
	ammPool(p, tx, &d)
	amt, err := p.Amount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	amt2, err := p.Amount(tx, "Amount2")
	if err != nil {
		return nil, err
	}
	ePrice, err := p.Amount(tx, "EPrice")
	if err != nil {
		return nil, err
	}
	lp, err := p.Amount(tx, lpKey)
	if err != nil {
		return nil, err
	}
	d.Add("amount", amt)
	d.Add("amount2", amt2)
	d.Add("e_price", ePrice)
	d.Add("lp_token", lp)
	return d, nil
}

func parseAMMDeposit(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	return ammLiquidity(p, tx, "LPTokenOut")
}

func parseAMMWithdraw(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	return ammLiquidity(p, tx, "LPTokenIn")
}

func parseAMMVote(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	ammPool(p, tx, &d)
	fee, err := optUint32(tx, "TradingFee")
	if err != nil {
		return nil, err
	}
	if fee != nil {
		d.AddSimple("trading_fee", percentOf(fee.(uint32), 100000))
	}
	return d, nil
}

func parseAMMBid(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	ammPool(p, tx, &d)
	bidMin, err := p.Amount(tx, "BidMin")
	if err != nil {
		return nil, err
	}
	bidMax, err := p.Amount(tx, "BidMax")
	if err != nil {
		return nil, err
	}
	d.Add("bid_min", bidMin)
	d.Add("bid_max", bidMax)

	accounts := []string{}
	for _, raw := range sliceOf(tx, "AuthAccounts") {
		entry, _ := raw.(map[string]interface{})
		if account := str(mapOf(entry, "AuthAccount"), "Account"); account != "" {
			accounts = append(accounts, account)
		}
	}
	d.Add("auth_accounts", accounts)
	return d, nil
}

func parseAMMDelete(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	ammPool(p, tx, &d)
	return d, nil
}

func parseAMMClawback(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	ammPool(p, tx, &d)
	amt, err := p.Amount(tx, "Amount")
	if err != nil {
		return nil, err
	}
	d.AddSimple("holder", str(tx, "Holder"))
	d.Add("amount", amt)
	return d, nil
}
