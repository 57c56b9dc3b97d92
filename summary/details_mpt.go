package summary

import (
	"github.com/shopspring/decimal"
	"github.com/xrpscan/explorer/codec"
)

func init() {
	Register("MPTokenIssuanceCreate", parseMPTokenIssuanceCreate)
	Register("MPTokenIssuanceDestroy", parseMPTokenIssuance)
	Register("MPTokenIssuanceSet", parseMPTokenIssuance)
	Register("MPTokenAuthorize", parseMPTokenIssuance)
}

func parseMPTokenIssuanceCreate(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	scale, err := optUint32(tx, "AssetScale")
	if err != nil {
		return nil, err
	}
	fee, err := optUint32(tx, "TransferFee")
	if err != nil {
		return nil, err
	}
	id := str(meta, "mpt_issuance_id")
	if id == "" {
		id = createdIndex(meta, "MPTokenIssuance")
	}
	d.AddSimple("mpt_issuance_id", id)
	d.Add("asset_scale", scale)
	if maximum, ok := tx["MaximumAmount"].(string); ok {
		d.Add("maximum_amount", scaled(maximum, scale))
	}
	if fee != nil {
		d.Add("transfer_fee", percentOf(fee.(uint32), 100000))
	}
	if metadata, ok := tx["MPTokenMetadata"].(string); ok {
		d.Add("metadata", codec.HexToString(metadata))
	}
	return d, nil
}

// scaled shifts an integer MPT amount by its asset scale.
func scaled(value string, scale interface{}) string {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return "0"
	}
	if s, ok := scale.(uint32); ok {
		v = v.Shift(-int32(s))
	}
	return v.String()
}

func parseMPTokenIssuance(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	d.AddSimple("mpt_issuance_id", str(tx, "MPTokenIssuanceID"))
	d.AddSimple("holder", str(tx, "Holder"))
	return d, nil
}
