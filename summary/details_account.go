package summary

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xrpscan/explorer/codec"
)

func init() {
	Register("AccountSet", parseAccountSet)
	Register("AccountDelete", parseAccountDelete)
	Register("SetRegularKey", parseSetRegularKey)
	Register("SignerListSet", parseSignerListSet)
	Register("TicketCreate", parseTicketCreate)
	Register("DepositPreauth", parseDepositPreauth)
}

// AccountSet SetFlag / ClearFlag values
// Ref: https://xrpl.org/docs/references/protocol/transactions/types/accountset#accountset-flags
var accountSetFlags = map[uint32]string{
	1:  "asfRequireDest",
	2:  "asfRequireAuth",
	3:  "asfDisallowXRP",
	4:  "asfDisableMaster",
	5:  "asfAccountTxnID",
	6:  "asfNoFreeze",
	7:  "asfGlobalFreeze",
	8:  "asfDefaultRipple",
	9:  "asfDepositAuth",
	10: "asfAuthorizedNFTokenMinter",
	12: "asfDisallowIncomingNFTokenOffer",
	13: "asfDisallowIncomingCheck",
	14: "asfDisallowIncomingPayChan",
	15: "asfDisallowIncomingTrustline",
	16: "asfAllowTrustLineClawback",
	17: "asfAllowTrustLineLocking",
}

func accountSetFlagName(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	if name, ok := accountSetFlags[v.(uint32)]; ok {
		return name
	}
	return fmt.Sprintf("%d", v)
}

// Transfer rates are stored as 1e9 plus the fee in billionths.
const transferRateBase = 1000000000

func parseAccountSet(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	setFlag, err := optUint32(tx, "SetFlag")
	if err != nil {
		return nil, err
	}
	clearFlag, err := optUint32(tx, "ClearFlag")
	if err != nil {
		return nil, err
	}
	rate, err := optUint32(tx, "TransferRate")
	if err != nil {
		return nil, err
	}
	tickSize, err := optUint32(tx, "TickSize")
	if err != nil {
		return nil, err
	}
	d.AddSimple("set_flag", accountSetFlagName(setFlag))
	d.AddSimple("clear_flag", accountSetFlagName(clearFlag))
	if domain, ok := tx["Domain"].(string); ok {
		d.AddSimple("domain", codec.HexToString(domain))
	}
	d.Add("email_hash", str(tx, "EmailHash"))
	d.Add("message_key", str(tx, "MessageKey"))
	if rate != nil {
		d.Add("transfer_rate", transferRate(rate.(uint32)))
	}
	d.Add("tick_size", tickSize)
	d.Add("nftoken_minter", str(tx, "NFTokenMinter"))
	return d, nil
}

// transferRate renders a TransferRate as a fee percentage. 0 and 1e9 both
// mean no fee.
func transferRate(rate uint32) string {
	if rate <= transferRateBase {
		return "0%"
	}
	return decimal.NewFromInt(int64(rate-transferRateBase)).Shift(-7).String() + "%"
}

func parseAccountDelete(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	destinationTag, err := optUint32(tx, "DestinationTag")
	if err != nil {
		return nil, err
	}
	delivered, err := p.Amount(meta, "delivered_amount")
	if err != nil {
		return nil, err
	}
	d.AddSimple("destination", str(tx, "Destination"))
	d.Add("destination_tag", destinationTag)
	d.AddSimple("delivered_amount", delivered)
	return d, nil
}

func parseSetRegularKey(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	if key := str(tx, "RegularKey"); key != "" {
		d.AddSimple("regular_key", key)
	} else {
		d.AddSimple("regular_key_removed", true)
	}
	return d, nil
}

func parseSignerListSet(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	quorum, err := optUint32(tx, "SignerQuorum")
	if err != nil {
		return nil, err
	}
	signers := []map[string]interface{}{}
	for _, raw := range sliceOf(tx, "SignerEntries") {
		entry, _ := raw.(map[string]interface{})
		signer := mapOf(entry, "SignerEntry")
		if signer == nil {
			return nil, fmt.Errorf("%w: SignerEntries", ErrMalformedField)
		}
		weight, err := optUint32(signer, "SignerWeight")
		if err != nil {
			return nil, err
		}
		signers = append(signers, map[string]interface{}{
			"account": str(signer, "Account"),
			"weight":  weight,
		})
	}
	d.AddSimple("signer_quorum", quorum)
	d.Add("signers", signers)
	return d, nil
}

func parseTicketCreate(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	count, err := optUint32(tx, "TicketCount")
	if err != nil {
		return nil, err
	}
	d.AddSimple("ticket_count", count)
	return d, nil
}

func parseDepositPreauth(p *Parser, tx, meta map[string]interface{}) (Details, error) {
	d := Details{}
	d.AddSimple("authorize", str(tx, "Authorize"))
	d.AddSimple("unauthorize", str(tx, "Unauthorize"))
	return d, nil
}
