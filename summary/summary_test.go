package summary

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrpscan/explorer/amount"
	"github.com/xrpscan/explorer/classify"
	"github.com/xrpscan/explorer/codec"
	"github.com/xrpscan/explorer/memo"
)

const (
	alice = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	bob   = "rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe"
)

func newSummarizer() *Summarizer {
	return NewSummarizer(codec.DefaultNetwork, memo.NewDecoder(memo.NewRegistry()))
}

func paymentTx() map[string]interface{} {
	return map[string]interface{}{
		"TransactionType": "Payment",
		"Account":         alice,
		"Destination":     bob,
		"Amount":          "5000000",
		"DeliverMax":      "2000000",
		"Fee":             "12",
		"Sequence":        float64(7),
		"Flags":           float64(0x80020000),
		"DestinationTag":  float64(42),
		"hash":            "E08D6E9754025BA2534A78707605E0601F03ACE063687A0CA1BDDACFCD1698C7",
		"ledger_index":    float64(1000),
		"date":            float64(700000000),
		"Memos": []interface{}{
			map[string]interface{}{"Memo": map[string]interface{}{
				"MemoType": hex.EncodeToString([]byte("text")),
				"MemoData": hex.EncodeToString([]byte("thanks")),
			}},
		},
		"meta": map[string]interface{}{
			"TransactionResult": "tesSUCCESS",
			"TransactionIndex":  float64(3),
			"delivered_amount":  "2000000",
		},
	}
}

func TestSummarizePayment(t *testing.T) {
	s := newSummarizer()
	tx := s.SummarizeMap(context.Background(), paymentTx())

	assert.Equal(t, "E08D6E9754025BA2534A78707605E0601F03ACE063687A0CA1BDDACFCD1698C7", tx.Hash)
	assert.Equal(t, "Payment", tx.Type)
	assert.Equal(t, "tesSUCCESS", tx.Result)
	assert.True(t, tx.Successful())
	assert.Equal(t, alice, tx.Account)
	assert.Equal(t, bob, tx.Destination)
	assert.Equal(t, &amount.Amount{Value: "2", Currency: "PFT"}, tx.Amount)
	assert.Equal(t, "0.000012", tx.Fee)
	assert.Equal(t, uint32(7), tx.Sequence)
	assert.Equal(t, int64(700000000+946684800), tx.Date)
	assert.Equal(t, uint32(1000), tx.LedgerIndex)
	assert.Equal(t, uint32(3), tx.Index)
	assert.Equal(t, classify.ActionSend, tx.Action)
	assert.Equal(t, classify.CategoryPayment, tx.Category)
	assert.Equal(t, []string{"tfPartialPayment", "tfFullyCanonicalSig"}, tx.Flags)
	require.Len(t, tx.Memos, 1)
	assert.Equal(t, "text: thanks", tx.Memos[0].String())
	assert.False(t, tx.Partial)

	dest, ok := tx.Details.Get("destination_tag")
	require.True(t, ok)
	assert.Equal(t, uint32(42), dest)
	delivered, _ := tx.Details.Get("delivered_amount")
	assert.Equal(t, "2", delivered.(*amount.Amount).Value)
	partial, _ := tx.Details.Get("partial_payment")
	assert.Equal(t, true, partial)
}

func TestNewRawTransactionShapes(t *testing.T) {
	fields := map[string]interface{}{"TransactionType": "Payment", "Account": alice, "Fee": "10"}
	meta := map[string]interface{}{"TransactionResult": "tesSUCCESS", "TransactionIndex": float64(5)}

	v2 := NewRawTransaction(map[string]interface{}{
		"tx_json":      fields,
		"meta":         meta,
		"hash":         "AA",
		"ledger_index": float64(9),
	})
	assert.Equal(t, "Payment", v2.Type())
	assert.Equal(t, "AA", v2.Hash)
	assert.Equal(t, uint32(9), v2.LedgerIndex)
	assert.Equal(t, uint32(5), v2.Index())

	accountTx := NewRawTransaction(map[string]interface{}{
		"tx":   map[string]interface{}{"TransactionType": "OfferCreate", "hash": "BB", "ledger_index": float64(3), "date": float64(1)},
		"meta": meta,
	})
	assert.Equal(t, "OfferCreate", accountTx.Type())
	assert.Equal(t, "BB", accountTx.Hash)
	assert.Equal(t, uint32(3), accountTx.LedgerIndex)
	assert.Equal(t, uint32(1), accountTx.Date)

	ledgerEntry := NewRawTransaction(map[string]interface{}{
		"TransactionType": "TrustSet",
		"hash":            "CC",
		"metaData":        meta,
	})
	assert.Equal(t, "TrustSet", ledgerEntry.Type())
	assert.Equal(t, uint32(5), ledgerEntry.Index())

	binaryMeta := NewRawTransaction(map[string]interface{}{"TransactionType": "Payment", "meta": "201C00000000"})
	assert.Nil(t, binaryMeta.Meta)
	assert.Equal(t, uint32(0), binaryMeta.Index())
}

func TestFlags(t *testing.T) {
	assert.Equal(t, []string{}, Flags("Payment", 0))
	assert.Equal(t, []string{"tfSell", "tfFullyCanonicalSig"}, Flags("OfferCreate", 0x80080000))
	assert.Equal(t, []string{"tfBurnable", "tfTransferable"}, Flags("NFTokenMint", 0x9))
	assert.Equal(t, []string{"tfInnerBatchTxn", "0x00000100"}, Flags("Payment", 0x40000100))
	// type specific bits are unknown for other types
	assert.Equal(t, []string{"0x00020000"}, Flags("AccountDelete", 0x00020000))
	assert.Equal(t, []string{"tfMPTCanLock", "tfMPTCanClawback"}, Flags("MPTokenIssuanceCreate", 0x42))

	assert.True(t, HasFlag("PaymentChannelClaim", 0x20000, "tfClose"))
	assert.False(t, HasFlag("PaymentChannelClaim", 0x20000, "tfRenew"))
	assert.False(t, HasFlag("Payment", 0xFFFFFFFF, "tfNoSuchFlag"))
}

func TestPaymentChannelCreate(t *testing.T) {
	tx := map[string]interface{}{
		"TransactionType": "PaymentChannelCreate",
		"Account":         alice,
		"Destination":     bob,
		"Amount":          "10000",
		"SettleDelay":     float64(86400),
		"PublicKey":       "32D2471DB72B27E3310F355BB33E339BF26F8392D5A93D3BC0FC3B566612DA0F0A",
		"CancelAfter":     float64(533171558),
		"Fee":             "10",
		"meta": map[string]interface{}{
			"TransactionResult": "tesSUCCESS",
			"AffectedNodes": []interface{}{
				map[string]interface{}{"ModifiedNode": map[string]interface{}{"LedgerEntryType": "AccountRoot", "LedgerIndex": "AAAA"}},
				map[string]interface{}{"CreatedNode": map[string]interface{}{"LedgerEntryType": "PayChannel", "LedgerIndex": "5DB01B7FFED6B67E6B0414DED11E051D2EE2B7619CE0EAA6286D67A3A4D5BDB3"}},
			},
		},
	}
	s := newSummarizer()
	got := s.SummarizeMap(context.Background(), tx)
	require.False(t, got.Partial)

	want := Details{
		{Key: "amount", Value: &amount.Amount{Value: "0.01", Currency: "PFT"}, Simple: true},
		{Key: "source", Value: alice},
		{Key: "destination", Value: bob, Simple: true},
		{Key: "public_key", Value: "32D2471DB72B27E3310F355BB33E339BF26F8392D5A93D3BC0FC3B566612DA0F0A"},
		{Key: "settle_delay", Value: uint32(86400)},
		{Key: "cancel_after", Value: int64(533171558 + 946684800)},
		{Key: "channel", Value: "5DB01B7FFED6B67E6B0414DED11E051D2EE2B7619CE0EAA6286D67A3A4D5BDB3", Simple: true},
	}
	assert.Equal(t, want, got.Details)
}

func TestFindNode(t *testing.T) {
	meta := map[string]interface{}{
		"AffectedNodes": []interface{}{
			"junk",
			map[string]interface{}{"DeletedNode": map[string]interface{}{"LedgerEntryType": "Offer", "LedgerIndex": "1"}},
			map[string]interface{}{"CreatedNode": map[string]interface{}{"LedgerEntryType": "Offer", "LedgerIndex": "2"}},
		},
	}
	assert.Equal(t, "2", FindNode(meta, "CreatedNode", "Offer")["LedgerIndex"])
	assert.Equal(t, "1", FindNode(meta, "DeletedNode", "Offer")["LedgerIndex"])
	assert.Nil(t, FindNode(meta, "ModifiedNode", "Offer"))
	assert.Nil(t, FindNode(nil, "CreatedNode", "Offer"))
}

func TestDegradedSummary(t *testing.T) {
	raw := paymentTx()
	raw["DeliverMax"] = "not-a-number"

	got := newSummarizer().SummarizeMap(context.Background(), raw)
	assert.True(t, got.Partial)
	assert.Nil(t, got.Details)
	assert.Nil(t, got.Amount)
	assert.Empty(t, got.Memos)
	assert.Empty(t, got.Destination)
	assert.Equal(t, "Payment", got.Type)
	assert.Equal(t, "tesSUCCESS", got.Result)
	assert.Equal(t, "0.000012", got.Fee)
	assert.NotZero(t, got.Date)
}

func TestPanickingParserIsContained(t *testing.T) {
	Register("TestPanic", func(p *Parser, tx, meta map[string]interface{}) (Details, error) {
		panic("boom")
	})
	got := newSummarizer().SummarizeMap(context.Background(), map[string]interface{}{
		"TransactionType": "TestPanic",
		"hash":            "DD",
		"Fee":             "10",
	})
	assert.True(t, got.Partial)
	assert.Equal(t, "DD", got.Hash)
	assert.Equal(t, classify.Unknown, classify.Classification{Action: got.Action, Category: got.Category})
}

func TestUnknownTypeHasNoDetails(t *testing.T) {
	got := newSummarizer().SummarizeMap(context.Background(), map[string]interface{}{
		"TransactionType": "FutureType",
		"Account":         alice,
		"Fee":             "10",
		"Flags":           float64(0x80000000),
	})
	assert.False(t, got.Partial)
	assert.Nil(t, got.Details)
	assert.Equal(t, classify.ActionUnknown, got.Action)
	assert.Equal(t, classify.CategoryOther, got.Category)
	assert.Equal(t, []string{"tfFullyCanonicalSig"}, got.Flags)
}

func TestOfferCreateDetails(t *testing.T) {
	got := newSummarizer().SummarizeMap(context.Background(), map[string]interface{}{
		"TransactionType": "OfferCreate",
		"Account":         alice,
		"Fee":             "10",
		"TakerGets":       "2000000",
		"TakerPays":       map[string]interface{}{"currency": "USD", "issuer": bob, "value": "1"},
		"meta": map[string]interface{}{
			"AffectedNodes": []interface{}{
				map[string]interface{}{"CreatedNode": map[string]interface{}{"LedgerEntryType": "Offer", "LedgerIndex": "OFFER1"}},
			},
		},
	})
	require.False(t, got.Partial)
	price, _ := got.Details.Get("price")
	assert.Equal(t, "0.5", price)
	idx, _ := got.Details.Get("offer_index")
	assert.Equal(t, "OFFER1", idx)
	assert.Nil(t, got.Amount)
}

func TestTrustSetRequiresIssuedLimit(t *testing.T) {
	got := newSummarizer().SummarizeMap(context.Background(), map[string]interface{}{
		"TransactionType": "TrustSet",
		"Fee":             "10",
		"LimitAmount":     "100",
	})
	assert.True(t, got.Partial)
}

func TestAccountSetDetails(t *testing.T) {
	got := newSummarizer().SummarizeMap(context.Background(), map[string]interface{}{
		"TransactionType": "AccountSet",
		"Account":         alice,
		"Fee":             "10",
		"SetFlag":         float64(8),
		"Domain":          hex.EncodeToString([]byte("example.com")),
		"TransferRate":    float64(1002000000),
	})
	require.False(t, got.Partial)
	flag, _ := got.Details.Get("set_flag")
	assert.Equal(t, "asfDefaultRipple", flag)
	domain, _ := got.Details.Get("domain")
	assert.Equal(t, "example.com", domain)
	rate, _ := got.Details.Get("transfer_rate")
	assert.Equal(t, "0.2%", rate)
}

func TestNFTokenMintFromPageDiff(t *testing.T) {
	minted := "00081388" + "B5F762798A53D543A014CAF8B297CFF8F2F937E8" + "A048C088" + "00000007"
	existing := "00080000" + "B5F762798A53D543A014CAF8B297CFF8F2F937E8" + "A048C0A2" + "00000000"
	token := func(id string) interface{} {
		return map[string]interface{}{"NFToken": map[string]interface{}{"NFTokenID": id}}
	}
	got := newSummarizer().SummarizeMap(context.Background(), map[string]interface{}{
		"TransactionType": "NFTokenMint",
		"Account":         alice,
		"Fee":             "10",
		"NFTokenTaxon":    float64(42),
		"TransferFee":     float64(5000),
		"Flags":           float64(8),
		"meta": map[string]interface{}{
			"AffectedNodes": []interface{}{
				map[string]interface{}{"ModifiedNode": map[string]interface{}{
					"LedgerEntryType": "NFTokenPage",
					"FinalFields":     map[string]interface{}{"NFTokens": []interface{}{token(existing), token(minted)}},
					"PreviousFields":  map[string]interface{}{"NFTokens": []interface{}{token(existing)}},
				}},
			},
		},
	})
	require.False(t, got.Partial)
	id, _ := got.Details.Get("nftoken_id")
	assert.Equal(t, minted, id)
	fee, _ := got.Details.Get("transfer_fee")
	assert.Equal(t, "5%", fee)
	decoded, _ := got.Details.Get("nftoken")
	assert.Equal(t, uint32(42), decoded.(*codec.NFTokenID).Taxon)
	assert.Equal(t, []string{"tfTransferable"}, got.Flags)
}

func TestNFTokenMintIgnoresPagesWithUnchangedTokens(t *testing.T) {
	issuer := "B5F762798A53D543A014CAF8B297CFF8F2F937E8"
	kept := "00080000" + issuer + "A048C0A2" + "00000001"
	minted := "00080000" + issuer + "A048C0A3" + "00000002"
	token := func(id string) interface{} {
		return map[string]interface{}{"NFToken": map[string]interface{}{"NFTokenID": id}}
	}
	got := newSummarizer().SummarizeMap(context.Background(), map[string]interface{}{
		"TransactionType": "NFTokenMint",
		"Account":         alice,
		"Fee":             "10",
		"NFTokenTaxon":    float64(0),
		"meta": map[string]interface{}{
			"AffectedNodes": []interface{}{
				map[string]interface{}{"ModifiedNode": map[string]interface{}{
					"LedgerEntryType": "NFTokenPage",
					"FinalFields":     map[string]interface{}{"NFTokens": []interface{}{token(kept)}},
					"PreviousFields":  map[string]interface{}{"NextPageMin": "00"},
				}},
				map[string]interface{}{"ModifiedNode": map[string]interface{}{
					"LedgerEntryType": "NFTokenPage",
					"FinalFields":     map[string]interface{}{"NFTokens": []interface{}{token(kept)}},
				}},
				map[string]interface{}{"CreatedNode": map[string]interface{}{
					"LedgerEntryType": "NFTokenPage",
					"NewFields":       map[string]interface{}{"NFTokens": []interface{}{token(minted)}},
				}},
			},
		},
	})
	require.False(t, got.Partial)
	id, _ := got.Details.Get("nftoken_id")
	assert.Equal(t, minted, id)
}

func TestSetFeeDetails(t *testing.T) {
	got := newSummarizer().SummarizeMap(context.Background(), map[string]interface{}{
		"TransactionType":       "SetFee",
		"Account":               "rrrrrrrrrrrrrrrrrrrrrhoLvTp",
		"Fee":                   "0",
		"BaseFeeDrops":          "10",
		"ReserveBaseDrops":      "1000000",
		"ReserveIncrementDrops": "200000",
	})
	require.False(t, got.Partial)
	assert.Equal(t, classify.CategoryPseudo, got.Category)
	base, _ := got.Details.Get("reserve_base")
	assert.Equal(t, "1", base)
	inc, _ := got.Details.Get("reserve_increment")
	assert.Equal(t, "0.2", inc)
}

func TestViews(t *testing.T) {
	tx := newSummarizer().SummarizeMap(context.Background(), paymentTx())

	simple := tx.Simple()
	assert.Equal(t, []Row{
		{"type", "Payment"},
		{"account", alice},
		{"destination", bob},
		{"delivered_amount", "2 PFT"},
	}, simple)

	detailed := tx.Detailed()
	labels := map[string]string{}
	for _, r := range detailed {
		labels[r.Label] = r.Value
	}
	// every simple row appears unchanged in the detailed view
	for _, r := range simple {
		assert.Equal(t, r.Value, labels[r.Label], r.Label)
	}
	assert.Equal(t, "0.000012", labels["fee"])
	assert.Equal(t, "tfPartialPayment, tfFullyCanonicalSig", labels["flags"])
	assert.Equal(t, "text: thanks", labels["memo[0]"])
	assert.Equal(t, "2022-03-07T20:26:40Z", labels["date"])
}

func TestSimpleViewFallsBackToBaseFields(t *testing.T) {
	tx := Transaction{Type: "FutureType", Account: alice, Destination: bob, Amount: &amount.Amount{Value: "1", Currency: "PFT"}}
	assert.Equal(t, []Row{
		{"type", "FutureType"},
		{"account", alice},
		{"destination", bob},
		{"amount", "1 PFT"},
	}, tx.Simple())
}

func TestDetailsMarshalKeepsOrder(t *testing.T) {
	d := Details{}
	d.Add("zeta", "1")
	d.Add("alpha", uint32(2))
	d.Add("skipped", "")
	d.Add("off", false)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"1","alpha":2}`, string(b))

	var empty Details
	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
