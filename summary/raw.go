package summary

// RawTransaction is a node transaction split into its transaction fields
// and metadata.
type RawTransaction struct {
	Tx          map[string]interface{}
	Meta        map[string]interface{}
	Hash        string
	LedgerIndex uint32
	Date        uint32
}

// NewRawTransaction accepts the transaction shapes returned by the node:
//
//	tx / expanded ledger entry (api v1):  {...fields, meta | metaData}
//	account_tx entry (api v1):            {tx: {...fields}, meta}
//	any api v2 response:                  {tx_json: {...fields}, meta, hash}
func NewRawTransaction(m map[string]interface{}) RawTransaction {
	tx := m
	switch {
	case mapOf(m, "tx_json") != nil:
		tx = mapOf(m, "tx_json")
	case mapOf(m, "tx") != nil:
		tx = mapOf(m, "tx")
	}

	meta := mapOf(m, "meta")
	if meta == nil {
		meta = mapOf(m, "metaData")
	}
	if meta == nil {
		meta = mapOf(tx, "meta")
	}
	if meta == nil {
		meta = mapOf(tx, "metaData")
	}

	raw := RawTransaction{Tx: tx, Meta: meta}
	raw.Hash = firstString(str(m, "hash"), str(tx, "hash"))
	raw.LedgerIndex = firstUint32(m, tx, "ledger_index")
	raw.Date = firstUint32(m, tx, "date")
	return raw
}

// Type returns the TransactionType field.
func (r RawTransaction) Type() string {
	return str(r.Tx, "TransactionType")
}

// Index returns the position of the transaction in its ledger.
func (r RawTransaction) Index() uint32 {
	return uint32Of(r.Meta, "TransactionIndex")
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstUint32(outer, inner map[string]interface{}, key string) uint32 {
	if u, ok := toUint32(outer[key]); ok {
		return u
	}
	u, _ := toUint32(inner[key])
	return u
}
