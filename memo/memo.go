package memo

import (
	"context"
	"encoding/json"

	"github.com/xrpscan/explorer/codec"
	"github.com/xrpscan/explorer/logger"
)

// MemoType of memos carrying a protobuf encoded pointer
const PointerMemoType = "pf.ptr"

// Memo is a wire memo with its fields still hex encoded.
type Memo struct {
	MemoType   string `json:"MemoType,omitempty"`
	MemoFormat string `json:"MemoFormat,omitempty"`
	MemoData   string `json:"MemoData,omitempty"`
}

// MemoInfo is a decoded memo. When IsPfPtr is set Pointer holds the decoded
// payload and is rendered as "data".
type MemoInfo struct {
	Type    string
	Format  string
	Data    string
	Pointer *ParsedPointer
	IsPfPtr bool
}

func (m MemoInfo) MarshalJSON() ([]byte, error) {
	out := struct {
		Type    string      `json:"type,omitempty"`
		Format  string      `json:"format,omitempty"`
		Data    interface{} `json:"data"`
		IsPfPtr bool        `json:"isPfPtr"`
	}{
		Type:    m.Type,
		Format:  m.Format,
		Data:    m.Data,
		IsPfPtr: m.IsPfPtr,
	}
	if m.IsPfPtr && m.Pointer != nil {
		out.Data = m.Pointer
	}
	return json.Marshal(out)
}

// String renders the memo as a single line, "type: data" when typed.
func (m MemoInfo) String() string {
	data := m.Data
	if m.IsPfPtr && m.Pointer != nil {
		data = m.Pointer.String()
	}
	if m.Type == "" {
		return data
	}
	return m.Type + ": " + data
}

// FromTx extracts the Memos array of a transaction. Entries that are not
// objects are skipped.
func FromTx(tx map[string]interface{}) []Memo {
	raw, ok := tx["Memos"].([]interface{})
	if !ok {
		return nil
	}
	memos := make([]Memo, 0, len(raw))
	for _, entry := range raw {
		wrapper, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		fields, ok := wrapper["Memo"].(map[string]interface{})
		if !ok {
			continue
		}
		m := Memo{}
		m.MemoType, _ = fields["MemoType"].(string)
		m.MemoFormat, _ = fields["MemoFormat"].(string)
		m.MemoData, _ = fields["MemoData"].(string)
		memos = append(memos, m)
	}
	return memos
}

type Decoder struct {
	registry *Registry
}

// NewDecoder returns a Decoder backed by r, or by DefaultRegistry when r is
// nil.
func NewDecoder(r *Registry) *Decoder {
	if r == nil {
		r = DefaultRegistry
	}
	return &Decoder{registry: r}
}

// Simple renders every memo as a hex decoded line.
func (d *Decoder) Simple(memos []Memo) []string {
	infos := d.SimpleInfos(memos)
	lines := make([]string, 0, len(infos))
	for _, info := range infos {
		lines = append(lines, info.String())
	}
	return lines
}

// SimpleInfos hex decodes every memo field without looking at the pointer
// payload.
func (d *Decoder) SimpleInfos(memos []Memo) []MemoInfo {
	infos := make([]MemoInfo, 0, len(memos))
	for _, m := range memos {
		infos = append(infos, simpleInfo(m))
	}
	return infos
}

// Decode hex decodes every memo and additionally decodes pointer memos into
// a ParsedPointer. Pointer memos are recognised by MemoType alone; MemoFormat
// is not consulted. A pointer that cannot be decoded keeps its string form.
// Once ctx is done the remaining memos are decoded with the simple path.
func (d *Decoder) Decode(ctx context.Context, memos []Memo) []MemoInfo {
	infos := make([]MemoInfo, 0, len(memos))
	for _, m := range memos {
		info := simpleInfo(m)
		if info.Type == PointerMemoType && ctx.Err() == nil {
			ptr, err := d.registry.ParsePointer(m.MemoData)
			if err != nil {
				logger.Log.Debug().Err(err).Str("memo_data", m.MemoData).Msg("Pointer memo decode failed")
			} else {
				info.Pointer = ptr
				info.IsPfPtr = true
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func simpleInfo(m Memo) MemoInfo {
	return MemoInfo{
		Type:   codec.HexToString(m.MemoType),
		Format: codec.HexToString(m.MemoFormat),
		Data:   codec.HexToString(m.MemoData),
	}
}
