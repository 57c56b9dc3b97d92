package memo

import (
	"encoding/hex"
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// ParsedPointer is the display form of a pf.ptr.v1.Pointer. Bytes are lower
// case hex, enums are symbolic names, zero values are left out.
type ParsedPointer struct {
	CID         string `json:"cid,omitempty"`
	MsgType     string `json:"msg_type,omitempty"`
	Enc         string `json:"enc,omitempty"`
	KID         string `json:"kid,omitempty"`
	Nonce       string `json:"nonce,omitempty"`
	BundleID    string `json:"bundle_id,omitempty"`
	BundleIndex uint32 `json:"bundle_index,omitempty"`
	PtrVersion  uint32 `json:"ptr_version,omitempty"`
	Comp        string `json:"comp,omitempty"`
	Schema      uint32 `json:"schema,omitempty"`
	TaskID      string `json:"task_id,omitempty"`
}

func newParsedPointer(msg protoreflect.Message) *ParsedPointer {
	fields := msg.Descriptor().Fields()
	bytesOf := func(name protoreflect.Name) string {
		fd := fields.ByName(name)
		if !msg.Has(fd) {
			return ""
		}
		return hex.EncodeToString(msg.Get(fd).Bytes())
	}
	uintOf := func(name protoreflect.Name) uint32 {
		fd := fields.ByName(name)
		if !msg.Has(fd) {
			return 0
		}
		return uint32(msg.Get(fd).Uint())
	}
	enumOf := func(name protoreflect.Name) string {
		fd := fields.ByName(name)
		if !msg.Has(fd) {
			return ""
		}
		return EnumName(fd.Enum(), msg.Get(fd).Enum())
	}

	return &ParsedPointer{
		CID:         bytesOf("cid"),
		MsgType:     enumOf("msg_type"),
		Enc:         enumOf("enc"),
		KID:         bytesOf("kid"),
		Nonce:       bytesOf("nonce"),
		BundleID:    bytesOf("bundle_id"),
		BundleIndex: uintOf("bundle_index"),
		PtrVersion:  uintOf("ptr_version"),
		Comp:        enumOf("comp"),
		Schema:      uintOf("schema"),
		TaskID:      bytesOf("task_id"),
	}
}

// EnumName resolves n against ed, or renders UNKNOWN(n).
func EnumName(ed protoreflect.EnumDescriptor, n protoreflect.EnumNumber) string {
	if v := ed.Values().ByNumber(n); v != nil {
		return string(v.Name())
	}
	return fmt.Sprintf("UNKNOWN(%d)", n)
}

// String lists the set fields as key=value pairs in field number order.
func (p *ParsedPointer) String() string {
	if p == nil {
		return ""
	}
	parts := []string{}
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}
	addUint := func(key string, value uint32) {
		if value != 0 {
			add(key, fmt.Sprintf("%d", value))
		}
	}
	add("cid", p.CID)
	add("msg_type", p.MsgType)
	add("enc", p.Enc)
	add("kid", p.KID)
	add("nonce", p.Nonce)
	add("bundle_id", p.BundleID)
	addUint("bundle_index", p.BundleIndex)
	addUint("ptr_version", p.PtrVersion)
	add("comp", p.Comp)
	addUint("schema", p.Schema)
	add("task_id", p.TaskID)
	return strings.Join(parts, " ")
}
