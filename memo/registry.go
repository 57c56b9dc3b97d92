package memo

import (
	"encoding/hex"
	"fmt"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const PointerMessageName = "pf.ptr.v1.Pointer"

// Registry compiles the pointer schema on first use and keeps it for its
// lifetime. The zero value is ready to use.
type Registry struct {
	once    sync.Once
	pointer protoreflect.MessageDescriptor
	err     error
}

func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry is shared by decoders that are not given their own.
var DefaultRegistry = NewRegistry()

// Pointer returns the compiled pf.ptr.v1.Pointer descriptor.
func (r *Registry) Pointer() (protoreflect.MessageDescriptor, error) {
	r.once.Do(func() {
		fd, err := protodesc.NewFile(pointerFile(), new(protoregistry.Files))
		if err != nil {
			r.err = fmt.Errorf("compile pointer schema: %w", err)
			return
		}
		r.pointer = fd.Messages().ByName("Pointer")
		if r.pointer == nil {
			r.err = fmt.Errorf("message %s not found", PointerMessageName)
		}
	})
	return r.pointer, r.err
}

// ParsePointer decodes hex encoded protobuf bytes into a ParsedPointer.
func (r *Registry) ParsePointer(hexData string) (*ParsedPointer, error) {
	md, err := r.Pointer()
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(hexData)
	if err != nil {
		return nil, fmt.Errorf("decode pointer hex: %w", err)
	}
	msg := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(b, msg); err != nil {
		return nil, fmt.Errorf("unmarshal pointer: %w", err)
	}
	return newParsedPointer(msg), nil
}

func pointerFile() *descriptorpb.FileDescriptorProto {
	field := func(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
		f := &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(name),
			Number: proto.Int32(number),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Type:   typ.Enum(),
		}
		if typeName != "" {
			f.TypeName = proto.String(typeName)
		}
		return f
	}

	const (
		tBytes  = descriptorpb.FieldDescriptorProto_TYPE_BYTES
		tUint32 = descriptorpb.FieldDescriptorProto_TYPE_UINT32
		tEnum   = descriptorpb.FieldDescriptorProto_TYPE_ENUM
	)

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("pf/ptr/v1/pointer.proto"),
		Package: proto.String("pf.ptr.v1"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("Pointer"),
			EnumType: []*descriptorpb.EnumDescriptorProto{
				{
					Name: proto.String("MsgType"),
					Value: enumValues([]enumValue{
						{"MSG_UNSPECIFIED", 0},
						{"TASK_CREATE", 1},
						{"TASK_UPDATE", 2},
						{"REWARD_CLAIM", 3},
						{"SYS_EVENT", 5},
						{"CHAT_MESSAGE", 6},
						{"TEST_MESSAGE", 8},
						{"ARTIFACT", 9},
						{"INITIATION", 10},
						{"ASSET_DEFINITION", 11},
					}),
				},
				{
					Name: proto.String("Enc"),
					Value: enumValues([]enumValue{
						{"ENC_NONE", 0},
						{"ENC_X25519_XCHACHA20P1305", 1},
						{"ENC_AES256_GCM", 2},
						{"ENC_SIGNAL_DOUBLE_RATCHET", 3},
						{"ENC_FERNET", 4},
					}),
				},
				{
					Name: proto.String("Compression"),
					Value: enumValues([]enumValue{
						{"COMP_NONE", 0},
						{"COMP_ZSTD", 1},
						{"COMP_LZ4", 2},
					}),
				},
			},
			Field: []*descriptorpb.FieldDescriptorProto{
				field("cid", 1, tBytes, ""),
				field("msg_type", 2, tEnum, ".pf.ptr.v1.Pointer.MsgType"),
				field("enc", 3, tEnum, ".pf.ptr.v1.Pointer.Enc"),
				field("kid", 4, tBytes, ""),
				field("nonce", 5, tBytes, ""),
				field("bundle_id", 6, tBytes, ""),
				field("bundle_index", 7, tUint32, ""),
				field("ptr_version", 8, tUint32, ""),
				field("comp", 9, tEnum, ".pf.ptr.v1.Pointer.Compression"),
				field("schema", 10, tUint32, ""),
				field("task_id", 11, tBytes, ""),
			},
		}},
	}
}

type enumValue struct {
	name   string
	number int32
}

func enumValues(values []enumValue) []*descriptorpb.EnumValueDescriptorProto {
	out := make([]*descriptorpb.EnumValueDescriptorProto, 0, len(values))
	for _, v := range values {
		out = append(out, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(v.name),
			Number: proto.Int32(v.number),
		})
	}
	return out
}
