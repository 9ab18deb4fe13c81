package unrealgen

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// scalarTypes maps protobuf scalar kinds to their Unreal equivalents. Kinds
// absent from this table (uint32, the sized/zigzag integer variants, bytes)
// deliberately fall back to FString so that generation never fails on a kind
// the mapper does not know.
var scalarTypes = map[protoreflect.Kind]string{
	protoreflect.DoubleKind: "double",
	protoreflect.FloatKind:  "float",
	protoreflect.Int64Kind:  "int64",
	protoreflect.Uint64Kind: "uint64",
	protoreflect.Int32Kind:  "int32",
	protoreflect.BoolKind:   "bool",
	protoreflect.StringKind: "FString",
}

// baseUEType resolves the Unreal type for a field, ignoring any repeated, map,
// or presence wrapping. Message and enum references use the generated struct
// and enum names ("F" and "E" prefixes respectively).
func baseUEType(fld protoreflect.FieldDescriptor) string {
	switch fld.Kind() {
	case protoreflect.MessageKind:
		return "F" + string(fld.Message().Name())
	case protoreflect.EnumKind:
		return "E" + string(fld.Enum().Name())
	}
	if t, ok := scalarTypes[fld.Kind()]; ok {
		return t
	}
	return "FString"
}

// ueType resolves the full Unreal type for a field: TMap for maps, TArray for
// repeated fields, TOptional for singular fields with explicit presence, and
// the base type otherwise. Maps take precedence over the other wrappings.
//
// The only error condition is a structural contract violation: a map field
// whose entry message is missing its key or value member. Everything else is
// total.
func ueType(fld protoreflect.FieldDescriptor) (string, error) {
	if fld.IsMap() {
		key, val, err := mapEntryFields(fld)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("TMap<%s, %s>", baseUEType(key), baseUEType(val)), nil
	}
	base := baseUEType(fld)
	if fld.IsList() {
		return "TArray<" + base + ">", nil
	}
	if fld.HasPresence() {
		return "TOptional<" + base + ">", nil
	}
	return base, nil
}

// mapEntryFields returns the key and value fields of a map field's entry
// message. The two-field key/value shape is a structural contract of the
// input; a violation aborts generation instead of producing invalid output.
func mapEntryFields(fld protoreflect.FieldDescriptor) (key, val protoreflect.FieldDescriptor, err error) {
	entry := fld.Message()
	key = entry.Fields().ByName("key")
	val = entry.Fields().ByName("value")
	if key == nil || val == nil {
		return nil, nil, fmt.Errorf("map field %s: entry message %s is missing its key or value member", fld.FullName(), entry.FullName())
	}
	return key, val, nil
}

// realOneof returns the oneof a field is a user-authored member of, or nil if
// the field is a plain field or belongs only to a synthetic oneof (the
// presence-tracking wrapper for a proto3 optional scalar, which is unwrapped
// transparently and never surfaces in generated output).
func realOneof(fld protoreflect.FieldDescriptor) protoreflect.OneofDescriptor {
	od := fld.ContainingOneof()
	if od == nil || od.IsSynthetic() {
		return nil
	}
	return od
}

// realOneofs returns the user-authored oneofs of a message, in declared order.
func realOneofs(md protoreflect.MessageDescriptor) []protoreflect.OneofDescriptor {
	var oneofs []protoreflect.OneofDescriptor
	for i, n := 0, md.Oneofs().Len(); i < n; i++ {
		od := md.Oneofs().Get(i)
		if od.IsSynthetic() {
			continue
		}
		oneofs = append(oneofs, od)
	}
	return oneofs
}
