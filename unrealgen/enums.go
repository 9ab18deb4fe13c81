package unrealgen

import "google.golang.org/protobuf/reflect/protoreflect"

// emitEnumsUnit writes the per-file enums header: every top-level enum and
// every enum nested in any message. Nested enums are hoisted to file scope
// because Unreal does not allow UENUM declarations inside struct bodies.
func (fg *fileGen) emitEnumsUnit(p *printer) error {
	p.Print("#pragma once\n#include \"CoreMinimal.h\"\n#include \"%sEnums.generated.h\"\n\n", fg.base)
	enums := fg.fd.Enums()
	for i, n := 0, enums.Len(); i < n; i++ {
		if err := fg.emitEnum(p, enums.Get(i)); err != nil {
			return err
		}
	}
	msgs := fg.fd.Messages()
	for i, n := 0, msgs.Len(); i < n; i++ {
		if err := fg.emitNestedEnums(p, msgs.Get(i)); err != nil {
			return err
		}
	}
	return nil
}

func (fg *fileGen) emitNestedEnums(p *printer, md protoreflect.MessageDescriptor) error {
	if md.IsMapEntry() {
		return nil
	}
	enums := md.Enums()
	for i, n := 0, enums.Len(); i < n; i++ {
		if err := fg.emitEnum(p, enums.Get(i)); err != nil {
			return err
		}
	}
	nested := md.Messages()
	for i, n := 0, nested.Len(); i < n; i++ {
		if err := fg.emitNestedEnums(p, nested.Get(i)); err != nil {
			return err
		}
	}
	return nil
}

// emitEnum writes one UENUM declaration with one member per value in declared
// order. Integer values are carried over verbatim; duplicate integers
// (permitted by allow_alias) are preserved, not deduplicated. An enum with no
// values produces an empty declaration.
func (fg *fileGen) emitEnum(p *printer, ed protoreflect.EnumDescriptor) error {
	if err := fg.register("E"+string(ed.Name()), ed.FullName()); err != nil {
		return err
	}
	p.Print("UENUM(BlueprintType)\nenum class E%s : uint8 {\n", ed.Name())
	p.Indent()
	vals := ed.Values()
	for i, n := 0, vals.Len(); i < n; i++ {
		v := vals.Get(i)
		p.Print("%s = %d,\n", toPascalCase(string(v.Name())), v.Number())
	}
	p.Outdent()
	p.Print("};\n\n")
	return nil
}
