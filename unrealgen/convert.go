package unrealgen

import "google.golang.org/protobuf/reflect/protoreflect"

// emitConverterHeader writes the converter class declaration: one include per
// top-level declaration unit and one static Convert signature for every
// message that has a generated struct, nested messages included, so that the
// recursive calls emitted by the bodies always resolve.
func (fg *fileGen) emitConverterHeader(p *printer) error {
	p.Print("#pragma once\n#include \"CoreMinimal.h\"\n#include \"%s.pb.h\"\n", fg.base)
	msgs := fg.fd.Messages()
	for i, n := 0, msgs.Len(); i < n; i++ {
		md := msgs.Get(i)
		if md.IsMapEntry() {
			continue
		}
		p.Print("#include \"F%s.h\"\n", md.Name())
	}
	p.Print("\nclass %s {\n", fg.ConverterClassName)
	p.Indent()
	p.Print("public:\n")
	for _, md := range fg.convertibleMessages() {
		p.Print("static F%s Convert(const %s& In);\n", md.Name(), fg.cppMessageName(md))
	}
	p.Outdent()
	p.Print("};\n")
	return nil
}

// emitConverterImpl writes the body of every Convert function declared by the
// converter header, in the same order.
func (fg *fileGen) emitConverterImpl(p *printer) error {
	p.Print("#include \"%sConverter.h\"\n#include \"%s.pb.h\"\n", fg.base, fg.base)
	for _, md := range fg.convertibleMessages() {
		if err := fg.emitConvertFunction(p, md); err != nil {
			return err
		}
	}
	return nil
}

// convertibleMessages returns every message of the file that gets a generated
// declaration, nested messages before their containers and map entries
// excluded. This matches the declaration emission order.
func (fg *fileGen) convertibleMessages() []protoreflect.MessageDescriptor {
	var res []protoreflect.MessageDescriptor
	var walk func(md protoreflect.MessageDescriptor)
	walk = func(md protoreflect.MessageDescriptor) {
		if md.IsMapEntry() {
			return
		}
		nested := md.Messages()
		for i, n := 0, nested.Len(); i < n; i++ {
			walk(nested.Get(i))
		}
		res = append(res, md)
	}
	msgs := fg.fd.Messages()
	for i, n := 0, msgs.Len(); i < n; i++ {
		walk(msgs.Get(i))
	}
	return res
}

// emitConvertFunction writes one Convert body. It mirrors the struct emission
// rules exactly: every field the struct declares receives exactly one
// assignment here. Each user-authored oneof dispatches on the case reported by
// the source instance and records it in the discriminator; the default (unset
// or unrecognized) case assigns nothing, leaving the whole group at its zero
// values. Fields with explicit presence are only copied when the source
// reports them present, so absence and an explicit zero stay distinguishable
// in the output. Conversion is total: nothing in a legally constructed source
// instance can make the generated code fail.
func (fg *fileGen) emitConvertFunction(p *printer, md protoreflect.MessageDescriptor) error {
	name := string(md.Name())
	cpp := fg.cppMessageName(md)
	p.Print("F%s %s::Convert(const %s& In) {\n", name, fg.ConverterClassName, cpp)
	p.Indent()
	p.Print("F%s Out;\n", name)
	for _, od := range realOneofs(md) {
		un := toPascalCase(string(od.Name()))
		dn := discriminatorEnumName(md, od)
		p.Print("switch (In.%s_case()) {\n", od.Name())
		p.Indent()
		flds := od.Fields()
		for i, n := 0, flds.Len(); i < n; i++ {
			fld := flds.Get(i)
			fn := toPascalCase(string(fld.Name()))
			p.Print("case %s::k%s:\n", cpp, fn)
			p.Indent()
			p.Print("Out.%s = %s;\n", fn, fg.convertExpr(fld, "In."+accessorName(string(fld.Name()))+"()"))
			p.Print("Out.%sType = %s::%s;\n", un, dn, fn)
			p.Print("break;\n")
			p.Outdent()
		}
		p.Print("default: break;\n")
		p.Outdent()
		p.Print("}\n")
	}
	fields := md.Fields()
	for i, n := 0, fields.Len(); i < n; i++ {
		fld := fields.Get(i)
		if realOneof(fld) != nil {
			// Already assigned by the oneof dispatch above.
			continue
		}
		if err := fg.emitFieldConversion(p, fld); err != nil {
			return err
		}
	}
	p.Print("return Out;\n")
	p.Outdent()
	p.Print("}\n\n")
	return nil
}

func (fg *fileGen) emitFieldConversion(p *printer, fld protoreflect.FieldDescriptor) error {
	un := toPascalCase(string(fld.Name()))
	acc := "In." + accessorName(string(fld.Name())) + "()"
	switch {
	case fld.IsMap():
		key, val, err := mapEntryFields(fld)
		if err != nil {
			return err
		}
		p.Print("for (const auto& P : %s) {\n", acc)
		p.Indent()
		p.Print("Out.%s.Add(%s, %s);\n", un, fg.convertExpr(key, "P.first"), fg.convertExpr(val, "P.second"))
		p.Outdent()
		p.Print("}\n")
	case fld.IsList():
		p.Print("for (const auto& E : %s) {\n", acc)
		p.Indent()
		p.Print("Out.%s.Add(%s);\n", un, fg.convertExpr(fld, "E"))
		p.Outdent()
		p.Print("}\n")
	case fld.HasPresence():
		p.Print("if (In.has_%s()) Out.%s = %s;\n", accessorName(string(fld.Name())), un, fg.convertExpr(fld, acc))
	default:
		p.Print("Out.%s = %s;\n", un, fg.convertExpr(fld, acc))
	}
	return nil
}

// convertExpr is the data-movement dual of baseUEType: message values recurse
// through the converter, text decodes into FString, enum numerics are cast to
// the generated enum without range validation (an out-of-range value is
// preserved as an invalid enum value rather than rejected), and everything
// else copies directly. Bytes take the text path because their declared type
// fell back to FString.
func (fg *fileGen) convertExpr(fld protoreflect.FieldDescriptor, src string) string {
	switch fld.Kind() {
	case protoreflect.MessageKind:
		return fg.ConverterClassName + "::Convert(" + src + ")"
	case protoreflect.StringKind, protoreflect.BytesKind:
		return "FString(UTF8_TO_TCHAR(" + src + ".c_str()))"
	case protoreflect.EnumKind:
		return "static_cast<" + baseUEType(fld) + ">(" + src + ")"
	}
	return src
}
