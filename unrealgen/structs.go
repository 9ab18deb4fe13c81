package unrealgen

import "google.golang.org/protobuf/reflect/protoreflect"

// emitMessageUnit writes the declaration header for one top-level message: the
// enums header include, one include per declaration unit the message refers
// to, and the struct declarations themselves (nested messages first, so the
// enclosing struct never forward-references them).
func (fg *fileGen) emitMessageUnit(p *printer, md protoreflect.MessageDescriptor) error {
	p.Print("#pragma once\n#include \"CoreMinimal.h\"\n#include \"%sEnums.h\"\n", fg.base)
	deps, err := unitDeps(md)
	if err != nil {
		return err
	}
	for _, dep := range deps {
		p.Print("#include \"F%s.h\"\n", dep)
	}
	p.Print("#include \"F%s.generated.h\"\n\n", md.Name())
	return fg.emitMessage(p, md)
}

// emitMessage writes the USTRUCT declaration for a message, preceded by
// whatever it needs already in scope: its nested messages (recursively) and
// the discriminator enum of each user-authored oneof. Map-entry messages are
// never emitted; the visited-set keeps every message to at most one
// declaration, which also bounds recursion for self-referential and mutually
// referential messages. A message with no fields emits a valid empty struct.
func (fg *fileGen) emitMessage(p *printer, md protoreflect.MessageDescriptor) error {
	if md.IsMapEntry() || fg.emitted[md] {
		return nil
	}
	fg.emitted[md] = true
	nested := md.Messages()
	for i, n := 0, nested.Len(); i < n; i++ {
		if err := fg.emitMessage(p, nested.Get(i)); err != nil {
			return err
		}
	}
	if err := fg.register("F"+string(md.Name()), md.FullName()); err != nil {
		return err
	}
	oneofs := realOneofs(md)
	for _, od := range oneofs {
		if err := fg.emitOneofEnum(p, md, od); err != nil {
			return err
		}
	}
	p.Print("%s\nstruct F%s {\n", fg.StructMacro, md.Name())
	p.Indent()
	p.Print("GENERATED_BODY()\n\n")
	for _, od := range oneofs {
		dn := discriminatorEnumName(md, od)
		p.Print("%s\n%s %sType = %s::None;\n\n", fg.PropertyMacro, dn, toPascalCase(string(od.Name())), dn)
	}
	fields := md.Fields()
	for i, n := 0, fields.Len(); i < n; i++ {
		fld := fields.Get(i)
		// Members of a user-authored oneof get a normal field too: the
		// generated struct allocates storage for every member alongside the
		// discriminator rather than modeling a true sum type. A proto3
		// optional scalar is a plain field here; its synthetic oneof is
		// invisible and its presence shows up as the TOptional wrapping.
		t, err := ueType(fld)
		if err != nil {
			return err
		}
		p.Print("%s\n%s %s;\n\n", fg.PropertyMacro, t, toPascalCase(string(fld.Name())))
	}
	p.Outdent()
	p.Print("};\n\n")
	return nil
}

// emitOneofEnum writes the discriminator enum for a user-authored oneof:
// member zero is None (unset) followed by one member per oneof field in
// declared order. Synthetic oneofs never produce a discriminator.
func (fg *fileGen) emitOneofEnum(p *printer, md protoreflect.MessageDescriptor, od protoreflect.OneofDescriptor) error {
	dn := discriminatorEnumName(md, od)
	if err := fg.register(dn, od.FullName()); err != nil {
		return err
	}
	p.Print("UENUM(BlueprintType)\nenum class %s : uint8 {\n", dn)
	p.Indent()
	p.Print("None = 0,\n")
	flds := od.Fields()
	for i, n := 0, flds.Len(); i < n; i++ {
		p.Print("%s,\n", toPascalCase(string(flds.Get(i).Name())))
	}
	p.Outdent()
	p.Print("};\n\n")
	return nil
}

// discriminatorEnumName is the name of the generated discriminator enum for a
// oneof. The owning message name is always prefixed for disambiguation, since
// oneof names are only unique within their message.
func discriminatorEnumName(md protoreflect.MessageDescriptor, od protoreflect.OneofDescriptor) string {
	return "E" + string(md.Name()) + toPascalCase(string(od.Name())) + "Type"
}

// unitDeps collects the declaration units referenced by a top-level message's
// unit: one entry per distinct message referred to by any field of the unit's
// messages, map values unwrapped to the message they carry, each reference
// attributed to the top-level message whose unit declares it. References to
// messages declared in this same unit are excluded. Set semantics: the first
// use registers the dependency, later uses are ignored.
func unitDeps(top protoreflect.MessageDescriptor) ([]string, error) {
	var deps []string
	seen := map[string]bool{}
	var walk func(md protoreflect.MessageDescriptor) error
	walk = func(md protoreflect.MessageDescriptor) error {
		if md.IsMapEntry() {
			return nil
		}
		fields := md.Fields()
		for i, n := 0, fields.Len(); i < n; i++ {
			fld := fields.Get(i)
			target := fld
			if fld.IsMap() {
				_, val, err := mapEntryFields(fld)
				if err != nil {
					return err
				}
				target = val
			}
			if target.Kind() != protoreflect.MessageKind {
				continue
			}
			ref := topLevelAncestor(target.Message())
			if ref == top {
				continue
			}
			name := string(ref.Name())
			if seen[name] {
				continue
			}
			seen[name] = true
			deps = append(deps, name)
		}
		nested := md.Messages()
		for i, n := 0, nested.Len(); i < n; i++ {
			if err := walk(nested.Get(i)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(top); err != nil {
		return nil, err
	}
	return deps, nil
}

// topLevelAncestor returns the top-level message enclosing md, or md itself if
// it is declared at file scope.
func topLevelAncestor(md protoreflect.MessageDescriptor) protoreflect.MessageDescriptor {
	for {
		parent, ok := md.Parent().(protoreflect.MessageDescriptor)
		if !ok {
			return md
		}
		md = parent
	}
}
