package unrealgen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// Defaults used for any Generator field left empty.
const (
	DefaultPropertyMacro      = "UPROPERTY(VisibleAnywhere, BlueprintReadOnly)"
	DefaultStructMacro        = "USTRUCT(BlueprintType)"
	DefaultConverterClassName = "ProtoToUStructConverter"
)

// Generator emits Unreal Engine C++ declarations and conversion code from
// protobuf file descriptors. Its fields provide some control over the emitted
// source; the zero value is ready to use.
type Generator struct {
	// PropertyMacro is emitted on its own line above every generated struct
	// field. If empty, DefaultPropertyMacro is used.
	PropertyMacro string

	// StructMacro is emitted on its own line above every generated struct
	// declaration. If empty, DefaultStructMacro is used.
	StructMacro string

	// ConverterClassName is the name of the generated converter class whose
	// static Convert functions build generated structs from protobuf message
	// instances. If empty, DefaultConverterClassName is used.
	ConverterClassName string

	// The indentation used. If empty, two spaces are used.
	Indent string
}

// GenerateFiles generates output for all the given file descriptors. The given
// open function is given an output file name and is responsible for creating
// the output and returning the corresponding writer. Every writer is closed
// before GenerateFiles returns, on error paths included.
//
// Generated identifiers are registered across the whole call, so two messages
// or enums from different inputs that would produce colliding declarations are
// reported as an error rather than silently overwriting one another.
func (g *Generator) GenerateFiles(fds []protoreflect.FileDescriptor, open func(name string) (io.WriteCloser, error)) error {
	run := &generation{Generator: g.withDefaults(), names: map[string]protoreflect.FullName{}}
	for _, fd := range fds {
		if err := run.generateFile(fd, open); err != nil {
			return err
		}
	}
	return nil
}

// GenerateFile generates output for a single file descriptor. See
// GenerateFiles.
func (g *Generator) GenerateFile(fd protoreflect.FileDescriptor, open func(name string) (io.WriteCloser, error)) error {
	return g.GenerateFiles([]protoreflect.FileDescriptor{fd}, open)
}

// GenerateToFileSystem generates output for all the given file descriptors
// into files in the given directory.
func (g *Generator) GenerateToFileSystem(fds []protoreflect.FileDescriptor, rootDir string) error {
	return g.GenerateFiles(fds, func(name string) (io.WriteCloser, error) {
		fullPath := filepath.Join(rootDir, name)
		if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
			return nil, err
		}
		return os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	})
}

func (g *Generator) withDefaults() *Generator {
	res := *g
	if res.PropertyMacro == "" {
		res.PropertyMacro = DefaultPropertyMacro
	}
	if res.StructMacro == "" {
		res.StructMacro = DefaultStructMacro
	}
	if res.ConverterClassName == "" {
		res.ConverterClassName = DefaultConverterClassName
	}
	if res.Indent == "" {
		res.Indent = "  "
	}
	return &res
}

// generation is the transient state of one GenerateFiles call: the resolved
// configuration and the registry of generated identifiers used to surface
// collisions. It is discarded when the call returns.
type generation struct {
	*Generator
	names map[string]protoreflect.FullName
}

// register records that the given schema element produced the given generated
// identifier. Two distinct elements producing the same identifier is a defect
// in the input schema that would silently corrupt output, so it fails the
// generation pass.
func (run *generation) register(ident string, source protoreflect.FullName) error {
	if prev, ok := run.names[ident]; ok {
		return fmt.Errorf("generated declaration %s for %s collides with %s", ident, source, prev)
	}
	run.names[ident] = source
	return nil
}

func (run *generation) generateFile(fd protoreflect.FileDescriptor, open func(name string) (io.WriteCloser, error)) error {
	fg := &fileGen{
		generation: run,
		fd:         fd,
		base:       baseFileName(fd.Path()),
		protoNS:    cppNamespace(fd.Package()),
		emitted:    map[protoreflect.MessageDescriptor]bool{},
	}

	if err := fg.writeUnit(open, fg.base+"Enums.h", fg.emitEnumsUnit); err != nil {
		return err
	}
	msgs := fd.Messages()
	for i, n := 0, msgs.Len(); i < n; i++ {
		md := msgs.Get(i)
		if md.IsMapEntry() {
			continue
		}
		unit := "F" + string(md.Name()) + ".h"
		if err := fg.writeUnit(open, unit, func(p *printer) error {
			return fg.emitMessageUnit(p, md)
		}); err != nil {
			return err
		}
	}
	if err := fg.writeUnit(open, fg.base+"Converter.h", fg.emitConverterHeader); err != nil {
		return err
	}
	return fg.writeUnit(open, fg.base+"Converter.cpp", fg.emitConverterImpl)
}

// fileGen carries the per-file emission state: the visited-set that guarantees
// each message declaration is emitted at most once, keyed on descriptor
// identity rather than name.
type fileGen struct {
	*generation
	fd      protoreflect.FileDescriptor
	base    string
	protoNS string
	emitted map[protoreflect.MessageDescriptor]bool
}

func (fg *fileGen) writeUnit(open func(name string) (io.WriteCloser, error), name string, emit func(p *printer) error) error {
	w, err := open(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %v", name, err)
	}
	err = func() error {
		defer func() {
			_ = w.Close()
		}()
		p := newPrinter(w, fg.Indent)
		if err := emit(p); err != nil {
			return err
		}
		return p.err
	}()
	if err != nil {
		return fmt.Errorf("failed to write %s: %v", name, err)
	}
	return nil
}

// cppMessageName is the fully-qualified C++ name of the protobuf message class
// generated by protoc, e.g. "::pkg::Outer::Inner".
func (fg *fileGen) cppMessageName(md protoreflect.MessageDescriptor) string {
	rel := string(md.FullName())
	if pkg := string(fg.fd.Package()); pkg != "" {
		rel = strings.TrimPrefix(rel, pkg+".")
	}
	return fg.protoNS + strings.ReplaceAll(rel, ".", "::")
}

// baseFileName derives the output file name stem from a schema file path:
// PascalCase of the path with the extension removed.
func baseFileName(path string) string {
	base := toPascalCase(path)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

func cppNamespace(pkg protoreflect.FullName) string {
	if pkg == "" {
		return "::"
	}
	return "::" + strings.ReplaceAll(string(pkg), ".", "::") + "::"
}

// printer writes indentation-aware output. The first error encountered is
// sticky; subsequent writes are no-ops, so emitters never have to check errors
// line by line.
type printer struct {
	w      io.Writer
	indent string
	depth  int
	bol    bool
	err    error
}

func newPrinter(w io.Writer, indent string) *printer {
	return &printer{w: w, indent: indent, bol: true}
}

func (p *printer) Indent() {
	p.depth++
}

func (p *printer) Outdent() {
	p.depth--
}

// Print formats and writes the given text, prefixing every non-empty line with
// the current indentation. Blank lines carry no trailing whitespace.
func (p *printer) Print(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	s := format
	if len(args) > 0 {
		s = fmt.Sprintf(format, args...)
	}
	for s != "" {
		line := s
		newline := false
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			line, s, newline = s[:i], s[i+1:], true
		} else {
			s = ""
		}
		if line != "" {
			if p.bol {
				for i := 0; i < p.depth; i++ {
					p.write(p.indent)
				}
				p.bol = false
			}
			p.write(line)
		}
		if newline {
			p.write("\n")
			p.bol = true
		}
		if p.err != nil {
			return
		}
	}
}

func (p *printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}
