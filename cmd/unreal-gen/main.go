// Command unreal-gen generates Unreal Engine C++ structs, enums, and
// conversion code straight from .proto sources, compiling them in-process so
// that protoc is not required.
//
//	unreal-gen -I protos -o Source/Game/Generated game.proto
package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/unrealpb/protoc-gen-unreal/unrealgen"
)

var cli struct {
	Out        string   `help:"Directory where generated files are written." short:"o" default:"."`
	ImportPath []string `help:"Directories in which to search for imports." short:"I" name:"proto-path" placeholder:"DIR"`
	Files      []string `arg:"" help:"The .proto files to generate code for."`
}

func main() {
	ktx := kong.Parse(&cli,
		kong.Name("unreal-gen"),
		kong.Description("Generates Unreal Engine structs, enums, and proto converters from .proto files."),
		kong.UsageOnError(),
	)
	ktx.FatalIfErrorf(run(context.Background()))
}

func run(ctx context.Context) error {
	importPaths := cli.ImportPath
	if len(importPaths) == 0 {
		importPaths = []string{"."}
	}
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: importPaths,
		}),
	}
	compiled, err := compiler.Compile(ctx, cli.Files...)
	if err != nil {
		return err
	}
	fds := make([]protoreflect.FileDescriptor, len(compiled))
	for i, fd := range compiled {
		fds[i] = fd
	}
	if err := os.MkdirAll(cli.Out, os.ModePerm); err != nil {
		return err
	}
	var gen unrealgen.Generator
	return gen.GenerateToFileSystem(fds, cli.Out)
}
