package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/bufbuild/protocompile"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

func compileRequest(t *testing.T, sources map[string]string, toGenerate ...string) *pluginpb.CodeGeneratorRequest {
	t.Helper()
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(sources),
		}),
	}
	fds, err := compiler.Compile(context.Background(), toGenerate...)
	require.NoError(t, err)
	var protos []*descriptorpb.FileDescriptorProto
	seen := map[string]bool{}
	for _, fd := range fds {
		imports := fd.Imports()
		for i := 0; i < imports.Len(); i++ {
			dep := imports.Get(i).FileDescriptor
			if !seen[dep.Path()] {
				seen[dep.Path()] = true
				protos = append(protos, protodesc.ToFileDescriptorProto(dep))
			}
		}
		if !seen[fd.Path()] {
			seen[fd.Path()] = true
			protos = append(protos, protodesc.ToFileDescriptorProto(fd))
		}
	}
	return &pluginpb.CodeGeneratorRequest{
		FileToGenerate: toGenerate,
		ProtoFile:      protos,
	}
}

const gameProto = `
syntax = "proto3";
package game;

enum Color {
  COLOR_UNSPECIFIED = 0;
  COLOR_RED = 1;
}

message Point {
  int32 x = 1;
  optional Color color = 2;
}
`

func TestGenerateResponse(t *testing.T) {
	req := compileRequest(t, map[string]string{"game.proto": gameProto}, "game.proto")
	resp := generate(req)
	require.Nil(t, resp.Error)
	require.Equal(t, uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL), resp.GetSupportedFeatures())

	byName := map[string]string{}
	for _, f := range resp.GetFile() {
		byName[f.GetName()] = f.GetContent()
	}
	require.Contains(t, byName, "GameEnums.h")
	require.Contains(t, byName, "FPoint.h")
	require.Contains(t, byName, "GameConverter.h")
	require.Contains(t, byName, "GameConverter.cpp")
	require.Contains(t, byName["FPoint.h"], "struct FPoint {")
	require.Contains(t, byName["GameConverter.cpp"], "if (In.has_color()) Out.Color = static_cast<EColor>(In.color());")
}

func TestGenerateResponseUnknownFile(t *testing.T) {
	req := compileRequest(t, map[string]string{"game.proto": gameProto}, "game.proto")
	req.FileToGenerate = []string{"missing.proto"}
	resp := generate(req)
	require.NotNil(t, resp.Error)
	require.Contains(t, resp.GetError(), "missing.proto")
}

func TestGenerateResponseNoFiles(t *testing.T) {
	resp := generate(&pluginpb.CodeGeneratorRequest{})
	require.NotNil(t, resp.Error)
	require.Contains(t, resp.GetError(), "no files to generate")
}

func TestRunRoundTrip(t *testing.T) {
	req := compileRequest(t, map[string]string{"game.proto": gameProto}, "game.proto")
	data, err := proto.Marshal(req)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(bytes.NewReader(data), &out))

	var resp pluginpb.CodeGeneratorResponse
	require.NoError(t, proto.Unmarshal(out.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.NotEmpty(t, resp.GetFile())
}
