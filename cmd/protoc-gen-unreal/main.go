// Command protoc-gen-unreal is a protoc plugin that generates Unreal Engine
// C++ structs, enums, and conversion code from .proto files.
//
// Install it on the PATH and invoke it through protoc:
//
//	protoc --unreal_out=gen/ game.proto
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/unrealpb/protoc-gen-unreal/internal/sort"
	"github.com/unrealpb/protoc-gen-unreal/unrealgen"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "protoc-gen-unreal: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read code generator request: %v", err)
	}
	var req pluginpb.CodeGeneratorRequest
	if err := proto.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse code generator request: %v", err)
	}
	data, err = proto.Marshal(generate(&req))
	if err != nil {
		return fmt.Errorf("failed to marshal code generator response: %v", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write code generator response: %v", err)
	}
	return nil
}

// generate builds the response for one code generator request. Generation
// failures are reported through the response's error field, per the plugin
// contract, rather than by crashing the process.
func generate(req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}
	fail := func(err error) *pluginpb.CodeGeneratorResponse {
		resp.Error = proto.String(err.Error())
		return resp
	}
	if len(req.GetFileToGenerate()) == 0 {
		return fail(fmt.Errorf("no files to generate"))
	}
	// protoc sends files in dependency order, but other drivers of the
	// plugin protocol are not obligated to.
	protos := req.GetProtoFile()
	if err := sort.SortFiles(protos); err != nil {
		return fail(err)
	}
	reg, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{File: protos})
	if err != nil {
		return fail(err)
	}
	fds := make([]protoreflect.FileDescriptor, len(req.GetFileToGenerate()))
	for i, path := range req.GetFileToGenerate() {
		fd, err := reg.FindFileByPath(path)
		if err != nil {
			return fail(fmt.Errorf("file to generate %q not found in request: %v", path, err))
		}
		fds[i] = fd
	}
	var gen unrealgen.Generator
	err = gen.GenerateFiles(fds, func(name string) (io.WriteCloser, error) {
		return &responseFile{resp: resp, name: name}, nil
	})
	if err != nil {
		return fail(err)
	}
	return resp
}

// responseFile buffers one generated output and appends it to the response
// when closed.
type responseFile struct {
	bytes.Buffer
	resp *pluginpb.CodeGeneratorResponse
	name string
}

func (f *responseFile) Close() error {
	f.resp.File = append(f.resp.File, &pluginpb.CodeGeneratorResponse_File{
		Name:    proto.String(f.name),
		Content: proto.String(f.String()),
	})
	return nil
}
