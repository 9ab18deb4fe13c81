// Package unrealgen generates Unreal Engine C++ source code from protobuf
// descriptors.
//
// For each input file it emits a header of UENUM declarations, one header of
// USTRUCT declarations per top-level message, and a converter class whose
// static Convert functions populate the generated structs from the
// corresponding protobuf C++ message instances. The package operates purely on
// [google.golang.org/protobuf/reflect/protoreflect] descriptors, so it can be
// driven by a protoc plugin, by descriptors compiled in-process with
// [github.com/bufbuild/protocompile], or by descriptors loaded from a
// serialized file descriptor set.
package unrealgen
