package unrealgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// An optional scalar converts only when the source reports it present, so an
// absent field and a field explicitly set to zero stay distinguishable in the
// generated TOptional.
func TestConvertOptionalScalarPresence(t *testing.T) {
	fd := compileFile(t, "game.proto", `
syntax = "proto3";
package game;

message Config {
  optional int32 retries = 1;
  int32 timeout = 2;
}
`)
	files := generate(t, &Generator{}, fd)
	impl := files["GameConverter.cpp"]

	require.Contains(t, impl, "if (In.has_retries()) Out.Retries = In.retries();")
	// Implicit-presence fields copy unconditionally.
	require.Contains(t, impl, "Out.Timeout = In.timeout();")
	require.NotContains(t, impl, "has_timeout")
	// The synthetic oneof wrapping the optional scalar never surfaces as a
	// dispatch or discriminator.
	require.NotContains(t, impl, "switch")
	require.NotContains(t, files["FConfig.h"], "enum class")
}

func TestConvertRepeatedAndMapValues(t *testing.T) {
	fd := compileFile(t, "game.proto", `
syntax = "proto3";
package game;

message Item {
  int32 n = 1;
}

message Bag {
  repeated string names = 1;
  repeated Item items = 2;
  map<int64, Item> index = 3;
  map<string, bytes> blobs = 4;
}
`)
	files := generate(t, &Generator{}, fd)
	impl := files["GameConverter.cpp"]

	want := `FBag ProtoToUStructConverter::Convert(const ::game::Bag& In) {
  FBag Out;
  for (const auto& E : In.names()) {
    Out.Names.Add(FString(UTF8_TO_TCHAR(E.c_str())));
  }
  for (const auto& E : In.items()) {
    Out.Items.Add(ProtoToUStructConverter::Convert(E));
  }
  for (const auto& P : In.index()) {
    Out.Index.Add(P.first, ProtoToUStructConverter::Convert(P.second));
  }
  for (const auto& P : In.blobs()) {
    Out.Blobs.Add(FString(UTF8_TO_TCHAR(P.first.c_str())), FString(UTF8_TO_TCHAR(P.second.c_str())));
  }
  return Out;
}`
	body := convertFunctionBody(t, impl, "FBag")
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("FBag converter mismatch (-want +got):\n%s", diff)
	}
}

// Enum numerics are cast without range validation: an out-of-range value is
// preserved as an invalid enum value rather than rejected.
func TestConvertEnumCast(t *testing.T) {
	fd := compileFile(t, "game.proto", `
syntax = "proto3";
package game;

enum Level {
  LEVEL_UNSPECIFIED = 0;
  LEVEL_HIGH = 1;
}

message Alarm {
  Level level = 1;
  repeated Level history = 2;
}
`)
	files := generate(t, &Generator{}, fd)
	impl := files["GameConverter.cpp"]

	require.Contains(t, impl, "Out.Level = static_cast<ELevel>(In.level());")
	require.Contains(t, impl, "Out.History.Add(static_cast<ELevel>(E));")
}

func TestConvertNestedMessage(t *testing.T) {
	fd := compileFile(t, "game.proto", `
syntax = "proto3";
package game;

message Outer {
  message Inner {
    string id = 1;
  }
  Inner inner = 1;
}
`)
	files := generate(t, &Generator{}, fd)
	impl := files["GameConverter.cpp"]

	want := `#include "GameConverter.h"
#include "Game.pb.h"
FInner ProtoToUStructConverter::Convert(const ::game::Outer::Inner& In) {
  FInner Out;
  Out.Id = FString(UTF8_TO_TCHAR(In.id().c_str()));
  return Out;
}

FOuter ProtoToUStructConverter::Convert(const ::game::Outer& In) {
  FOuter Out;
  if (In.has_inner()) Out.Inner = ProtoToUStructConverter::Convert(In.inner());
  return Out;
}

`
	if diff := cmp.Diff(want, impl); diff != "" {
		t.Errorf("GameConverter.cpp mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertEmptyMessage(t *testing.T) {
	fd := compileFile(t, "game.proto", `
syntax = "proto3";
package game;

message Empty {
}
`)
	files := generate(t, &Generator{}, fd)

	require.Contains(t, files["GameConverter.cpp"],
		"FEmpty ProtoToUStructConverter::Convert(const ::game::Empty& In) {\n  FEmpty Out;\n  return Out;\n}\n")
}

// An unset oneof takes the default branch: no assignment, discriminator stays
// None.
func TestConvertOneofDefaultBranch(t *testing.T) {
	fd := compileFile(t, "game.proto", `
syntax = "proto3";
package game;

message Event {
  oneof body {
    int32 code = 1;
    string note = 2;
  }
}
`)
	files := generate(t, &Generator{}, fd)
	impl := files["GameConverter.cpp"]

	require.Contains(t, impl, "switch (In.body_case()) {")
	require.Contains(t, impl, "case ::game::Event::kCode:")
	require.Contains(t, impl, "case ::game::Event::kNote:")
	require.Contains(t, impl, "default: break;")
	require.Contains(t, impl, "Out.BodyType = EEventBodyType::Code;")
	require.Contains(t, impl, "Out.BodyType = EEventBodyType::Note;")
}
