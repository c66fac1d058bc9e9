package chunk

import (
	"testing"

	"github.com/castkit/director/stream"
)

func sampleScript() *ScriptChunk {
	return &ScriptChunk{
		ScriptNumber: 1,

		PropertiesCount:  1,
		PropertiesOffset: 92,
		GlobalsCount:     1,
		GlobalsOffset:    94,

		HandlersCount:  1,
		HandlersOffset: 96,

		LiteralsCount:      1,
		LiteralsOffset:     120,
		LiteralsDataCount:  1,
		LiteralsDataOffset: 132,

		PropertyNameIDs: []int16{0},
		GlobalNameIDs:   []int16{1},

		Handlers: []*Handler{{
			NameID:         2,
			CompiledLen:    4,
			CompiledOffset: 140,
			CompiledData:   []byte{9, 9, 9, 9},
		}},
		Literals: []*Literal{{
			Type:        literalTypeString,
			Offset:      0,
			IsString:    true,
			StringValue: "hi",
		}},
	}
}

func TestScriptRoundTrip(t *testing.T) {
	owner := newFakeOwner(500)
	c := sampleScript()

	out := stream.NewWriter(stream.BigEndian)
	if err := c.WriteTo(out, owner); err != nil {
		t.Fatal(err)
	}

	got := &ScriptChunk{}
	if err := got.ReadFrom(stream.New(out.Bytes(), stream.BigEndian), owner); err != nil {
		t.Fatal(err)
	}
	if len(got.Handlers) != 1 || string(got.Handlers[0].CompiledData) != string([]byte{9, 9, 9, 9}) {
		t.Fatalf("handler mismatch: %+v", got.Handlers)
	}
	if len(got.Literals) != 1 || !got.Literals[0].IsString || got.Literals[0].StringValue != "hi" {
		t.Fatalf("literal mismatch: %+v", got.Literals)
	}
	if got.PropertyNameIDs[0] != 0 || got.GlobalNameIDs[0] != 1 {
		t.Fatalf("varnames mismatch: %+v / %+v", got.PropertyNameIDs, got.GlobalNameIDs)
	}
}

func TestScriptSetContextResolvesNames(t *testing.T) {
	lnam := &ScriptNamesChunk{Names: []string{"pFoo", "gBar", "exitFrame"}}
	ctx := &ScriptContextChunk{tag: TagScriptContext, Lnam: lnam}

	c := sampleScript()
	c.PropertyNameIDs = []int16{0}
	c.GlobalNameIDs = []int16{1}
	c.Handlers[0].NameID = 2

	c.SetContext(ctx)

	if c.Context != ctx {
		t.Fatal("expected Context to be set")
	}
	if c.PropertyNames[0] != "pFoo" || c.GlobalNames[0] != "gBar" {
		t.Fatalf("name resolution mismatch: %v / %v", c.PropertyNames, c.GlobalNames)
	}
	if c.Handlers[0].Name != "exitFrame" {
		t.Fatalf("handler name = %q, want exitFrame", c.Handlers[0].Name)
	}
}

func TestScriptGetNameWithoutContextFallsBack(t *testing.T) {
	c := &ScriptChunk{}
	if got := c.GetName(4); got != "UNKNOWN_NAME_4" {
		t.Fatalf("GetName(4) = %q", got)
	}
}

// TestScriptRoundTripPreservesUndocumentedRanges hand-assembles a Script
// section with non-zero junk in the local-header and two header-gap
// ranges that ReadFrom captures into LocalHeader/Remnant1/Remnant2. A script built purely by
// WriteTo would never exercise this, since WriteTo's own zero-fill would
// make the round trip succeed even if the bytes were being discarded.
func TestScriptRoundTripPreservesUndocumentedRanges(t *testing.T) {
	raw := stream.NewWriter(stream.BigEndian)
	raw.WriteBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8}) // local header
	raw.WriteU32(92)                               // TotalLength
	raw.WriteU32(92)                               // TotalLength2
	raw.WriteU16(0)                                // HeaderLength
	raw.WriteU16(7)                                // ScriptNumber
	raw.WriteBytes([]byte{ // Remnant1: 18 bytes, ScriptNumber..ScriptBehavior
		0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, 0x11, 0x22,
		0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0x00,
		0x12, 0x34,
	})
	raw.WriteU32(0)                                                      // ScriptBehavior
	raw.WriteBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04}) // Remnant2: 8 bytes
	raw.WriteU16(0)                                                      // HandlerVectorsCount
	raw.WriteU32(0)                                                      // HandlerVectorsOffset
	raw.WriteU32(0)                                                      // HandlerVectorsSize
	raw.WriteU16(0)                                                      // PropertiesCount
	raw.WriteU32(92)                                                     // PropertiesOffset
	raw.WriteU16(0)                                                      // GlobalsCount
	raw.WriteU32(92)                                                     // GlobalsOffset
	raw.WriteU16(0)                                                      // HandlersCount
	raw.WriteU32(92)                                                     // HandlersOffset
	raw.WriteU16(0)                                                      // LiteralsCount
	raw.WriteU32(92)                                                     // LiteralsOffset
	raw.WriteU32(0)                                                      // LiteralsDataCount
	raw.WriteU32(92)                                                     // LiteralsDataOffset
	want := raw.Bytes()

	owner := newFakeOwner(500)
	c := &ScriptChunk{}
	if err := c.ReadFrom(stream.New(want, stream.BigEndian), owner); err != nil {
		t.Fatal(err)
	}

	out := stream.NewWriter(stream.BigEndian)
	if err := c.WriteTo(out, owner); err != nil {
		t.Fatal(err)
	}
	got := out.Bytes()

	if string(got) != string(want) {
		t.Fatalf("round trip mismatch:\n got  % x\n want % x", got, want)
	}
}
