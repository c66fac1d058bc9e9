package chunk

import (
	"testing"

	"github.com/castkit/director/stream"
)

func TestScriptNamesGetNameInRange(t *testing.T) {
	c := &ScriptNamesChunk{Names: []string{"a", "b", "c"}}
	if got := c.GetName(1); got != "b" {
		t.Fatalf("GetName(1) = %q, want %q", got, "b")
	}
}

func TestScriptNamesGetNameOutOfRange(t *testing.T) {
	c := &ScriptNamesChunk{Names: []string{"a", "b"}}
	if got := c.GetName(5); got != "UNKNOWN_NAME_5" {
		t.Fatalf("GetName(5) = %q, want UNKNOWN_NAME_5", got)
	}
	if got := c.GetName(-1); got != "UNKNOWN_NAME_-1" {
		t.Fatalf("GetName(-1) = %q", got)
	}
}

func TestScriptNamesRoundTrip(t *testing.T) {
	c := &ScriptNamesChunk{
		Unknown0: 1, Unknown1: 2, Len1: 3, Len2: 4,
		Names: []string{"alpha", "beta"},
	}
	c.NamesOffset = 20
	c.NamesCount = uint16(len(c.Names))

	out := stream.NewWriter(stream.BigEndian)
	if err := c.WriteTo(out, nil); err != nil {
		t.Fatal(err)
	}

	got := &ScriptNamesChunk{}
	in := stream.New(out.Bytes(), stream.BigEndian)
	if err := got.ReadFrom(in, nil); err != nil {
		t.Fatal(err)
	}
	if len(got.Names) != 2 || got.Names[0] != "alpha" || got.Names[1] != "beta" {
		t.Fatalf("Names = %v", got.Names)
	}
}
