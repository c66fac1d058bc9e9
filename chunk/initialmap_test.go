package chunk

import (
	"testing"

	"github.com/castkit/director/stream"
)

func TestInitialMapRoundTrip(t *testing.T) {
	c := &InitialMapChunk{One: 1, MMapOffset: 1234, Version: 1201}

	out := stream.NewWriter(stream.BigEndian)
	if err := c.WriteTo(out, nil); err != nil {
		t.Fatal(err)
	}
	if c.Size(nil) != len(out.Bytes()) {
		t.Fatalf("Size() = %d, written = %d", c.Size(nil), len(out.Bytes()))
	}

	got := &InitialMapChunk{}
	if err := got.ReadFrom(stream.New(out.Bytes(), stream.BigEndian), nil); err != nil {
		t.Fatal(err)
	}
	if got.MMapOffset != c.MMapOffset || got.Version != c.Version {
		t.Fatalf("round trip mismatch: %+v != %+v", got, c)
	}
}
