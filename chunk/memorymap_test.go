package chunk

import (
	"testing"

	"github.com/castkit/director/stream"
)

func TestMemoryMapRoundTrip(t *testing.T) {
	c := &MemoryMapChunk{
		HeaderLength:  24,
		EntryLength:   18,
		ChunkCountMax: 2,
		FreeHead:      -1,
		JunkHead:      -1,
		JunkHead2:     -1,
		MapArray: []MapEntry{
			{FourCC: TagConfigD, Len: 68, Offset: 48, Next: -1},
			{FourCC: TagKeyTable, Len: 40, Offset: 124, Next: -1},
		},
	}
	c.ChunkCountUsed = int32(len(c.MapArray))

	out := stream.NewWriter(stream.BigEndian)
	if err := c.WriteTo(out, nil); err != nil {
		t.Fatal(err)
	}

	got := &MemoryMapChunk{}
	if err := got.ReadFrom(stream.New(out.Bytes(), stream.BigEndian), nil); err != nil {
		t.Fatal(err)
	}
	if len(got.MapArray) != 2 {
		t.Fatalf("entry count = %d, want 2", len(got.MapArray))
	}
	if got.MapArray[0].FourCC != TagConfigD || got.MapArray[0].Offset != 48 {
		t.Fatalf("entry 0 mismatch: %+v", got.MapArray[0])
	}
	if got.MapArray[1].FourCC != TagKeyTable || got.MapArray[1].Len != 40 {
		t.Fatalf("entry 1 mismatch: %+v", got.MapArray[1])
	}
}
