package chunk

import (
	"testing"

	"github.com/castkit/director/stream"
)

// passthroughList is the simplest possible ListChunk embedder: every item
// falls through to the default pass-through codec.
type passthroughList struct {
	ListChunk
}

func (l *passthroughList) ItemSize(index uint16) int { return l.DefaultItemSize(index) }
func (l *passthroughList) WriteItem(s *stream.Stream, index uint16) {
	l.DefaultWriteItem(s, index)
}

func TestListChunkReadWriteRoundTrip(t *testing.T) {
	l := &passthroughList{}
	l.Items = [][]byte{[]byte("one"), []byte("two!"), []byte("x")}
	l.OffsetTable = make([]uint32, len(l.Items))

	out := stream.NewWriter(stream.BigEndian)
	out.WriteU32(uint32(l.HeaderSize()))
	l.WriteOffsetTable(out, l)
	l.WriteItems(out, l)

	got := &passthroughList{}
	in := stream.New(out.Bytes(), stream.BigEndian)
	if err := got.Read(in); err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != len(l.Items) {
		t.Fatalf("item count = %d, want %d", len(got.Items), len(l.Items))
	}
	for i, item := range l.Items {
		if string(got.Items[i]) != string(item) {
			t.Fatalf("item %d = %q, want %q", i, got.Items[i], item)
		}
	}
}

func TestListChunkItemAccessorsOutOfRange(t *testing.T) {
	l := &ListChunk{}
	if s := l.ItemBytes(0); s != nil {
		t.Fatal("expected nil stream for out-of-range item")
	}
	if got := l.ReadItemPascalString(0); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := l.ReadItemU16(0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestListChunkSizeMatchesWrittenLength(t *testing.T) {
	l := &passthroughList{}
	l.Items = [][]byte{[]byte("abc"), []byte("de")}
	l.OffsetTable = make([]uint32, len(l.Items))

	size := l.Size(l, l.HeaderSize())

	out := stream.NewWriter(stream.BigEndian)
	out.WriteU32(uint32(l.HeaderSize()))
	l.WriteOffsetTable(out, l)
	l.WriteItems(out, l)

	if len(out.Bytes()) != size {
		t.Fatalf("Size() = %d, actual written = %d", size, len(out.Bytes()))
	}
}
