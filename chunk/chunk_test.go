package chunk

import (
	"fmt"
	"testing"

	"github.com/castkit/director/stream"
)

// fakeOwner is a minimal in-memory Owner used across this package's tests:
// it never parses a container, it just answers Version/ChunkExists/GetChunk
// from a map the test populates directly.
type fakeOwner struct {
	version  int
	chunks   map[Tag]map[int32]Chunk
	warnings []string
}

func newFakeOwner(version int) *fakeOwner {
	return &fakeOwner{version: version, chunks: make(map[Tag]map[int32]Chunk)}
}

func (o *fakeOwner) Version() int { return o.version }

func (o *fakeOwner) ChunkExists(tag Tag, slotID int32) bool {
	m, ok := o.chunks[tag]
	if !ok {
		return false
	}
	_, ok = m[slotID]
	return ok
}

func (o *fakeOwner) GetChunk(tag Tag, slotID int32) (Chunk, error) {
	m, ok := o.chunks[tag]
	if !ok {
		return nil, ErrUnresolvedReference
	}
	c, ok := m[slotID]
	if !ok {
		return nil, ErrUnresolvedReference
	}
	return c, nil
}

func (o *fakeOwner) Warn(format string, args ...any) {
	o.warnings = append(o.warnings, fmt.Sprintf(format, args...))
}

func (o *fakeOwner) put(tag Tag, slotID int32, c Chunk) {
	if o.chunks[tag] == nil {
		o.chunks[tag] = make(map[int32]Chunk)
	}
	o.chunks[tag][slotID] = c
}

func TestTagMakeAndString(t *testing.T) {
	tag := MakeTag('L', 's', 'c', 'r')
	if tag != TagScript {
		t.Fatalf("MakeTag mismatch: %v != %v", tag, TagScript)
	}
	if got := tag.String(); got != "Lscr" {
		t.Fatalf("String() = %q", got)
	}
}

func TestNewKnownTagDispatches(t *testing.T) {
	c, ok := New(TagCastMember)
	if !ok {
		t.Fatal("expected TagCastMember to be registered")
	}
	if _, isCastMember := c.(*CastMemberChunk); !isCastMember {
		t.Fatalf("New(TagCastMember) = %T", c)
	}
}

func TestNewUnknownTagFallsBackToOpaque(t *testing.T) {
	weird := MakeTag('Z', 'Z', 'Z', 'Z')
	c, ok := New(weird)
	if ok {
		t.Fatal("expected unknown tag to report !ok")
	}
	oc, isOpaque := c.(*OpaqueChunk)
	if !isOpaque {
		t.Fatalf("New(unknown) = %T", c)
	}
	if oc.Tag() != weird {
		t.Fatalf("OpaqueChunk.Tag() = %v, want %v", oc.Tag(), weird)
	}
}

func TestOpaqueChunkRoundTrip(t *testing.T) {
	owner := newFakeOwner(500)
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01}

	in := stream.New(raw, stream.BigEndian)
	c := &OpaqueChunk{}
	if err := c.ReadFrom(in, owner); err != nil {
		t.Fatal(err)
	}
	if c.Size(owner) != len(raw) {
		t.Fatalf("Size = %d, want %d", c.Size(owner), len(raw))
	}

	out := stream.NewWriter(stream.BigEndian)
	if err := c.WriteTo(out, owner); err != nil {
		t.Fatal(err)
	}
	if string(out.Bytes()) != string(raw) {
		t.Fatalf("round trip mismatch: %v != %v", out.Bytes(), raw)
	}
}
