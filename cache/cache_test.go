package cache

import (
	"path/filepath"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	raw := []byte("a fake container's raw bytes")
	snap := &Snapshot{
		Endian: 0,
		Slots: []SlotRecord{
			{Tag: 0x696D6170, Offset: 12, Length: 24},
			{Tag: 0x6D6D6170, Offset: 36, Length: 64},
		},
	}

	if err := store.Put(raw, snap); err != nil {
		t.Fatal(err)
	}

	got, hit, err := store.Get(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if len(got.Slots) != 2 || got.Slots[0].Offset != 12 || got.Slots[1].Length != 64 {
		t.Fatalf("round trip mismatch: %+v", got.Slots)
	}
}

func TestGetMissReturnsFalseNotError(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	_, hit, err := store.Get([]byte("never stored"))
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Fatal("expected a miss")
	}
}

func TestKeyIsContentAddressed(t *testing.T) {
	a := Key([]byte("one"))
	b := Key([]byte("one"))
	c := Key([]byte("two"))
	if a != b {
		t.Fatal("expected identical content to hash identically")
	}
	if a == c {
		t.Fatal("expected different content to hash differently")
	}
}
