// Package cache implements an on-disk, content-addressed memoization
// layer for parsed Directory snapshots: a batch pipeline re-processing the
// same cast library across many movies can skip re-parsing its container
// bytes on every run.
package cache

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"
	"go.etcd.io/bbolt"
)

var bucketSnapshots = []byte("snapshots")

// SlotRecord is one Memory Map entry as the Directory's slot index needs
// it: tag, file offset and length. A cache hit reconstructs the slot
// index from these instead of re-walking the container's Initial Map and
// Memory Map chunks; every chunk is still lazily materialized from the
// same raw container bytes, and every cross-reference is still resolved
// fresh (cross-references are weak and are never themselves cached).
type SlotRecord struct {
	Tag    uint32 `msgpack:"tag"`
	Offset uint32 `msgpack:"offset"`
	Length uint32 `msgpack:"length"`
}

// Snapshot is everything a cache hit needs to skip container parsing and
// the Memory Map walk for a given container's raw bytes.
type Snapshot struct {
	Endian uint8        `msgpack:"endian"`
	Slots  []SlotRecord `msgpack:"slots"`
}

// Store wraps a bbolt database file keyed by blake3 content hash of the
// raw container bytes a Load call received.
type Store struct {
	db       *bbolt.DB
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// Open creates or opens the snapshot cache at path.
func Open(path string) (*Store, error) {
	bdb, err := bbolt.Open(path, 0666, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: open: %w", err)
	}
	if err := bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	}); err != nil {
		bdb.Close()
		return nil, fmt.Errorf("cache: init bucket: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("cache: zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("cache: zstd decoder: %w", err)
	}

	return &Store{db: bdb, encoder: enc, decoder: dec}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	s.decoder.Close()
	return s.db.Close()
}

// Key is the content hash used to address a snapshot: the blake3 digest
// of the raw container bytes a Load call was given.
func Key(raw []byte) [32]byte {
	return blake3.Sum256(raw)
}

// Get looks up the snapshot for raw's content hash. The second return
// value is false on a cache miss; it is never an error by itself.
func (s *Store) Get(raw []byte) (*Snapshot, bool, error) {
	key := Key(raw)
	var compressed []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		v := b.Get(key[:])
		if v == nil {
			return nil
		}
		compressed = make([]byte, len(v))
		copy(compressed, v)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("cache: get: %w", err)
	}
	if compressed == nil {
		return nil, false, nil
	}

	packed, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("cache: decompress: %w", err)
	}

	var snap Snapshot
	if err := msgpack.NewDecoder(bytes.NewReader(packed)).Decode(&snap); err != nil {
		return nil, false, fmt.Errorf("cache: unmarshal: %w", err)
	}
	return &snap, true, nil
}

// Put stores snap under raw's content hash, overwriting any prior entry.
func (s *Store) Put(raw []byte, snap *Snapshot) error {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}

	compressed := s.encoder.EncodeAll(buf.Bytes(), make([]byte, 0, buf.Len()))

	key := Key(raw)
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		return b.Put(key[:], compressed)
	})
}

var _ io.Closer = (*Store)(nil)
