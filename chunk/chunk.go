package chunk

import "github.com/castkit/director/stream"

// Owner is the subset of the top-level Directory that a chunk needs while
// reading or writing itself: the current movie version (for layout/
// checksum gating) and the ability to resolve a cross-reference to
// another chunk by tag and slot. Declared here, rather than importing the
// root package, so chunk has no dependency on its own caller; the
// Directory implements this interface.
type Owner interface {
	// Version reports HumanVersion(Config.DirectorVersion), valid only
	// once the Config chunk has been materialized.
	Version() int

	// ChunkExists reports whether a slot with the given tag exists.
	ChunkExists(tag Tag, slotID int32) bool

	// GetChunk materializes (or returns the cached) chunk at slotID,
	// verifying its tag matches. Returns ErrUnresolvedReference if the
	// slot doesn't exist or the tag disagrees.
	GetChunk(tag Tag, slotID int32) (Chunk, error)

	// Warn records a non-fatal diagnostic (checksum mismatch, unresolved
	// reference, unknown tag) against the current load.
	Warn(format string, args ...any)
}

// Chunk is the sum type over every recognized chunk variant plus an
// opaque fallback for unrecognized tags. Dispatch is by the registry
// table consulted by New, a map-based lookup rather than a type switch scattered
// across call sites.
type Chunk interface {
	// Tag reports the four-character kind of this chunk.
	Tag() Tag

	// ReadFrom decodes the chunk's fields from s. The chunk may use
	// owner to resolve cross-references or gate its layout on the
	// movie's version.
	ReadFrom(s *stream.Stream, owner Owner) error

	// Size reports the exact byte length WriteTo will produce.
	Size(owner Owner) int

	// WriteTo re-emits the chunk's fields to s.
	WriteTo(s *stream.Stream, owner Owner) error
}

// OpaqueChunk is the fallback variant for a tag with no registered
// decoder: its bytes are preserved verbatim so the container can still be
// re-emitted byte-for-byte. An unknown tag is non-fatal; the slot is
// simply kept opaque.
type OpaqueChunk struct {
	tag  Tag
	Data []byte
}

func (c *OpaqueChunk) Tag() Tag { return c.tag }

func (c *OpaqueChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	b, err := s.CopyBytes(s.Len() - s.Pos())
	if err != nil {
		return err
	}
	c.Data = b
	return nil
}

func (c *OpaqueChunk) Size(owner Owner) int { return len(c.Data) }

func (c *OpaqueChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.WriteBytes(c.Data)
	return nil
}

// constructor builds a zero-valued Chunk of a given variant, ready for
// ReadFrom to populate.
type constructor func() Chunk

// registry is the tag-dispatch table. Config and Script Context are
// registered under both of their recognized spellings.
var registry = map[Tag]constructor{
	TagInitialMap:     func() Chunk { return &InitialMapChunk{} },
	TagMemoryMap:      func() Chunk { return &MemoryMapChunk{} },
	TagKeyTable:       func() Chunk { return &KeyTableChunk{} },
	TagConfigD:        func() Chunk { return &ConfigChunk{tag: TagConfigD} },
	TagConfigV:        func() Chunk { return &ConfigChunk{tag: TagConfigV} },
	TagCastList:       func() Chunk { return &CastListChunk{} },
	TagCast:           func() Chunk { return &CastChunk{} },
	TagCastMember:     func() Chunk { return &CastMemberChunk{} },
	TagScriptContext:  func() Chunk { return &ScriptContextChunk{tag: TagScriptContext} },
	TagScriptContext2: func() Chunk { return &ScriptContextChunk{tag: TagScriptContext2} },
	TagScriptNames:    func() Chunk { return &ScriptNamesChunk{} },
	TagScript:         func() Chunk { return &ScriptChunk{} },
}

// New constructs a zero-valued Chunk for tag, or an *OpaqueChunk if tag
// has no registered decoder (ErrUnknownTag's latitude: the caller decides
// whether to Warn).
func New(tag Tag) (Chunk, bool) {
	if ctor, ok := registry[tag]; ok {
		return ctor(), true
	}
	return &OpaqueChunk{tag: tag}, false
}
