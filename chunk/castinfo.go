package chunk

import "github.com/castkit/director/stream"

// CastInfoChunk is the cast-info sub-chunk embedded in a CastMemberChunk:
// a ListChunk whose item 0 is the member's Lingo source text, item 1 its
// name, and items 2-21 a set of recognized-but-opaque fields preserved
// round-trip.
type CastInfoChunk struct {
	ListChunk

	DataOffset2 uint32 // re-derived on write; kept only for symmetry with ReadFrom's raw capture
	Unk1        uint32
	Unk2        uint32
	Flags       uint32
	ScriptID    uint32

	ScriptSrcText string
	Name          string
}

func (c *CastInfoChunk) readHeader(s *stream.Stream) error {
	var err error
	if c.DataOffset2, err = s.ReadU32(); err != nil {
		return err
	}
	c.DataOffset = c.DataOffset2
	if c.Unk1, err = s.ReadU32(); err != nil {
		return err
	}
	if c.Unk2, err = s.ReadU32(); err != nil {
		return err
	}
	if c.Flags, err = s.ReadU32(); err != nil {
		return err
	}
	if c.ScriptID, err = s.ReadU32(); err != nil {
		return err
	}
	return nil
}

// castInfoHeaderSize is the fixed cast-info header: dataOffset + unk1 + unk2 +
// flags + scriptId, each a uint32.
const castInfoHeaderSize = 20

func (c *CastInfoChunk) writeHeader(s *stream.Stream) {
	s.WriteU32(uint32(castInfoHeaderSize))
	s.WriteU32(c.Unk1)
	s.WriteU32(c.Unk2)
	s.WriteU32(c.Flags)
	s.WriteU32(c.ScriptID)
}

// ReadCastInfo decodes a cast-info sub-chunk from s. It is not registered
// in the tag-dispatch registry (it has no four-character tag of its own;
// it is always embedded inside a CastMemberChunk) so it is constructed
// directly by CastMemberChunk.ReadFrom.
func ReadCastInfo(s *stream.Stream) (*CastInfoChunk, error) {
	c := &CastInfoChunk{}
	if err := c.readHeader(s); err != nil {
		return nil, err
	}
	if err := c.ReadOffsetTable(s); err != nil {
		return nil, err
	}
	if err := c.ReadItems(s); err != nil {
		return nil, err
	}
	c.ScriptSrcText = c.ReadItemString(0)
	c.Name = c.ReadItemPascalString(1)
	return c, nil
}

// ItemSize overrides indices 0 and 1 (the fields this type interprets);
// every other index falls through to the raw-bytes pass-through.
func (c *CastInfoChunk) ItemSize(index uint16) int {
	switch index {
	case 0:
		return len(c.ScriptSrcText)
	case 1:
		if len(c.Name) > 0 {
			return 1 + len(c.Name)
		}
		return 0
	default:
		return c.DefaultItemSize(index)
	}
}

// WriteItem overrides indices 0 and 1; every other index falls through
// to the raw-bytes pass-through, preserving opaque fields verbatim.
func (c *CastInfoChunk) WriteItem(s *stream.Stream, index uint16) {
	switch index {
	case 0:
		s.WriteString(c.ScriptSrcText)
	case 1:
		if len(c.Name) > 0 {
			s.WritePascalString(c.Name)
		}
	default:
		c.DefaultWriteItem(s, index)
	}
}

// Size is the cast-info sub-chunk's total byte length.
func (c *CastInfoChunk) Size() int {
	return c.ListChunk.Size(c, castInfoHeaderSize)
}

// WriteTo re-emits the cast-info sub-chunk.
func (c *CastInfoChunk) WriteTo(s *stream.Stream) {
	c.writeHeader(s)
	c.WriteOffsetTable(s, c)
	c.WriteItems(s, c)
}
