package chunk

import "github.com/castkit/director/stream"

// KeyEntry relates a referenced section to the cast that owns it: "a cast
// member references its script" is recorded here as (sectionID, castID,
// fourCC), read by CastChunk.Populate to find the script context
// belonging to a given cast id.
type KeyEntry struct {
	SectionID int32
	CastID    int32
	FourCC    Tag
}

func (e *KeyEntry) read(s *stream.Stream) error {
	v, err := s.ReadI32()
	if err != nil {
		return err
	}
	e.SectionID = v
	if e.CastID, err = s.ReadI32(); err != nil {
		return err
	}
	fourCC, err := s.ReadU32()
	if err != nil {
		return err
	}
	e.FourCC = Tag(fourCC)
	return nil
}

func (e *KeyEntry) write(s *stream.Stream) {
	s.WriteI32(e.SectionID)
	s.WriteI32(e.CastID)
	s.WriteU32(uint32(e.FourCC))
}

// Empty reports whether this is an unused key-table slot: entries with
// sectionID == 0 are empty slots.
func (e KeyEntry) Empty() bool { return e.SectionID == 0 }

// KeyTableChunk ("KEY*") relates chunks to each other by (owner cast id,
// referenced section id, tag).
type KeyTableChunk struct {
	EntrySize  uint16
	EntrySize2 uint16
	EntryCount uint32
	UsedCount  uint32
	Entries    []KeyEntry
}

func (c *KeyTableChunk) Tag() Tag { return TagKeyTable }

func (c *KeyTableChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	var err error
	if c.EntrySize, err = s.ReadU16(); err != nil {
		return err
	}
	if c.EntrySize2, err = s.ReadU16(); err != nil {
		return err
	}
	if c.EntryCount, err = s.ReadU32(); err != nil {
		return err
	}
	if c.UsedCount, err = s.ReadU32(); err != nil {
		return err
	}
	c.Entries = make([]KeyEntry, c.EntryCount)
	for i := range c.Entries {
		if err := c.Entries[i].read(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *KeyTableChunk) Size(owner Owner) int {
	return 12 + 12*len(c.Entries)
}

func (c *KeyTableChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.WriteU16(c.EntrySize)
	s.WriteU16(c.EntrySize2)
	s.WriteU32(c.EntryCount)
	s.WriteU32(c.UsedCount)
	for i := range c.Entries {
		c.Entries[i].write(s)
	}
	return nil
}

// FindScriptContext implements the first step of CastChunk.Populate: the
// first entry whose castID matches id, whose tag is a Script Context
// spelling, and whose referenced slot exists.
func (c *KeyTableChunk) FindScriptContext(castID int32, owner Owner) (Tag, int32, bool) {
	for _, e := range c.Entries {
		if e.Empty() {
			continue
		}
		if e.CastID == castID && IsScriptContextTag(e.FourCC) && owner.ChunkExists(e.FourCC, e.SectionID) {
			return e.FourCC, e.SectionID, true
		}
	}
	return 0, 0, false
}
