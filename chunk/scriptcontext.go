package chunk

import "github.com/castkit/director/stream"

// SectionMapEntry relates one entry of a Script Context's section map to
// the Script chunk it points at. Its field layout is reconstructed from
// the read loop's usage: sectionID gates whether the slot is populated,
// the other three fields round-trip opaquely.
type SectionMapEntry struct {
	Unknown0  int32
	SectionID int32
	Unknown1  int16
	Unknown2  int16
}

func (e *SectionMapEntry) read(s *stream.Stream) error {
	var err error
	if e.Unknown0, err = s.ReadI32(); err != nil {
		return err
	}
	if e.SectionID, err = s.ReadI32(); err != nil {
		return err
	}
	if e.Unknown1, err = s.ReadI16(); err != nil {
		return err
	}
	if e.Unknown2, err = s.ReadI16(); err != nil {
		return err
	}
	return nil
}

func (e *SectionMapEntry) write(s *stream.Stream) {
	s.WriteI32(e.Unknown0)
	s.WriteI32(e.SectionID)
	s.WriteI16(e.Unknown1)
	s.WriteI16(e.Unknown2)
}

const sectionMapEntrySize = 12

// ScriptContextChunk ("Lctx"/"LctX") binds a group of Script chunks to the
// Script Names table they share, keyed by 1-based section-map index.
type ScriptContextChunk struct {
	tag Tag

	Unknown0     int32
	Unknown1     int32
	EntryCount   uint32
	EntryCount2  uint32
	EntriesOffset uint16
	Unknown2     int16
	Unknown3     int32
	Unknown4     int32
	Unknown5     int32
	LnamSectionID int32
	ValidCount   uint16
	Flags        uint16
	FreePointer  int16

	SectionMap []SectionMapEntry

	Lnam    *ScriptNamesChunk
	Scripts map[uint32]*ScriptChunk
}

func (c *ScriptContextChunk) Tag() Tag { return c.tag }

func (c *ScriptContextChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)

	var err error
	if c.Unknown0, err = s.ReadI32(); err != nil {
		return err
	}
	if c.Unknown1, err = s.ReadI32(); err != nil {
		return err
	}
	if c.EntryCount, err = s.ReadU32(); err != nil {
		return err
	}
	if c.EntryCount2, err = s.ReadU32(); err != nil {
		return err
	}
	if c.EntriesOffset, err = s.ReadU16(); err != nil {
		return err
	}
	if c.Unknown2, err = s.ReadI16(); err != nil {
		return err
	}
	if c.Unknown3, err = s.ReadI32(); err != nil {
		return err
	}
	if c.Unknown4, err = s.ReadI32(); err != nil {
		return err
	}
	if c.Unknown5, err = s.ReadI32(); err != nil {
		return err
	}
	if c.LnamSectionID, err = s.ReadI32(); err != nil {
		return err
	}
	if c.ValidCount, err = s.ReadU16(); err != nil {
		return err
	}
	if c.Flags, err = s.ReadU16(); err != nil {
		return err
	}
	if c.FreePointer, err = s.ReadI16(); err != nil {
		return err
	}

	if err := s.Seek(int(c.EntriesOffset)); err != nil {
		return err
	}
	c.SectionMap = make([]SectionMapEntry, c.EntryCount)
	for i := range c.SectionMap {
		if err := c.SectionMap[i].read(s); err != nil {
			return err
		}
	}

	if owner.ChunkExists(TagScriptNames, c.LnamSectionID) {
		ch, err := owner.GetChunk(TagScriptNames, c.LnamSectionID)
		if err != nil {
			owner.Warn("script context: Lnam section %d: %v", c.LnamSectionID, err)
		} else {
			c.Lnam, _ = ch.(*ScriptNamesChunk)
		}
	}

	c.Scripts = make(map[uint32]*ScriptChunk)
	for i := uint32(1); i <= c.EntryCount; i++ {
		section := c.SectionMap[i-1]
		if section.SectionID <= -1 {
			continue
		}
		if !owner.ChunkExists(TagScript, section.SectionID) {
			continue
		}
		ch, err := owner.GetChunk(TagScript, section.SectionID)
		if err != nil {
			owner.Warn("script context: script section %d: %v", section.SectionID, err)
			continue
		}
		script, ok := ch.(*ScriptChunk)
		if !ok {
			continue
		}
		script.SetContext(c)
		c.Scripts[i] = script
	}
	return nil
}

const scriptContextHeaderSize = 42 // every fixed field ReadFrom/WriteTo read/write, in byte order

func (c *ScriptContextChunk) Size(owner Owner) int {
	return scriptContextHeaderSize + len(c.SectionMap)*sectionMapEntrySize
}

func (c *ScriptContextChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)
	s.WriteI32(c.Unknown0)
	s.WriteI32(c.Unknown1)
	s.WriteU32(c.EntryCount)
	s.WriteU32(c.EntryCount2)
	s.WriteU16(c.EntriesOffset)
	s.WriteI16(c.Unknown2)
	s.WriteI32(c.Unknown3)
	s.WriteI32(c.Unknown4)
	s.WriteI32(c.Unknown5)
	s.WriteI32(c.LnamSectionID)
	s.WriteU16(c.ValidCount)
	s.WriteU16(c.Flags)
	s.WriteI16(c.FreePointer)
	for i := range c.SectionMap {
		c.SectionMap[i].write(s)
	}
	return nil
}

// GetName resolves a name-id through the context's Script Names chunk, or
// falls back to ScriptNamesChunk's own out-of-range sentinel if Lnam never
// resolved.
func (c *ScriptContextChunk) GetName(id int) string {
	if c.Lnam == nil {
		return (&ScriptNamesChunk{}).GetName(id)
	}
	return c.Lnam.GetName(id)
}
