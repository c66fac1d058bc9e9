package chunk

import "github.com/castkit/director/stream"

// CastListEntry is one cast within the Cast List: its name, file path, id
// range and preload settings. Fields beyond what ItemsPerCast declares
// are left at their zero value on read and must not be emitted on write.
type CastListEntry struct {
	Name            string
	FilePath        string
	PreloadSettings uint16
	MinMember       uint16
	MaxMember       uint16
	ID              int32
}

// CastListChunk ("MCsL") enumerates every cast present in the movie.
type CastListChunk struct {
	ListChunk

	Unk0         uint16
	CastCount    uint16
	ItemsPerCast uint16
	Unk1         uint16

	Entries []CastListEntry
}

func (c *CastListChunk) Tag() Tag { return TagCastList }

func (c *CastListChunk) readHeader(s *stream.Stream) error {
	var err error
	if c.DataOffset, err = s.ReadU32(); err != nil {
		return err
	}
	if c.Unk0, err = s.ReadU16(); err != nil {
		return err
	}
	if c.CastCount, err = s.ReadU16(); err != nil {
		return err
	}
	if c.ItemsPerCast, err = s.ReadU16(); err != nil {
		return err
	}
	if c.Unk1, err = s.ReadU16(); err != nil {
		return err
	}
	return nil
}

func (c *CastListChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)
	if err := c.readHeader(s); err != nil {
		return err
	}
	if err := c.ReadOffsetTable(s); err != nil {
		return err
	}
	if err := c.ReadItems(s); err != nil {
		return err
	}

	c.Entries = make([]CastListEntry, c.CastCount)
	for i := range c.Entries {
		base := uint16(i) * c.ItemsPerCast
		e := &c.Entries[i]
		if c.ItemsPerCast >= 1 {
			e.Name = c.ReadItemPascalString(base + 1)
		}
		if c.ItemsPerCast >= 2 {
			e.FilePath = c.ReadItemPascalString(base + 2)
		}
		if c.ItemsPerCast >= 3 {
			e.PreloadSettings = c.ReadItemU16(base + 3)
		}
		if c.ItemsPerCast >= 4 {
			sub := c.ItemBytes(base + 4)
			if sub != nil {
				e.MinMember, _ = sub.ReadU16()
				e.MaxMember, _ = sub.ReadU16()
				e.ID, _ = sub.ReadI32()
			}
		}
	}
	return nil
}

const castListHeaderSize = 12 // dataOffset(4) + unk0(2) + castCount(2) + itemsPerCast(2) + unk1(2)

// ItemSize computes the structured items (name/filePath/preload/id-range)
// from the entries; anything outside that range falls through to the raw
// pass-through (there shouldn't be any for this chunk, but the framework
// contract is uniform across list chunks).
func (c *CastListChunk) ItemSize(index uint16) int {
	if entry, field, ok := c.entryField(index); ok {
		switch field {
		case 1:
			if len(entry.Name) > 0 {
				return 1 + len(entry.Name)
			}
			return 0
		case 2:
			if len(entry.FilePath) > 0 {
				return 1 + len(entry.FilePath)
			}
			return 0
		case 3:
			return 2
		case 4:
			return 8
		}
	}
	return c.DefaultItemSize(index)
}

func (c *CastListChunk) WriteItem(s *stream.Stream, index uint16) {
	if entry, field, ok := c.entryField(index); ok {
		switch field {
		case 1:
			if len(entry.Name) > 0 {
				s.WritePascalString(entry.Name)
			}
			return
		case 2:
			if len(entry.FilePath) > 0 {
				s.WritePascalString(entry.FilePath)
			}
			return
		case 3:
			s.WriteU16(entry.PreloadSettings)
			return
		case 4:
			s.WriteU16(entry.MinMember)
			s.WriteU16(entry.MaxMember)
			s.WriteI32(entry.ID)
			return
		}
	}
	c.DefaultWriteItem(s, index)
}

// entryField maps an item index back to (entry, field-number) for fields
// 1-4 of each cast, matching the layout CastListChunk.ReadFrom used to
// populate Entries.
func (c *CastListChunk) entryField(index uint16) (*CastListEntry, int, bool) {
	if c.ItemsPerCast == 0 || index == 0 {
		return nil, 0, false
	}
	k := (index - 1) / c.ItemsPerCast
	field := int((index-1)%c.ItemsPerCast) + 1
	if int(k) >= len(c.Entries) || field > 4 {
		return nil, 0, false
	}
	return &c.Entries[k], field, true
}

func (c *CastListChunk) Size(owner Owner) int {
	return c.ListChunk.Size(c, castListHeaderSize)
}

func (c *CastListChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)
	s.WriteU32(uint32(castListHeaderSize))
	s.WriteU16(c.Unk0)
	s.WriteU16(c.CastCount)
	s.WriteU16(c.ItemsPerCast)
	s.WriteU16(c.Unk1)
	c.WriteOffsetTable(s, c)
	c.WriteItems(s, c)
	return nil
}
