package chunk

import "github.com/castkit/director/stream"

// MapEntry is one slot record in the Memory Map: a tag, its byte offset
// and length within the container, flags, and the junk/free list link
// fields.
type MapEntry struct {
	FourCC  Tag
	Len     uint32
	Offset  uint32
	Flags   uint8
	Unused1 uint8
	Next    int32
}

func (e *MapEntry) read(s *stream.Stream) error {
	v, err := s.ReadU32()
	if err != nil {
		return err
	}
	e.FourCC = Tag(v)
	if e.Len, err = s.ReadU32(); err != nil {
		return err
	}
	if e.Offset, err = s.ReadU32(); err != nil {
		return err
	}
	flags, err := s.ReadU8()
	if err != nil {
		return err
	}
	e.Flags = flags
	unused1, err := s.ReadU8()
	if err != nil {
		return err
	}
	e.Unused1 = unused1
	next, err := s.ReadI32()
	if err != nil {
		return err
	}
	e.Next = next
	return nil
}

func (e *MapEntry) write(s *stream.Stream) {
	s.WriteU32(uint32(e.FourCC))
	s.WriteU32(e.Len)
	s.WriteU32(e.Offset)
	s.WriteU8(e.Flags)
	s.WriteU8(e.Unused1)
	s.WriteI32(e.Next)
}

// mapEntrySize is the on-disk size of one MapEntry: fourCC(4) + len(4) +
// offset(4) + flags(1) + unused1(1) + next(4).
const mapEntrySize = 18

// MemoryMapChunk ("mmap") enumerates every other chunk in the container
// by tag, offset and length.
type MemoryMapChunk struct {
	HeaderLength   uint16
	EntryLength    uint16
	ChunkCountMax  int32
	ChunkCountUsed int32
	JunkHead       int32
	JunkHead2      int32
	FreeHead       int32
	MapArray       []MapEntry
}

func (c *MemoryMapChunk) Tag() Tag { return TagMemoryMap }

func (c *MemoryMapChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	var err error
	if c.HeaderLength, err = s.ReadU16(); err != nil {
		return err
	}
	if c.EntryLength, err = s.ReadU16(); err != nil {
		return err
	}
	if c.ChunkCountMax, err = s.ReadI32(); err != nil {
		return err
	}
	if c.ChunkCountUsed, err = s.ReadI32(); err != nil {
		return err
	}
	if c.JunkHead, err = s.ReadI32(); err != nil {
		return err
	}
	if c.JunkHead2, err = s.ReadI32(); err != nil {
		return err
	}
	if c.FreeHead, err = s.ReadI32(); err != nil {
		return err
	}
	c.MapArray = make([]MapEntry, c.ChunkCountUsed)
	for i := range c.MapArray {
		if err := c.MapArray[i].read(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *MemoryMapChunk) Size(owner Owner) int {
	return int(c.HeaderLength) + int(c.ChunkCountMax)*int(c.EntryLength)
}

func (c *MemoryMapChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.WriteU16(c.HeaderLength)
	s.WriteU16(c.EntryLength)
	s.WriteI32(c.ChunkCountMax)
	s.WriteI32(c.ChunkCountUsed)
	s.WriteI32(c.JunkHead)
	s.WriteI32(c.JunkHead2)
	s.WriteI32(c.FreeHead)
	for i := range c.MapArray {
		c.MapArray[i].write(s)
	}
	return nil
}
