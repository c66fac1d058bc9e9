package chunk

import (
	"fmt"

	"github.com/castkit/director/stream"
)

// ScriptNamesChunk ("Lnam") is the flat string table every Script and
// Script Context in a cast resolves handler/property/global name-ids
// against.
type ScriptNamesChunk struct {
	Unknown0 int32
	Unknown1 int32
	Len1     uint32
	Len2     uint32

	NamesOffset uint16
	NamesCount  uint16

	Names []string
}

func (c *ScriptNamesChunk) Tag() Tag { return TagScriptNames }

func (c *ScriptNamesChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)

	var err error
	if c.Unknown0, err = s.ReadI32(); err != nil {
		return err
	}
	if c.Unknown1, err = s.ReadI32(); err != nil {
		return err
	}
	if c.Len1, err = s.ReadU32(); err != nil {
		return err
	}
	if c.Len2, err = s.ReadU32(); err != nil {
		return err
	}
	if c.NamesOffset, err = s.ReadU16(); err != nil {
		return err
	}
	if c.NamesCount, err = s.ReadU16(); err != nil {
		return err
	}

	if err := s.Seek(int(c.NamesOffset)); err != nil {
		return err
	}
	c.Names = make([]string, c.NamesCount)
	for i := range c.Names {
		name, err := s.ReadPascalString()
		if err != nil {
			return err
		}
		c.Names[i] = name
	}
	return nil
}

func (c *ScriptNamesChunk) Size(owner Owner) int {
	n := 20 // unknown0+unknown1+len1+len2+namesOffset+namesCount
	for _, name := range c.Names {
		n += 1 + len(name)
	}
	return n
}

func (c *ScriptNamesChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)
	s.WriteI32(c.Unknown0)
	s.WriteI32(c.Unknown1)
	s.WriteU32(c.Len1)
	s.WriteU32(c.Len2)
	s.WriteU16(c.NamesOffset)
	s.WriteU16(c.NamesCount)
	for _, name := range c.Names {
		s.WritePascalString(name)
	}
	return nil
}

// GetName resolves a name-id to its string, or a sentinel placeholder if
// id is out of range. Name resolution never fails; it degrades to a
// placeholder instead.
func (c *ScriptNamesChunk) GetName(id int) string {
	if id >= 0 && id < len(c.Names) {
		return c.Names[id]
	}
	return fmt.Sprintf("UNKNOWN_NAME_%d", id)
}
