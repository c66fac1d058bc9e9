package chunk

import "github.com/castkit/director/stream"

// MemberType enumerates the kind of asset a cast member wraps (bitmap,
// text, script, etc). The concrete decode of SpecificData per type is out
// of scope; it is preserved as opaque bytes regardless of type.
type MemberType uint32

// CastMemberChunk ("CASt") is one entry in a cast: a type tag, the
// embedded CastInfoChunk, and a type-specific data blob kept opaque.
type CastMemberChunk struct {
	ID int32

	Type            MemberType
	InfoLen         uint32
	SpecificDataLen uint32

	HasFlags1 bool
	Flags1    uint8

	Info          *CastInfoChunk
	SpecificData  []byte

	Script *ScriptChunk
}

func (c *CastMemberChunk) Tag() Tag { return TagCastMember }

// ReadFrom branches on the movie version: from version 500 onward the
// type/infoLen/specificDataLen header is three big uint32 fields with
// no flags byte; before 500 the header is narrower and folds the member
// type (and, if any bytes remain, a flags1 byte) into the front of what
// would otherwise be specific data.
func (c *CastMemberChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)

	if owner.Version() >= 500 {
		t, err := s.ReadU32()
		if err != nil {
			return err
		}
		c.Type = MemberType(t)
		if c.InfoLen, err = s.ReadU32(); err != nil {
			return err
		}
		if c.SpecificDataLen, err = s.ReadU32(); err != nil {
			return err
		}

		infoStream, err := s.SubStream(int(c.InfoLen))
		if err != nil {
			return err
		}
		info, err := ReadCastInfo(infoStream)
		if err != nil {
			return err
		}
		c.Info = info

		c.HasFlags1 = false
		data, err := s.CopyBytes(int(c.SpecificDataLen))
		if err != nil {
			return err
		}
		c.SpecificData = data
		return nil
	}

	specificDataLen16, err := s.ReadU16()
	if err != nil {
		return err
	}
	c.SpecificDataLen = uint32(specificDataLen16)
	if c.InfoLen, err = s.ReadU32(); err != nil {
		return err
	}

	left := int(c.SpecificDataLen)
	t, err := s.ReadU8()
	if err != nil {
		return err
	}
	c.Type = MemberType(t)
	left--

	if left > 0 {
		c.HasFlags1 = true
		if c.Flags1, err = s.ReadU8(); err != nil {
			return err
		}
		left--
	} else {
		c.HasFlags1 = false
	}

	data, err := s.CopyBytes(left)
	if err != nil {
		return err
	}
	c.SpecificData = data

	infoStream, err := s.SubStream(int(c.InfoLen))
	if err != nil {
		return err
	}
	info, err := ReadCastInfo(infoStream)
	if err != nil {
		return err
	}
	c.Info = info
	return nil
}

// Size re-derives infoLen/specificDataLen from the current Info/
// SpecificData before reporting the chunk's total length, mirroring the
// original's size() which always recomputes both before write.
func (c *CastMemberChunk) Size(owner Owner) int {
	c.InfoLen = uint32(c.Info.Size())
	c.SpecificDataLen = uint32(len(c.SpecificData))

	if owner.Version() >= 500 {
		return 4 + 4 + 4 + int(c.InfoLen) + int(c.SpecificDataLen)
	}

	specificDataLen := c.SpecificDataLen + 1
	if c.HasFlags1 {
		specificDataLen++
	}
	return 2 + 4 + int(specificDataLen) + int(c.InfoLen)
}

func (c *CastMemberChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)
	c.Size(owner) // refresh InfoLen/SpecificDataLen

	if owner.Version() >= 500 {
		s.WriteU32(uint32(c.Type))
		s.WriteU32(c.InfoLen)
		s.WriteU32(c.SpecificDataLen)
		c.Info.WriteTo(s)
		s.WriteBytes(c.SpecificData)
		return nil
	}

	specificDataLen := c.SpecificDataLen + 1
	if c.HasFlags1 {
		specificDataLen++
	}
	s.WriteU16(uint16(specificDataLen))
	s.WriteU32(c.InfoLen)
	s.WriteU8(uint8(c.Type))
	if c.HasFlags1 {
		s.WriteU8(c.Flags1)
	}
	s.WriteBytes(c.SpecificData)
	c.Info.WriteTo(s)
	return nil
}
