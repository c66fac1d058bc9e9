package chunk

import "github.com/castkit/director/stream"

// InitialMapChunk ("imap") is a fixed 24-byte record pointing at the
// Memory Map. It is always the first chunk located after the container's
// 12-byte wrapper.
type InitialMapChunk struct {
	One        uint32
	MMapOffset uint32
	Version    uint32
	Unused1    uint32
	Unused2    uint32
	Unused3    uint32
}

func (c *InitialMapChunk) Tag() Tag { return TagInitialMap }

func (c *InitialMapChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	var err error
	if c.One, err = s.ReadU32(); err != nil {
		return err
	}
	if c.MMapOffset, err = s.ReadU32(); err != nil {
		return err
	}
	if c.Version, err = s.ReadU32(); err != nil {
		return err
	}
	if c.Unused1, err = s.ReadU32(); err != nil {
		return err
	}
	if c.Unused2, err = s.ReadU32(); err != nil {
		return err
	}
	if c.Unused3, err = s.ReadU32(); err != nil {
		return err
	}
	return nil
}

// Size is always exactly 24 bytes.
func (c *InitialMapChunk) Size(owner Owner) int { return 24 }

func (c *InitialMapChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.WriteU32(c.One)
	s.WriteU32(c.MMapOffset)
	s.WriteU32(c.Version)
	s.WriteU32(c.Unused1)
	s.WriteU32(c.Unused2)
	s.WriteU32(c.Unused3)
	return nil
}
