package chunk

import (
	"fmt"

	"github.com/castkit/director/stream"
)

// ConfigChunk ("DRCF"/"VWCF") carries the movie-wide settings plus a
// checksum recomputed from most of those fields. len is the chunk's total
// byte size; remnants are whatever bytes lie between the last documented
// field and len, preserved verbatim for round-trip.
type ConfigChunk struct {
	tag Tag

	Len              uint16
	FileVersion      uint16
	MovieTop         int16
	MovieLeft        int16
	MovieBottom      int16
	MovieRight       int16
	MinMember        uint16
	MaxMember        uint16
	Field9           uint8
	Field10          uint8
	Field11          int16
	CommentFont      int16
	CommentSize      int16
	CommentStyle     uint16
	StageColor       int16
	BitDepth         int16
	Field17          uint8
	Field18          uint8
	Field19          int32
	DirectorVersion  int16
	Field21          int16
	Field22          int32
	Field23          int32
	Field24          int32
	Field25          uint8
	Field26          uint8
	FrameRate        int16
	Platform         int16
	Protection       int16
	Field29          int32
	Checksum         uint32
	Remnants         []byte
}

func (c *ConfigChunk) Tag() Tag { return c.tag }

func (c *ConfigChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)

	var err error
	readU16 := func() uint16 { var v uint16; if err == nil { v, err = s.ReadU16() }; return v }
	readI16 := func() int16 { var v int16; if err == nil { v, err = s.ReadI16() }; return v }
	readU8 := func() uint8 { var v uint8; if err == nil { v, err = s.ReadU8() }; return v }
	readI32 := func() int32 { var v int32; if err == nil { v, err = s.ReadI32() }; return v }

	/*  0 */ c.Len = readU16()
	/*  2 */ c.FileVersion = readU16()
	/*  4 */ c.MovieTop = readI16()
	/*  6 */ c.MovieLeft = readI16()
	/*  8 */ c.MovieBottom = readI16()
	/* 10 */ c.MovieRight = readI16()
	/* 12 */ c.MinMember = readU16()
	/* 14 */ c.MaxMember = readU16()
	/* 16 */ c.Field9 = readU8()
	/* 17 */ c.Field10 = readU8()
	/* 18 */ c.Field11 = readI16()
	/* 20 */ c.CommentFont = readI16()
	/* 22 */ c.CommentSize = readI16()
	/* 24 */ c.CommentStyle = readU16()
	/* 26 */ c.StageColor = readI16()
	/* 28 */ c.BitDepth = readI16()
	/* 30 */ c.Field17 = readU8()
	/* 31 */ c.Field18 = readU8()
	/* 32 */ c.Field19 = readI32()
	/* 36 */ c.DirectorVersion = readI16()
	/* 38 */ c.Field21 = readI16()
	/* 40 */ c.Field22 = readI32()
	/* 44 */ c.Field23 = readI32()
	/* 48 */ c.Field24 = readI32()
	/* 52 */ c.Field25 = readU8()
	/* 53 */ c.Field26 = readU8()
	/* 54 */ c.FrameRate = readI16()
	/* 56 */ c.Platform = readI16()
	/* 58 */ c.Protection = readI16()
	/* 60 */ c.Field29 = readI32()
	if err != nil {
		return err
	}

	if c.Checksum, err = s.ReadU32(); err != nil {
		return err
	}

	remnantLen := int(c.Len) - s.Pos()
	if remnantLen < 0 {
		remnantLen = 0
	}
	if c.Remnants, err = s.CopyBytes(remnantLen); err != nil {
		return err
	}

	if computed := c.ComputeChecksum(); computed != c.Checksum {
		owner.Warn("%s", fmt.Errorf("config %w: stored %d computed %d", ErrChecksumMismatch, c.Checksum, computed))
	}
	return nil
}

// Size is the chunk's declared total length.
func (c *ConfigChunk) Size(owner Owner) int { return int(c.Len) }

func (c *ConfigChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)
	c.Checksum = c.ComputeChecksum()

	s.WriteU16(c.Len)
	s.WriteU16(c.FileVersion)
	s.WriteI16(c.MovieTop)
	s.WriteI16(c.MovieLeft)
	s.WriteI16(c.MovieBottom)
	s.WriteI16(c.MovieRight)
	s.WriteU16(c.MinMember)
	s.WriteU16(c.MaxMember)
	s.WriteU8(c.Field9)
	s.WriteU8(c.Field10)
	s.WriteI16(c.Field11)
	s.WriteI16(c.CommentFont)
	s.WriteI16(c.CommentSize)
	s.WriteU16(c.CommentStyle)
	s.WriteI16(c.StageColor)
	s.WriteI16(c.BitDepth)
	s.WriteU8(c.Field17)
	s.WriteU8(c.Field18)
	s.WriteI32(c.Field19)
	s.WriteI16(c.DirectorVersion)
	s.WriteI16(c.Field21)
	s.WriteI32(c.Field22)
	s.WriteI32(c.Field23)
	s.WriteI32(c.Field24)
	s.WriteU8(c.Field25)
	s.WriteU8(c.Field26)
	s.WriteI16(c.FrameRate)
	s.WriteI16(c.Platform)
	s.WriteI16(c.Protection)
	s.WriteI32(c.Field29)
	s.WriteU32(c.Checksum)
	s.WriteBytes(c.Remnants)
	return nil
}

// ComputeChecksum re-derives the Config checksum using the exact
// operator/operand sequence the format expects. The arithmetic is done
// entirely in int32 so overflow wraps the way a 32-bit signed checksum
// should; division truncates toward zero, matching Go's own signed
// integer division semantics.
func (c *ConfigChunk) ComputeChecksum() uint32 {
	ver := HumanVersion(c.DirectorVersion)

	check := int32(c.Len) + 1
	check *= int32(c.FileVersion) + 2
	check /= int32(c.MovieTop) + 3
	check *= int32(c.MovieLeft) + 4
	check /= int32(c.MovieBottom) + 5
	check *= int32(c.MovieRight) + 6
	check -= int32(c.MinMember) + 7
	check *= int32(c.MaxMember) + 8
	check -= int32(c.Field9) + 9
	check -= int32(c.Field10) + 10
	check += int32(c.Field11) + 11
	check *= int32(c.CommentFont) + 12
	check += int32(c.CommentSize) + 13
	if ver < 800 {
		check *= int32((c.CommentStyle>>8)&0xFF) + 14
	} else {
		check *= int32(c.CommentStyle) + 14
	}
	if ver < 700 {
		check += int32(c.StageColor) + 15
	} else {
		check += int32(c.StageColor&0xFF) + 15
	}
	check += int32(c.BitDepth) + 16
	check += int32(c.Field17) + 17
	check *= int32(c.Field18) + 18
	check += c.Field19 + 19
	check *= int32(c.DirectorVersion) + 20
	check += int32(c.Field21) + 21
	check += c.Field22 + 22
	check += c.Field23 + 23
	check += c.Field24 + 24
	check *= int32(c.Field25) + 25
	check += int32(c.FrameRate) + 26
	check *= int32(c.Platform) + 27
	magicConst := uint32(0xFF450000)
	check *= int32(c.Protection)*0xE06 + int32(magicConst)
	check ^= int32(uint32(MakeTag('r', 'a', 'l', 'f')))
	return uint32(check)
}
