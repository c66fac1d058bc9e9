// Package stream implements an endian-aware, random-access cursor over a
// byte buffer, used by every chunk codec in chunk/ to read and write the
// fixed and variable-length records that make up a Director movie file.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Endian selects the byte order used for multi-byte primitive reads and
// writes. Unlike encoding/binary's ByteOrder, it is a property of the
// Stream instance and can be changed mid-stream: the container's chunks
// are read with whatever endianness the Directory infers from the file
// header, but script-related chunks are always big-endian regardless
// (each of those codecs calls SetEndian(BigEndian) in its ReadFrom).
type Endian uint8

const (
	BigEndian Endian = iota
	LittleEndian
)

func (e Endian) order() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ErrEndOfStream is returned whenever a read would consume more bytes than
// remain in the buffer.
var ErrEndOfStream = errors.New("stream: end of stream")

// Stream is a mutable cursor over a byte buffer. The zero value is not
// usable; construct one with New.
type Stream struct {
	buf    []byte
	pos    int
	endian Endian
}

// New wraps buf in a Stream positioned at offset 0 with the given
// endianness.
func New(buf []byte, endian Endian) *Stream {
	return &Stream{buf: buf, endian: endian}
}

// Bytes returns the full backing buffer, independent of the current
// position.
func (s *Stream) Bytes() []byte { return s.buf }

// Len reports the total length of the backing buffer.
func (s *Stream) Len() int { return len(s.buf) }

// Pos reports the current cursor position.
func (s *Stream) Pos() int { return s.pos }

// EOF reports whether the cursor has reached the end of the buffer.
func (s *Stream) EOF() bool { return s.pos >= len(s.buf) }

// Endian reports the stream's current byte order.
func (s *Stream) Endian() Endian { return s.endian }

// SetEndian changes the stream's byte order for subsequent primitive
// reads/writes. It does not affect bytes already consumed.
func (s *Stream) SetEndian(e Endian) { s.endian = e }

// Seek moves the cursor to an absolute position. Seeking past the end of
// the buffer is permitted (EOF will then report true); seeking to a
// negative position is an error.
func (s *Stream) Seek(pos int) error {
	if pos < 0 {
		return fmt.Errorf("stream: negative seek %d", pos)
	}
	s.pos = pos
	return nil
}

func (s *Stream) require(n int) error {
	if s.pos+n > len(s.buf) || n < 0 {
		return fmt.Errorf("%w: need %d bytes at %d, have %d", ErrEndOfStream, n, s.pos, len(s.buf))
	}
	return nil
}

// ReadU8 reads an unsigned 8-bit integer and advances the cursor.
func (s *Stream) ReadU8() (uint8, error) {
	if err := s.require(1); err != nil {
		return 0, err
	}
	v := s.buf[s.pos]
	s.pos++
	return v, nil
}

// ReadI8 reads a signed 8-bit integer and advances the cursor.
func (s *Stream) ReadI8() (int8, error) {
	v, err := s.ReadU8()
	return int8(v), err
}

// ReadU16 reads an unsigned 16-bit integer in the stream's current
// endianness and advances the cursor.
func (s *Stream) ReadU16() (uint16, error) {
	if err := s.require(2); err != nil {
		return 0, err
	}
	v := s.endian.order().Uint16(s.buf[s.pos:])
	s.pos += 2
	return v, nil
}

// ReadI16 reads a signed 16-bit integer and advances the cursor.
func (s *Stream) ReadI16() (int16, error) {
	v, err := s.ReadU16()
	return int16(v), err
}

// ReadU32 reads an unsigned 32-bit integer and advances the cursor.
func (s *Stream) ReadU32() (uint32, error) {
	if err := s.require(4); err != nil {
		return 0, err
	}
	v := s.endian.order().Uint32(s.buf[s.pos:])
	s.pos += 4
	return v, nil
}

// ReadI32 reads a signed 32-bit integer and advances the cursor.
func (s *Stream) ReadI32() (int32, error) {
	v, err := s.ReadU32()
	return int32(v), err
}

// ReadString reads exactly n bytes as an opaque byte string. The bytes are
// not validated as UTF-8 and are stored as-is.
func (s *Stream) ReadString(n int) (string, error) {
	b, err := s.CopyBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadPascalString reads a one-byte length prefix followed by that many
// bytes.
func (s *Stream) ReadPascalString() (string, error) {
	n, err := s.ReadU8()
	if err != nil {
		return "", err
	}
	return s.ReadString(int(n))
}

// CopyBytes returns a deep copy of the next n bytes and advances the
// cursor.
func (s *Stream) CopyBytes(n int) ([]byte, error) {
	if err := s.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, s.buf[s.pos:s.pos+n])
	s.pos += n
	return out, nil
}

// SubStream returns an independent cursor over the next n bytes, sharing
// this stream's endianness and advancing this stream's position past
// them. Writes through the returned Stream mutate the shared backing
// array but never this stream's own cursor.
func (s *Stream) SubStream(n int) (*Stream, error) {
	if err := s.require(n); err != nil {
		return nil, err
	}
	sub := &Stream{buf: s.buf[s.pos : s.pos+n : s.pos+n], endian: s.endian}
	s.pos += n
	return sub, nil
}

// WriteU8 writes an unsigned 8-bit integer, growing the buffer if needed.
func (s *Stream) WriteU8(v uint8) {
	s.ensure(1)
	s.buf[s.pos] = v
	s.pos++
}

// WriteI8 writes a signed 8-bit integer.
func (s *Stream) WriteI8(v int8) { s.WriteU8(uint8(v)) }

// WriteU16 writes an unsigned 16-bit integer in the stream's current
// endianness.
func (s *Stream) WriteU16(v uint16) {
	s.ensure(2)
	s.endian.order().PutUint16(s.buf[s.pos:], v)
	s.pos += 2
}

// WriteI16 writes a signed 16-bit integer.
func (s *Stream) WriteI16(v int16) { s.WriteU16(uint16(v)) }

// WriteU32 writes an unsigned 32-bit integer in the stream's current
// endianness.
func (s *Stream) WriteU32(v uint32) {
	s.ensure(4)
	s.endian.order().PutUint32(s.buf[s.pos:], v)
	s.pos += 4
}

// WriteI32 writes a signed 32-bit integer.
func (s *Stream) WriteI32(v int32) { s.WriteU32(uint32(v)) }

// WriteString writes n bytes verbatim with no length prefix.
func (s *Stream) WriteString(str string) {
	s.WriteBytes([]byte(str))
}

// WritePascalString writes a one-byte length prefix followed by the
// string's bytes. The caller is responsible for ensuring the string is
// shorter than 256 bytes.
func (s *Stream) WritePascalString(str string) {
	s.WriteU8(uint8(len(str)))
	s.WriteString(str)
}

// WriteBytes writes b verbatim.
func (s *Stream) WriteBytes(b []byte) {
	s.ensure(len(b))
	copy(s.buf[s.pos:], b)
	s.pos += len(b)
}

// ensure grows the backing buffer so that n more bytes can be written at
// the current position.
func (s *Stream) ensure(n int) {
	need := s.pos + n
	if need <= len(s.buf) {
		return
	}
	grown := make([]byte, need)
	copy(grown, s.buf)
	s.buf = grown
}

// NewWriter returns a Stream sized to 0 bytes, ready to grow via the
// Write* methods, the mirror-image of New for serialization.
func NewWriter(endian Endian) *Stream {
	return &Stream{endian: endian}
}
