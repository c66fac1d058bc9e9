package stream

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadPrimitivesBigEndian(t *testing.T) {
	s := New([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, BigEndian)

	if v, err := s.ReadU8(); err != nil || v != 0x01 {
		t.Fatalf("ReadU8: %v %v", v, err)
	}
	if v, err := s.ReadU16(); err != nil || v != 0x0203 {
		t.Fatalf("ReadU16: %v %v", v, err)
	}
	if v, err := s.ReadU16(); err != nil || v != 0x0405 {
		t.Fatalf("ReadU16: %v %v", v, err)
	}
}

func TestReadPrimitivesLittleEndian(t *testing.T) {
	s := New([]byte{0x01, 0x02, 0x03, 0x04}, LittleEndian)
	if v, err := s.ReadU32(); err != nil || v != 0x04030201 {
		t.Fatalf("ReadU32: %v %v", v, err)
	}
}

func TestEndOfStream(t *testing.T) {
	s := New([]byte{0x01}, BigEndian)
	if _, err := s.ReadU16(); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("expected ErrEndOfStream, got %v", err)
	}
}

func TestPascalString(t *testing.T) {
	s := New([]byte{3, 'f', 'o', 'o'}, BigEndian)
	str, err := s.ReadPascalString()
	if err != nil {
		t.Fatal(err)
	}
	if str != "foo" {
		t.Fatalf("got %q", str)
	}
}

func TestSubStreamIndependentCursor(t *testing.T) {
	s := New([]byte{1, 2, 3, 4, 5}, BigEndian)
	if _, err := s.ReadU8(); err != nil {
		t.Fatal(err)
	}
	sub, err := s.SubStream(2)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Pos() != 0 {
		t.Fatalf("expected sub-stream to start at 0, got %d", sub.Pos())
	}
	if v, _ := sub.ReadU8(); v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
	// parent cursor has advanced past the sub-stream's region
	if v, err := s.ReadU8(); err != nil || v != 4 {
		t.Fatalf("expected 4, got %v %v", v, err)
	}
}

func TestSeekAndEOF(t *testing.T) {
	s := New([]byte{1, 2, 3}, BigEndian)
	if s.EOF() {
		t.Fatal("should not be EOF yet")
	}
	if err := s.Seek(3); err != nil {
		t.Fatal(err)
	}
	if !s.EOF() {
		t.Fatal("should be EOF")
	}
	if err := s.Seek(-1); err == nil {
		t.Fatal("expected error on negative seek")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	w := NewWriter(BigEndian)
	w.WriteU16(0xABCD)
	w.WritePascalString("hi")
	w.WriteI32(-1)

	r := New(w.Bytes(), BigEndian)
	if v, _ := r.ReadU16(); v != 0xABCD {
		t.Fatalf("got %x", v)
	}
	if str, _ := r.ReadPascalString(); str != "hi" {
		t.Fatalf("got %q", str)
	}
	if v, _ := r.ReadI32(); v != -1 {
		t.Fatalf("got %d", v)
	}
}

func TestCopyBytesIsIndependent(t *testing.T) {
	buf := []byte{1, 2, 3}
	s := New(buf, BigEndian)
	cp, err := s.CopyBytes(3)
	if err != nil {
		t.Fatal(err)
	}
	cp[0] = 0xFF
	if bytes.Equal(cp, buf) {
		t.Fatal("CopyBytes should not alias the source buffer")
	}
}
