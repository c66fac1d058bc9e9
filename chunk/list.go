package chunk

import "github.com/castkit/director/stream"

// ItemCodec lets a concrete list chunk override how a particular item
// index is sized and written, while falling back to a raw byte
// pass-through for every index it doesn't understand.
type ItemCodec interface {
	// ItemSize reports the byte length WriteItem will emit for index.
	ItemSize(index uint16) int
	// WriteItem re-emits the item at index.
	WriteItem(s *stream.Stream, index uint16)
}

// ListChunk is the shared base for "offset-table list" containers
// (component C): a data offset, an offset table, and an items region
// addressed by that table. Concrete list chunks embed ListChunk and
// override ItemSize/WriteItem for the indices they give structured
// meaning to.
//
// Layout: dataOffset (u32); optional type-specific header bytes written
// by the embedding type between ReadHeader and ReadOffsetTable; at
// dataOffset, offsetTableLen (u16) then that many u32 offsets; then
// itemsLen (u32) followed by the item payloads. Item i occupies
// [offsetTable[i], offsetTable[i+1]) within the items region, the last
// item ending at itemsLen.
type ListChunk struct {
	DataOffset  uint32
	OffsetTable []uint32
	ItemsLen    uint32
	Items       [][]byte
	itemEndian  stream.Endian
}

// ReadHeader reads the base 4-byte dataOffset header. Embedding types
// with extra header fields call this first, then read their own fields,
// before calling ReadOffsetTable.
func (l *ListChunk) ReadHeader(s *stream.Stream) error {
	v, err := s.ReadU32()
	if err != nil {
		return err
	}
	l.DataOffset = v
	return nil
}

// ReadOffsetTable seeks to DataOffset and reads the offset table.
func (l *ListChunk) ReadOffsetTable(s *stream.Stream) error {
	if err := s.Seek(int(l.DataOffset)); err != nil {
		return err
	}
	n, err := s.ReadU16()
	if err != nil {
		return err
	}
	l.OffsetTable = make([]uint32, n)
	for i := range l.OffsetTable {
		v, err := s.ReadU32()
		if err != nil {
			return err
		}
		l.OffsetTable[i] = v
	}
	return nil
}

// ReadItems reads itemsLen then slices out each item's raw bytes
// according to the offset table.
func (l *ListChunk) ReadItems(s *stream.Stream) error {
	n, err := s.ReadU32()
	if err != nil {
		return err
	}
	l.ItemsLen = n
	l.itemEndian = s.Endian()

	listOffset := s.Pos()
	l.Items = make([][]byte, len(l.OffsetTable))
	for i := range l.OffsetTable {
		offset := l.OffsetTable[i]
		var next uint32
		if i == len(l.OffsetTable)-1 {
			next = l.ItemsLen
		} else {
			next = l.OffsetTable[i+1]
		}
		if err := s.Seek(listOffset + int(offset)); err != nil {
			return err
		}
		b, err := s.CopyBytes(int(next - offset))
		if err != nil {
			return err
		}
		l.Items[i] = b
	}
	return nil
}

// Read runs the full base read sequence: header, offset table, items.
// Embedding types with extra header fields should not call this directly;
// they call ReadHeader/their own fields/ReadOffsetTable/ReadItems in
// sequence instead.
func (l *ListChunk) Read(s *stream.Stream) error {
	if err := l.ReadHeader(s); err != nil {
		return err
	}
	if err := l.ReadOffsetTable(s); err != nil {
		return err
	}
	return l.ReadItems(s)
}

// ItemBytes returns a sub-stream over item index's raw bytes, or nil if
// index is out of range; out-of-range item access is tolerated, not an
// error.
func (l *ListChunk) ItemBytes(index uint16) *stream.Stream {
	if int(index) >= len(l.Items) {
		return nil
	}
	return stream.New(l.Items[index], l.itemEndian)
}

// ReadItemString returns item index's raw bytes as a string, or "" if
// out of range.
func (l *ListChunk) ReadItemString(index uint16) string {
	s := l.ItemBytes(index)
	if s == nil {
		return ""
	}
	str, _ := s.ReadString(s.Len())
	return str
}

// ReadItemPascalString returns item index decoded as a Pascal string, or
// "" if out of range or empty.
func (l *ListChunk) ReadItemPascalString(index uint16) string {
	s := l.ItemBytes(index)
	if s == nil || s.Len() == 0 {
		return ""
	}
	str, _ := s.ReadPascalString()
	return str
}

// ReadItemU16 returns item index decoded as a big/little-endian (per the
// list's item endianness) uint16, or 0 if out of range.
func (l *ListChunk) ReadItemU16(index uint16) uint16 {
	s := l.ItemBytes(index)
	if s == nil {
		return 0
	}
	v, _ := s.ReadU16()
	return v
}

// ReadItemU32 returns item index decoded as a uint32, or 0 if out of
// range.
func (l *ListChunk) ReadItemU32(index uint16) uint32 {
	s := l.ItemBytes(index)
	if s == nil {
		return 0
	}
	v, _ := s.ReadU32()
	return v
}

// UpdateOffsets recomputes the offset table from codec.ItemSize, called
// immediately before sizing/writing.
func (l *ListChunk) UpdateOffsets(codec ItemCodec) {
	offset := uint32(0)
	for i := range l.OffsetTable {
		l.OffsetTable[i] = offset
		offset += uint32(codec.ItemSize(uint16(i)))
	}
	l.ItemsLen = offset
}

// HeaderSize is the base header's fixed size (just dataOffset); embedding
// types with extra header fields pass their own header size to Size
// instead.
func (l *ListChunk) HeaderSize() int { return 4 }

// OffsetTableSize is the offset table's byte length once UpdateOffsets
// has run.
func (l *ListChunk) OffsetTableSize() int {
	return 2 + 4*len(l.OffsetTable)
}

// ItemsSize is the items region's byte length (the 4-byte itemsLen prefix
// plus the items themselves) once UpdateOffsets has run.
func (l *ListChunk) ItemsSize(codec ItemCodec) int {
	l.UpdateOffsets(codec)
	return 4 + int(l.ItemsLen)
}

// Size is headerSize + offsetTableSize + itemsSize, the default ListChunk
// footprint. headerSize is supplied by the caller, so embedding types
// with extra header fields pass their own fixed header length.
func (l *ListChunk) Size(codec ItemCodec, headerSize int) int {
	return headerSize + l.OffsetTableSize() + l.ItemsSize(codec)
}

// WriteHeader writes the base 4-byte dataOffset, recomputed as headerSize
// (the base list layout always places the offset table immediately after
// the header).
func (l *ListChunk) WriteHeader(s *stream.Stream, headerSize int) {
	s.WriteU32(uint32(headerSize))
}

// WriteOffsetTable recomputes offsets from codec and writes them.
func (l *ListChunk) WriteOffsetTable(s *stream.Stream, codec ItemCodec) {
	l.UpdateOffsets(codec)
	s.WriteU16(uint16(len(l.OffsetTable)))
	for _, off := range l.OffsetTable {
		s.WriteU32(off)
	}
}

// WriteItems writes itemsLen then delegates each item to codec.WriteItem.
func (l *ListChunk) WriteItems(s *stream.Stream, codec ItemCodec) {
	s.WriteU32(l.ItemsLen)
	for i := range l.OffsetTable {
		codec.WriteItem(s, uint16(i))
	}
}

// DefaultItemSize is the pass-through ItemSize for an index the
// embedding type doesn't recognize: the raw item's original length.
func (l *ListChunk) DefaultItemSize(index uint16) int {
	if int(index) >= len(l.Items) {
		return 0
	}
	return len(l.Items[index])
}

// DefaultWriteItem is the pass-through WriteItem for an index the
// embedding type doesn't recognize: the raw item's original bytes,
// verbatim.
func (l *ListChunk) DefaultWriteItem(s *stream.Stream, index uint16) {
	if int(index) < len(l.Items) {
		s.WriteBytes(l.Items[index])
	}
}
