// Package director implements the top-level loader for a Shockwave/
// Director movie's chunked binary container: the Directory parses the
// container header and Memory Map, lazily materializes individual chunks
// by (tag, slot) on demand, and resolves the cross-references between
// cast members, scripts and script contexts.
package director

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/castkit/director/cache"
	"github.com/castkit/director/chunk"
	"github.com/castkit/director/stream"
)

var (
	tagRIFX = chunk.MakeTag('R', 'I', 'F', 'X')
	tagXFIR = chunk.MakeTag('X', 'F', 'I', 'R')
)

type slotEntry struct {
	tag    chunk.Tag
	offset uint32
	length uint32
}

// Directory is the top-level owner of every chunk decoded from one
// container's bytes. It implements chunk.Owner so individual chunk codecs
// can resolve cross-references and gate their layout on the movie's
// version without importing this package.
type Directory struct {
	buf    []byte
	endian stream.Endian

	slots      []slotEntry
	chunkCache map[chunk.Tag]map[int32]chunk.Chunk

	InitialMap *chunk.InitialMapChunk
	MemoryMap  *chunk.MemoryMapChunk
	Config     *chunk.ConfigChunk
	KeyTable   *chunk.KeyTableChunk
	CastList   *chunk.CastListChunk
	Casts      []*chunk.CastChunk

	report *LoadReport
}

// Load parses raw container bytes end to end: header, Initial Map, Memory
// Map, Config, Key Table, Cast List, then every cast's members and their
// script bindings.
func Load(raw []byte) (*Directory, *LoadReport, error) {
	d, err := newDirectoryFromContainer(raw)
	if err != nil {
		return nil, d.report, err
	}

	if err := d.materializeConfig(); err != nil {
		return nil, d.report, err
	}
	if err := d.materializeKeyTable(); err != nil {
		return nil, d.report, err
	}
	if err := d.materializeCastList(); err != nil {
		return nil, d.report, err
	}
	if err := d.populateCasts(); err != nil {
		return nil, d.report, err
	}

	return d, d.report, nil
}

// LoadWithCache behaves exactly like Load, except that when store is
// non-nil it first looks up raw's content hash in the snapshot cache: a
// hit reconstructs the slot index directly, skipping the container header
// parse and the Memory Map walk, then proceeds through the same
// materialize-and-cross-resolve pipeline Load uses. A miss runs a normal
// Load and stores the resulting slot index for next time.
// store may be nil, in which case this is identical to Load.
func LoadWithCache(raw []byte, store *cache.Store) (*Directory, *LoadReport, error) {
	if store == nil {
		return Load(raw)
	}

	snap, hit, err := store.Get(raw)
	if err != nil {
		return nil, nil, err
	}

	var d *Directory
	if hit {
		d = &Directory{
			buf:        raw,
			endian:     stream.Endian(snap.Endian),
			chunkCache: make(map[chunk.Tag]map[int32]chunk.Chunk),
			report:     newLoadReport(),
		}
		d.slots = make([]slotEntry, len(snap.Slots))
		for i, sr := range snap.Slots {
			d.slots[i] = slotEntry{tag: chunk.Tag(sr.Tag), offset: sr.Offset, length: sr.Length}
		}
	} else {
		d, err = newDirectoryFromContainer(raw)
		if err != nil {
			return nil, d.report, err
		}
		if err := store.Put(raw, d.snapshot()); err != nil {
			return nil, d.report, err
		}
	}

	if err := d.materializeConfig(); err != nil {
		return nil, d.report, err
	}
	if err := d.materializeKeyTable(); err != nil {
		return nil, d.report, err
	}
	if err := d.materializeCastList(); err != nil {
		return nil, d.report, err
	}
	if err := d.populateCasts(); err != nil {
		return nil, d.report, err
	}
	return d, d.report, nil
}

// newDirectoryFromContainer runs the container-parsing steps Load and a
// cache-miss LoadWithCache share: header, Initial Map, Memory Map, slot
// index.
func newDirectoryFromContainer(raw []byte) (*Directory, error) {
	d := &Directory{
		buf:        raw,
		chunkCache: make(map[chunk.Tag]map[int32]chunk.Chunk),
		report:     newLoadReport(),
	}
	if err := d.readHeader(); err != nil {
		return d, err
	}
	if err := d.readInitialMap(); err != nil {
		return d, err
	}
	if err := d.readMemoryMap(); err != nil {
		return d, err
	}
	d.buildSlots()
	return d, nil
}

// snapshot captures the slot index for LoadWithCache to store.
func (d *Directory) snapshot() *cache.Snapshot {
	snap := &cache.Snapshot{Endian: uint8(d.endian), Slots: make([]cache.SlotRecord, len(d.slots))}
	for i, s := range d.slots {
		snap.Slots[i] = cache.SlotRecord{Tag: uint32(s.tag), Offset: s.offset, Length: s.length}
	}
	return snap
}

// readHeader consumes the 12-byte wrapper: tag, size, tag. Endianness is
// inferred from the first tag's spelling: the reversed spelling ("XFIR")
// means the container is little-endian.
func (d *Directory) readHeader() error {
	if len(d.buf) < 12 {
		return fmt.Errorf("director: container too short for header: %d bytes", len(d.buf))
	}
	rawTag := chunk.Tag(binary.BigEndian.Uint32(d.buf[0:4]))
	switch rawTag {
	case tagRIFX:
		d.endian = stream.BigEndian
	case tagXFIR:
		d.endian = stream.LittleEndian
	default:
		d.endian = stream.BigEndian
		d.report.warn(WarningUnknownTag, rawTag, 0, "unrecognized container wrapper tag %s, assuming big-endian", rawTag)
	}
	return nil
}

// readInitialMap decodes the fixed Initial Map chunk immediately after the
// 12-byte header, at absolute offset 12.
func (d *Directory) readInitialMap() error {
	s, err := d.chunkStream(12, chunk.TagInitialMap)
	if err != nil {
		return err
	}
	m := &chunk.InitialMapChunk{}
	if err := m.ReadFrom(s, d); err != nil {
		return err
	}
	d.InitialMap = m
	return nil
}

// readMemoryMap decodes the Memory Map at the Initial Map's mmapOffset.
func (d *Directory) readMemoryMap() error {
	s, err := d.chunkStream(int(d.InitialMap.MMapOffset), chunk.TagMemoryMap)
	if err != nil {
		return err
	}
	m := &chunk.MemoryMapChunk{}
	if err := m.ReadFrom(s, d); err != nil {
		return err
	}
	d.MemoryMap = m
	return nil
}

// chunkStream slices out the chunk found at a known absolute file offset,
// verifying its local 8-byte tag/length header matches want, and returns a
// stream over its payload, skipping that local header. Every chunk type
// except Script expects to be handed exactly its payload; Script skips the
// redundant header itself.
func (d *Directory) chunkStream(offset int, want chunk.Tag) (*stream.Stream, error) {
	if offset < 0 || offset+8 > len(d.buf) {
		return nil, fmt.Errorf("director: chunk header at %d out of bounds", offset)
	}
	header := stream.New(d.buf[offset:offset+8], d.endian)
	gotTag, err := header.ReadU32()
	if err != nil {
		return nil, err
	}
	length, err := header.ReadU32()
	if err != nil {
		return nil, err
	}
	if chunk.Tag(gotTag) != want {
		return nil, fmt.Errorf("%w: expected %s at offset %d, found %s", chunk.ErrUnresolvedReference, want, offset, chunk.Tag(gotTag))
	}
	end := offset + 8 + int(length)
	if end > len(d.buf) {
		end = len(d.buf)
	}
	return d.rawStream(want, offset, end), nil
}

// rawStream builds a stream over a chunk's body given its full extent
// (including the local 8-byte header), stripping that header for every
// tag except Script, which re-reads it itself.
func (d *Directory) rawStream(tag chunk.Tag, start, end int) *stream.Stream {
	if tag == chunk.TagScript {
		return stream.New(d.buf[start:end], d.endian)
	}
	bodyStart := start + 8
	if bodyStart > end {
		bodyStart = end
	}
	return stream.New(d.buf[bodyStart:end], d.endian)
}

// buildSlots indexes the Memory Map's entries by slot id (the entry's
// position in MapArray) for ChunkExists/GetChunk lookups.
func (d *Directory) buildSlots() {
	d.slots = make([]slotEntry, len(d.MemoryMap.MapArray))
	for i, e := range d.MemoryMap.MapArray {
		d.slots[i] = slotEntry{tag: e.FourCC, offset: e.Offset, length: e.Len}
	}
}

func (d *Directory) findSlot(tag chunk.Tag) (int32, bool) {
	for i, s := range d.slots {
		if s.tag == tag || (chunk.IsConfigTag(tag) && chunk.IsConfigTag(s.tag)) {
			return int32(i), true
		}
	}
	return 0, false
}

func (d *Directory) materializeConfig() error {
	slotID, ok := d.findSlot(chunk.TagConfigD)
	if !ok {
		slotID, ok = d.findSlot(chunk.TagConfigV)
	}
	if !ok {
		return fmt.Errorf("director: no Config chunk found")
	}
	slot := d.slots[slotID]
	ch, err := d.GetChunk(slot.tag, slotID)
	if err != nil {
		return err
	}
	d.Config = ch.(*chunk.ConfigChunk)
	return nil
}

func (d *Directory) materializeKeyTable() error {
	slotID, ok := d.findSlot(chunk.TagKeyTable)
	if !ok {
		return fmt.Errorf("director: no Key Table chunk found")
	}
	ch, err := d.GetChunk(chunk.TagKeyTable, slotID)
	if err != nil {
		return err
	}
	d.KeyTable = ch.(*chunk.KeyTableChunk)
	return nil
}

func (d *Directory) materializeCastList() error {
	slotID, ok := d.findSlot(chunk.TagCastList)
	if !ok {
		return fmt.Errorf("director: no Cast List chunk found")
	}
	ch, err := d.GetChunk(chunk.TagCastList, slotID)
	if err != nil {
		return err
	}
	d.CastList = ch.(*chunk.CastListChunk)
	return nil
}

// populateCasts resolves each Cast List entry's CAS* chunk and populates
// it, binding cast members to their cast ids and scripts.
func (d *Directory) populateCasts() error {
	for _, entry := range d.CastList.Entries {
		if entry.ID == 0 && entry.MinMember == 0 && entry.MaxMember == 0 {
			continue
		}
		ch, err := d.GetChunk(chunk.TagCast, entry.ID)
		if err != nil {
			d.Warn("cast list entry %q: cast slot %d: %v", entry.Name, entry.ID, err)
			continue
		}
		cast, ok := ch.(*chunk.CastChunk)
		if !ok {
			continue
		}
		if err := cast.Populate(entry.Name, entry.ID, entry.MinMember, d.KeyTable, d); err != nil {
			return err
		}
		d.Casts = append(d.Casts, cast)
	}
	return nil
}

// Version implements chunk.Owner.
func (d *Directory) Version() int {
	if d.Config == nil {
		return 0
	}
	return chunk.HumanVersion(d.Config.DirectorVersion)
}

// ChunkExists implements chunk.Owner.
func (d *Directory) ChunkExists(tag chunk.Tag, slotID int32) bool {
	if slotID < 0 || int(slotID) >= len(d.slots) {
		return false
	}
	s := d.slots[slotID]
	return s.tag == tag || (chunk.IsConfigTag(tag) && chunk.IsConfigTag(s.tag)) || (chunk.IsScriptContextTag(tag) && chunk.IsScriptContextTag(s.tag))
}

// GetChunk implements chunk.Owner: materializes a chunk on first request,
// caching it by (tag, slotID) thereafter so repeated lookups of the same
// slot return the identical pointer.
func (d *Directory) GetChunk(tag chunk.Tag, slotID int32) (chunk.Chunk, error) {
	if bySlot, ok := d.chunkCache[tag]; ok {
		if c, ok := bySlot[slotID]; ok {
			return c, nil
		}
	}
	if !d.ChunkExists(tag, slotID) {
		return nil, fmt.Errorf("%w: tag=%s slot=%d", chunk.ErrUnresolvedReference, tag, slotID)
	}
	s := d.slots[slotID]

	c, registered := chunk.New(tag)
	if !registered {
		d.Warn("%s", fmt.Errorf("%w: %s at slot %d", chunk.ErrUnknownTag, tag, slotID))
	}

	cs := d.rawStream(s.tag, int(s.offset), int(s.offset)+8+int(s.length))
	if err := c.ReadFrom(cs, d); err != nil {
		return nil, fmt.Errorf("director: slot %d (%s): %w", slotID, tag, err)
	}

	if d.chunkCache[tag] == nil {
		d.chunkCache[tag] = make(map[int32]chunk.Chunk)
	}
	d.chunkCache[tag][slotID] = c
	return c, nil
}

// Warn implements chunk.Owner: classifies the diagnostic by its message
// content (the Owner interface only carries a format string, not a
// structured kind) and appends it to the current load's report.
func (d *Directory) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	kind := WarningUnknownTag
	switch {
	case strings.Contains(msg, "checksum"):
		kind = WarningChecksumMismatch
	case strings.Contains(msg, "unknown tag"):
		kind = WarningUnknownTag
	case strings.Contains(msg, "unresolved") || strings.Contains(msg, "section") || strings.Contains(msg, "slot"):
		kind = WarningUnresolvedReference
	case strings.Contains(msg, "NAME_") || strings.Contains(msg, "name"):
		kind = WarningNameOutOfRange
	}
	d.report.warn(kind, 0, 0, "%s", msg)
}
