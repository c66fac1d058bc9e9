package chunk

import "github.com/castkit/director/stream"

// Handler is one entry of a Script chunk's handler table: its fixed
// record (name/vector/line bookkeeping plus where its compiled bytecode
// lives) and that bytecode itself, kept opaque. Lingo execution is out of
// scope here; only round-trip preservation is required.
type Handler struct {
	NameID         int16
	VectorPos      uint16
	CompiledLen    uint32
	CompiledOffset uint32
	ArgumentCount  uint16
	VariableCount  uint16
	LineCount      uint32
	LineOffset     uint32

	CompiledData []byte

	Name string
}

func (h *Handler) readRecord(s *stream.Stream) error {
	var err error
	if h.NameID, err = s.ReadI16(); err != nil {
		return err
	}
	if h.VectorPos, err = s.ReadU16(); err != nil {
		return err
	}
	if h.CompiledLen, err = s.ReadU32(); err != nil {
		return err
	}
	if h.CompiledOffset, err = s.ReadU32(); err != nil {
		return err
	}
	if h.ArgumentCount, err = s.ReadU16(); err != nil {
		return err
	}
	if h.VariableCount, err = s.ReadU16(); err != nil {
		return err
	}
	if h.LineCount, err = s.ReadU32(); err != nil {
		return err
	}
	if h.LineOffset, err = s.ReadU32(); err != nil {
		return err
	}
	return nil
}

func (h *Handler) writeRecord(s *stream.Stream) {
	s.WriteI16(h.NameID)
	s.WriteU16(h.VectorPos)
	s.WriteU32(h.CompiledLen)
	s.WriteU32(h.CompiledOffset)
	s.WriteU16(h.ArgumentCount)
	s.WriteU16(h.VariableCount)
	s.WriteU32(h.LineCount)
	s.WriteU32(h.LineOffset)
}

func (h *Handler) readData(s *stream.Stream) error {
	if err := s.Seek(int(h.CompiledOffset)); err != nil {
		return err
	}
	data, err := s.CopyBytes(int(h.CompiledLen))
	if err != nil {
		return err
	}
	h.CompiledData = data
	return nil
}

// readNames resolves the handler's own name through the owning script's
// context, the same mechanism used for property/global names.
func (h *Handler) readNames(script *ScriptChunk) {
	h.Name = script.GetName(int(h.NameID))
}

// Literal is one entry of a Script chunk's literal pool: a type tag plus
// a type-dependent payload read in a second pass relative to
// literalsDataOffset.
type Literal struct {
	Type   uint32
	Offset uint32

	StringValue string
	IntValue    int32
	IsString    bool
	IsInt       bool
	RawValue    []byte
}

const (
	literalTypeString = 1
	literalTypeInt    = 4
)

func (l *Literal) readRecord(s *stream.Stream) error {
	var err error
	if l.Type, err = s.ReadU32(); err != nil {
		return err
	}
	if l.Offset, err = s.ReadU32(); err != nil {
		return err
	}
	return nil
}

func (l *Literal) writeRecord(s *stream.Stream) {
	s.WriteU32(l.Type)
	s.WriteU32(l.Offset)
}

// writeRemnant re-emits a captured byte range verbatim. If remnant wasn't
// captured at the expected length (a freshly-built chunk with no source
// bytes behind it), it falls back to n zero bytes.
func writeRemnant(s *stream.Stream, remnant []byte, n int) {
	if len(remnant) == n {
		s.WriteBytes(remnant)
		return
	}
	s.WriteBytes(make([]byte, n))
}

func (l *Literal) readValue(s *stream.Stream, dataOffset uint32) error {
	if err := s.Seek(int(dataOffset + l.Offset)); err != nil {
		return err
	}
	switch l.Type {
	case literalTypeString:
		n, err := s.ReadU32()
		if err != nil {
			return err
		}
		str, err := s.ReadString(int(n))
		if err != nil {
			return err
		}
		l.IsString = true
		l.StringValue = str
	case literalTypeInt:
		v, err := s.ReadI32()
		if err != nil {
			return err
		}
		l.IsInt = true
		l.IntValue = v
	default:
		raw, err := s.CopyBytes(4)
		if err != nil {
			return err
		}
		l.RawValue = raw
	}
	return nil
}

// ScriptChunk ("Lscr") is a compiled Lingo handler/property/global/
// literal table. Decompilation is out of scope; this models the header,
// tables and handler/literal records as round-trip-preserving structures.
type ScriptChunk struct {
	// LocalHeader is the chunk's own local 8-byte tag+length header,
	// which the Directory's slot reader leaves for Script to consume
	// itself rather than stripping (see Directory.rawStream). Preserved
	// verbatim rather than assumed zero.
	LocalHeader []byte

	TotalLength  uint32
	TotalLength2 uint32
	HeaderLength uint16
	ScriptNumber uint16

	// Remnant1 and Remnant2 are the undocumented byte ranges between
	// ScriptNumber and ScriptBehavior, and between ScriptBehavior and
	// HandlerVectorsCount. Their contents are unknown; they round-trip
	// verbatim rather than being assumed zero.
	Remnant1 []byte
	Remnant2 []byte

	ScriptBehavior uint32

	HandlerVectorsCount  uint16
	HandlerVectorsOffset uint32
	HandlerVectorsSize   uint32

	PropertiesCount  uint16
	PropertiesOffset uint32
	GlobalsCount     uint16
	GlobalsOffset    uint32

	HandlersCount  uint16
	HandlersOffset uint32

	LiteralsCount      uint16
	LiteralsOffset     uint32
	LiteralsDataCount  uint32
	LiteralsDataOffset uint32

	PropertyNameIDs []int16
	GlobalNameIDs   []int16

	PropertyNames []string
	GlobalNames   []string

	Handlers []*Handler
	Literals []*Literal

	Context *ScriptContextChunk
	Member  *CastMemberChunk
}

func (c *ScriptChunk) Tag() Tag { return TagScript }

func (c *ScriptChunk) readVarnamesTable(s *stream.Stream, count uint16, offset uint32) ([]int16, error) {
	if err := s.Seek(int(offset)); err != nil {
		return nil, err
	}
	ids := make([]int16, count)
	for i := range ids {
		v, err := s.ReadI16()
		if err != nil {
			return nil, err
		}
		ids[i] = v
	}
	return ids, nil
}

func (c *ScriptChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)

	var err error
	if c.LocalHeader, err = s.CopyBytes(8); err != nil {
		return err
	}
	if c.TotalLength, err = s.ReadU32(); err != nil {
		return err
	}
	if c.TotalLength2, err = s.ReadU32(); err != nil {
		return err
	}
	if c.HeaderLength, err = s.ReadU16(); err != nil {
		return err
	}
	if c.ScriptNumber, err = s.ReadU16(); err != nil {
		return err
	}

	if c.Remnant1, err = s.CopyBytes(38 - s.Pos()); err != nil {
		return err
	}
	if c.ScriptBehavior, err = s.ReadU32(); err != nil {
		return err
	}

	if c.Remnant2, err = s.CopyBytes(50 - s.Pos()); err != nil {
		return err
	}
	if c.HandlerVectorsCount, err = s.ReadU16(); err != nil {
		return err
	}
	if c.HandlerVectorsOffset, err = s.ReadU32(); err != nil {
		return err
	}
	if c.HandlerVectorsSize, err = s.ReadU32(); err != nil {
		return err
	}
	if c.PropertiesCount, err = s.ReadU16(); err != nil {
		return err
	}
	if c.PropertiesOffset, err = s.ReadU32(); err != nil {
		return err
	}
	if c.GlobalsCount, err = s.ReadU16(); err != nil {
		return err
	}
	if c.GlobalsOffset, err = s.ReadU32(); err != nil {
		return err
	}
	if c.HandlersCount, err = s.ReadU16(); err != nil {
		return err
	}
	if c.HandlersOffset, err = s.ReadU32(); err != nil {
		return err
	}
	if c.LiteralsCount, err = s.ReadU16(); err != nil {
		return err
	}
	if c.LiteralsOffset, err = s.ReadU32(); err != nil {
		return err
	}
	if c.LiteralsDataCount, err = s.ReadU32(); err != nil {
		return err
	}
	if c.LiteralsDataOffset, err = s.ReadU32(); err != nil {
		return err
	}

	if c.PropertyNameIDs, err = c.readVarnamesTable(s, c.PropertiesCount, c.PropertiesOffset); err != nil {
		return err
	}
	if c.GlobalNameIDs, err = c.readVarnamesTable(s, c.GlobalsCount, c.GlobalsOffset); err != nil {
		return err
	}

	if err := s.Seek(int(c.HandlersOffset)); err != nil {
		return err
	}
	c.Handlers = make([]*Handler, c.HandlersCount)
	for i := range c.Handlers {
		h := &Handler{}
		if err := h.readRecord(s); err != nil {
			return err
		}
		c.Handlers[i] = h
	}
	for _, h := range c.Handlers {
		if err := h.readData(s); err != nil {
			return err
		}
	}

	if err := s.Seek(int(c.LiteralsOffset)); err != nil {
		return err
	}
	c.Literals = make([]*Literal, c.LiteralsCount)
	for i := range c.Literals {
		l := &Literal{}
		if err := l.readRecord(s); err != nil {
			return err
		}
		c.Literals[i] = l
	}
	for _, l := range c.Literals {
		if err := l.readValue(s, c.LiteralsDataOffset); err != nil {
			owner.Warn("script %d: literal at offset %d: %v", c.ScriptNumber, l.Offset, err)
		}
	}
	return nil
}

func (c *ScriptChunk) Size(owner Owner) int { return int(c.TotalLength) }

func (c *ScriptChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)
	writeRemnant(s, c.LocalHeader, 8)
	s.WriteU32(c.TotalLength)
	s.WriteU32(c.TotalLength2)
	s.WriteU16(c.HeaderLength)
	s.WriteU16(c.ScriptNumber)
	writeRemnant(s, c.Remnant1, 38-int(s.Pos()))
	s.WriteU32(c.ScriptBehavior)
	writeRemnant(s, c.Remnant2, 50-int(s.Pos()))
	s.WriteU16(c.HandlerVectorsCount)
	s.WriteU32(c.HandlerVectorsOffset)
	s.WriteU32(c.HandlerVectorsSize)
	s.WriteU16(c.PropertiesCount)
	s.WriteU32(c.PropertiesOffset)
	s.WriteU16(c.GlobalsCount)
	s.WriteU32(c.GlobalsOffset)
	s.WriteU16(c.HandlersCount)
	s.WriteU32(c.HandlersOffset)
	s.WriteU16(c.LiteralsCount)
	s.WriteU32(c.LiteralsOffset)
	s.WriteU32(c.LiteralsDataCount)
	s.WriteU32(c.LiteralsDataOffset)

	if err := s.Seek(int(c.PropertiesOffset)); err != nil {
		return err
	}
	for _, id := range c.PropertyNameIDs {
		s.WriteI16(id)
	}
	if err := s.Seek(int(c.GlobalsOffset)); err != nil {
		return err
	}
	for _, id := range c.GlobalNameIDs {
		s.WriteI16(id)
	}

	if err := s.Seek(int(c.HandlersOffset)); err != nil {
		return err
	}
	for _, h := range c.Handlers {
		h.writeRecord(s)
	}
	for _, h := range c.Handlers {
		if err := s.Seek(int(h.CompiledOffset)); err != nil {
			return err
		}
		s.WriteBytes(h.CompiledData)
	}

	if err := s.Seek(int(c.LiteralsOffset)); err != nil {
		return err
	}
	for _, l := range c.Literals {
		l.writeRecord(s)
	}
	for _, l := range c.Literals {
		if err := s.Seek(int(c.LiteralsDataOffset + l.Offset)); err != nil {
			return err
		}
		switch {
		case l.IsString:
			s.WriteU32(uint32(len(l.StringValue)))
			s.WriteString(l.StringValue)
		case l.IsInt:
			s.WriteI32(l.IntValue)
		default:
			s.WriteBytes(l.RawValue)
		}
	}
	return nil
}

// GetName resolves nameID through the script's context, falling back to
// the context-less sentinel if no context has been bound yet.
func (c *ScriptChunk) GetName(id int) string {
	if c.Context == nil {
		return (&ScriptNamesChunk{}).GetName(id)
	}
	return c.Context.GetName(id)
}

// SetContext binds the script to its owning Script Context, resolving
// every property/global/handler name through it.
func (c *ScriptChunk) SetContext(ctx *ScriptContextChunk) {
	c.Context = ctx
	c.PropertyNames = make([]string, len(c.PropertyNameIDs))
	for i, id := range c.PropertyNameIDs {
		c.PropertyNames[i] = c.GetName(int(id))
	}
	c.GlobalNames = make([]string, len(c.GlobalNameIDs))
	for i, id := range c.GlobalNameIDs {
		c.GlobalNames[i] = c.GetName(int(id))
	}
	for _, h := range c.Handlers {
		h.readNames(c)
	}
}
