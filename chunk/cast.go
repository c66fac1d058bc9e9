package chunk

import "github.com/castkit/director/stream"

// CastChunk ("CAS*" slot list, not to be confused with CastMemberChunk's
// own "CASt" tag) is a flat array of member section ids, one per potential
// cast slot: a value of 0 means the slot is unused.
type CastChunk struct {
	MemberIDs []int32

	Name    string
	Members map[int32]*CastMemberChunk
}

func (c *CastChunk) Tag() Tag { return TagCast }

// ReadFrom consumes int32s until the stream is exhausted; the chunk has no
// length prefix of its own, just a flat array filling the whole chunk
// body.
func (c *CastChunk) ReadFrom(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)
	c.MemberIDs = nil
	for s.Pos() < s.Len() {
		id, err := s.ReadI32()
		if err != nil {
			return err
		}
		c.MemberIDs = append(c.MemberIDs, id)
	}
	return nil
}

func (c *CastChunk) Size(owner Owner) int { return 4 * len(c.MemberIDs) }

func (c *CastChunk) WriteTo(s *stream.Stream, owner Owner) error {
	s.SetEndian(stream.BigEndian)
	for _, id := range c.MemberIDs {
		s.WriteI32(id)
	}
	return nil
}

// Populate resolves every non-zero member id to its CastMemberChunk,
// assigns each member its final 1-based-from-minMember id, and binds each
// member to its script through the cast's Script Context, looked up in the
// Key Table by this cast's own id.
func (c *CastChunk) Populate(castName string, id int32, minMember uint16, keyTable *KeyTableChunk, owner Owner) error {
	c.Name = castName
	c.Members = make(map[int32]*CastMemberChunk, len(c.MemberIDs))

	var lctx *ScriptContextChunk
	if keyTable != nil {
		if fourCC, sectionID, ok := keyTable.FindScriptContext(id, owner); ok {
			ch, err := owner.GetChunk(fourCC, sectionID)
			if err == nil {
				lctx, _ = ch.(*ScriptContextChunk)
			}
		}
	}

	for i, sectionID := range c.MemberIDs {
		if sectionID <= 0 {
			continue
		}
		ch, err := owner.GetChunk(TagCastMember, sectionID)
		if err != nil {
			owner.Warn("cast %q: member slot %d: %v", castName, sectionID, err)
			continue
		}
		member, ok := ch.(*CastMemberChunk)
		if !ok {
			continue
		}
		member.ID = int32(i) + int32(minMember)
		if lctx != nil && member.Info != nil {
			if script, ok := lctx.Scripts[member.Info.ScriptID]; ok {
				member.Script = script
				script.Member = member
			}
		}
		c.Members[member.ID] = member
	}
	return nil
}
