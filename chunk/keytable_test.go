package chunk

import "testing"

func TestKeyEntryEmpty(t *testing.T) {
	e := KeyEntry{SectionID: 0, CastID: 5, FourCC: TagScriptContext}
	if !e.Empty() {
		t.Fatal("expected zero sectionID to be Empty")
	}
	e.SectionID = 9
	if e.Empty() {
		t.Fatal("expected non-zero sectionID to not be Empty")
	}
}

func TestFindScriptContextMatchesCastIDAndTag(t *testing.T) {
	owner := newFakeOwner(500)
	ctx := &ScriptContextChunk{tag: TagScriptContext}
	owner.put(TagScriptContext, 12, ctx)

	kt := &KeyTableChunk{
		Entries: []KeyEntry{
			{SectionID: 0, CastID: 3, FourCC: TagScriptContext},      // empty slot, skipped
			{SectionID: 12, CastID: 3, FourCC: TagScriptContext},     // match
			{SectionID: 99, CastID: 3, FourCC: TagCastMember},        // wrong tag kind
		},
	}

	tag, slotID, ok := kt.FindScriptContext(3, owner)
	if !ok {
		t.Fatal("expected to find a script context")
	}
	if tag != TagScriptContext || slotID != 12 {
		t.Fatalf("got tag=%v slotID=%d", tag, slotID)
	}
}

func TestFindScriptContextNoMatch(t *testing.T) {
	owner := newFakeOwner(500)
	kt := &KeyTableChunk{Entries: []KeyEntry{{SectionID: 5, CastID: 1, FourCC: TagScriptContext}}}
	if _, _, ok := kt.FindScriptContext(2, owner); ok {
		t.Fatal("expected no match for a different castID")
	}
}
