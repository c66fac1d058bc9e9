package chunk

import (
	goccyjson "github.com/goccy/go-json"
)

// Marshal renders v (typically a *Directory or a single Chunk) to its JSON
// projection. Struct field declaration order already gives the key
// ordering the original's ordered_json produced, so every chunk type gets
// a faithful projection from its exported fields with no per-type
// marshaling code beyond the CastListChunk override below.
func Marshal(v any) ([]byte, error) {
	return goccyjson.Marshal(v)
}

// MarshalIndent is Marshal with indentation, used by CLI/debug tooling.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return goccyjson.MarshalIndent(v, prefix, indent)
}

// castListJSON mirrors CastListChunk's shape but reports CastCount as the
// true number of decoded entries rather than the on-disk header field.
// This is fixed at the projection layer only; CastListChunk.CastCount
// itself is left untouched for round-trip re-emission.
type castListJSON struct {
	Unk0         uint16            `json:"unk0"`
	CastCount    int               `json:"castCount"`
	ItemsPerCast uint16            `json:"itemsPerCast"`
	Unk1         uint16            `json:"unk1"`
	Entries      []CastListEntry   `json:"entries"`
}

// MarshalJSON implements the castCount fix documented above.
func (c *CastListChunk) MarshalJSON() ([]byte, error) {
	return goccyjson.Marshal(castListJSON{
		Unk0:         c.Unk0,
		CastCount:    len(c.Entries),
		ItemsPerCast: c.ItemsPerCast,
		Unk1:         c.Unk1,
		Entries:      c.Entries,
	})
}
