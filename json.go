package director

import "github.com/castkit/director/chunk"

// directoryJSON is the structural, key-ordered dump of a Directory: every
// materialized top-level chunk plus its casts. It is not meant for the
// decode hot path, only for inspection tooling.
type directoryJSON struct {
	Config   *chunk.ConfigChunk   `json:"config"`
	KeyTable *chunk.KeyTableChunk `json:"keyTable"`
	CastList *chunk.CastListChunk `json:"castList"`
	Casts    []*chunk.CastChunk   `json:"casts"`
}

// MarshalJSON implements the structural projection for a Directory.
func (d *Directory) MarshalJSON() ([]byte, error) {
	return chunk.Marshal(directoryJSON{
		Config:   d.Config,
		KeyTable: d.KeyTable,
		CastList: d.CastList,
		Casts:    d.Casts,
	})
}
