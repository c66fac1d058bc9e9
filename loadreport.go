package director

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/castkit/director/chunk"
)

// WarningKind is the closed set of non-fatal conditions a Load can record.
type WarningKind int

const (
	WarningChecksumMismatch WarningKind = iota
	WarningUnresolvedReference
	WarningUnknownTag
	WarningNameOutOfRange
)

func (k WarningKind) String() string {
	switch k {
	case WarningChecksumMismatch:
		return "checksum-mismatch"
	case WarningUnresolvedReference:
		return "unresolved-reference"
	case WarningUnknownTag:
		return "unknown-tag"
	case WarningNameOutOfRange:
		return "name-out-of-range"
	default:
		return "unknown-warning"
	}
}

// Warning is one recorded diagnostic from a single Load call.
type Warning struct {
	Kind    WarningKind
	Tag     chunk.Tag
	SlotID  int32
	Message string
}

// LoadReport is returned alongside every Directory: a correlation id so
// concurrent batch loads can be told apart in logs, and the ordered list
// of warnings that load produced. Load itself never fails because of
// these conditions; a caller wanting strict mode inspects Warnings and
// turns any of them into an error itself.
type LoadReport struct {
	ID       uuid.UUID
	Warnings []Warning
}

func newLoadReport() *LoadReport {
	return &LoadReport{ID: uuid.New()}
}

func (r *LoadReport) warn(kind WarningKind, tag chunk.Tag, slotID int32, format string, args ...any) {
	w := Warning{Kind: kind, Tag: tag, SlotID: slotID, Message: fmt.Sprintf(format, args...)}
	r.Warnings = append(r.Warnings, w)
	log.Printf("director[%s]: %s (tag=%s slot=%d): %s", r.ID, kind, tag, slotID, w.Message)
}
