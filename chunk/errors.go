package chunk

import "errors"

// Sentinel error kinds. All are non-fatal to the overall Directory.Load
// except EndOfStream, which aborts the chunk currently being read; the
// Directory may then skip that slot and continue.
var (
	// ErrUnknownTag means a slot's tag has no registered decoder. The
	// slot is preserved as opaque bytes for round-trip re-emission.
	ErrUnknownTag = errors.New("chunk: unknown tag")

	// ErrChecksumMismatch means a Config chunk's stored checksum
	// disagrees with the recomputed one. Parsing continues; this is a
	// warning, not a failure.
	ErrChecksumMismatch = errors.New("chunk: checksum mismatch")

	// ErrUnresolvedReference means a (tag, slotID) lookup found no
	// matching slot, or the slot's tag disagreed with the one queried.
	ErrUnresolvedReference = errors.New("chunk: unresolved reference")
)
