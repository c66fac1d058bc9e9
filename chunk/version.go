package chunk

// HumanVersion maps a raw Config.DirectorVersion value to the marketing
// major version (e.g. any raw value in the Director 8.x range maps to
// 800). Only used as a gating threshold at 500 (cast member layout), 700
// (checksum stage-color step) and 800 (checksum comment-style step); the
// bands above 800 are an approximate marketing-version table kept for
// diagnostics, and raw values below 700 are returned unchanged.
func HumanVersion(raw int16) int {
	switch {
	case raw < 700:
		return int(raw)
	case raw < 800:
		return 700
	case raw < 1000:
		return 800
	case raw < 1100:
		return 850
	case raw < 1200:
		return 1000
	case raw < 1201:
		return 1100
	case raw < 1300:
		return 1150
	case raw < 1301:
		return 1200
	default:
		return int(raw)
	}
}
