package readdoc

// Mode selects which runs count as marked and are kept.
type Mode string

// Mode constants. BothRequired has no token on the flag or request surface;
// its value is used for persistence and logs only.
const (
	Highlighted  Mode = "highlighted"
	Underlined   Mode = "underlined"
	Both         Mode = "both"
	BothRequired Mode = "both-required"
)

// ParseMode maps a selection token to a Mode.
// Returns EINVALID for anything other than "highlighted", "underlined" or "both".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Highlighted, Underlined, Both:
		return Mode(s), nil
	}
	return "", Errorf(EINVALID, "unknown mode %q (want highlighted, underlined or both)", s)
}

// Valid reports whether m is one of the four known modes.
func (m Mode) Valid() bool {
	switch m {
	case Highlighted, Underlined, Both, BothRequired:
		return true
	}
	return false
}

// Keep reports whether a run is marked under this mode.
// Unknown modes behave like Both.
func (m Mode) Keep(r *Run) bool {
	switch m {
	case Highlighted:
		return IsHighlighted(r)
	case Underlined:
		return IsUnderlined(r)
	case BothRequired:
		return IsHighlighted(r) && isUnderlinedStrict(r)
	default:
		return IsHighlighted(r) || IsUnderlined(r)
	}
}
