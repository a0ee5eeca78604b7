package annotate

// FlashStore tracks transient tag highlights per quote. A flash is a
// rendering hint only; it never feeds back into annotation state.
type FlashStore struct {
	flashes  map[string]map[string]int // quote ID -> tag -> ticks left
	ticksMax int
}

// NewFlashStore creates a flash store where each highlight lasts ticksMax
// animation ticks.
func NewFlashStore(ticksMax int) *FlashStore {
	return &FlashStore{
		flashes:  make(map[string]map[string]int),
		ticksMax: ticksMax,
	}
}

// Flash starts (or restarts) a highlight for a tag on a quote.
func (s *FlashStore) Flash(quoteID, tag string) {
	if s.ticksMax <= 0 {
		return
	}
	m, ok := s.flashes[quoteID]
	if !ok {
		m = make(map[string]int)
		s.flashes[quoteID] = m
	}
	m[tag] = s.ticksMax
}

// For returns the set of tags currently flashing on a quote, or nil.
func (s *FlashStore) For(quoteID string) map[string]struct{} {
	m, ok := s.flashes[quoteID]
	if !ok || len(m) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(m))
	for tag := range m {
		set[tag] = struct{}{}
	}
	return set
}

// Active returns true while any highlight is live.
func (s *FlashStore) Active() bool {
	for _, m := range s.flashes {
		if len(m) > 0 {
			return true
		}
	}
	return false
}

// Tick decrements all highlight tick counts and removes expired ones.
// Returns true if anything changed (for triggering a rerender).
func (s *FlashStore) Tick() bool {
	changed := false
	for quoteID, m := range s.flashes {
		for tag, ticks := range m {
			ticks--
			changed = true
			if ticks <= 0 {
				delete(m, tag)
			} else {
				m[tag] = ticks
			}
		}
		if len(m) == 0 {
			delete(s.flashes, quoteID)
		}
	}
	return changed
}
