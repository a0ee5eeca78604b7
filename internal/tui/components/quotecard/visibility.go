package quotecard

// Visibility is the derived render state for a card's contextual affordances.
// All four booleans are recomputed from current props on every render; none
// of them is cached between renders.
type Visibility struct {
	// ShowPill is the hover hint that moderator-question context exists.
	// It is suppressed while the question block is open.
	ShowPill bool

	// ShowQuestionBlock is the expanded moderator-question disclosure.
	// Open with no question data renders nothing; that is a safety
	// fallback, not an error.
	ShowQuestionBlock bool

	// ShowHoverZone shares the pill's predicate: the hover surface and the
	// pill are the same affordance. Once open, dismissal is via the
	// explicit control, not hover.
	ShowHoverZone bool

	// ShowResearcherContext is mutually exclusive with question context:
	// segmented quotes get conversational context, standalone quotes get
	// the researcher annotation.
	ShowResearcherContext bool
}

// Resolve derives which contextual affordances render for a quote with the
// given segment index and parent-owned flags.
func Resolve(segmentIndex int, pillVisible, questionOpen, hasQuestion bool) Visibility {
	segmented := segmentIndex > 0
	return Visibility{
		ShowPill:              segmented && !questionOpen,
		ShowQuestionBlock:     questionOpen && hasQuestion,
		ShowHoverZone:         segmented && !questionOpen,
		ShowResearcherContext: !segmented,
	}
}
