// Package transcript defines the quote and session data model for excerpt.
package transcript

// Quote is a single transcript excerpt under review. The record is supplied
// by the session file and treated as immutable by the UI; annotation state
// (stars, tags, edits) is layered on top by the annotation store.
type Quote struct {
	DomID         string `json:"dom_id"`
	Text          string `json:"text"`
	Verbatim      string `json:"verbatim"`
	ParticipantID string `json:"participant_id"`
	SessionID     string `json:"session_id"`
	SpeakerCode   string `json:"speaker_code"`

	StartTimecode float64 `json:"start_timecode"`
	EndTimecode   float64 `json:"end_timecode"`

	Sentiment string `json:"sentiment,omitempty"`
	Intensity int    `json:"intensity"`

	// ResearcherContext is free-text annotation shown only for standalone
	// quotes (SegmentIndex <= 0). Segmented quotes get moderator-question
	// context instead.
	ResearcherContext string `json:"researcher_context,omitempty"`

	QuoteType string `json:"quote_type"`
	Topic     string `json:"topic"`

	IsStarred  bool   `json:"is_starred"`
	IsHidden   bool   `json:"is_hidden"`
	EditedText string `json:"edited_text,omitempty"`

	Tags          []string `json:"tags"`
	DeletedBadges []Badge  `json:"deleted_badges"`
	ProposedTags  []string `json:"proposed_tags"`

	// SegmentIndex > 0 anchors the quote inside a multi-turn segment where
	// a moderator question may precede it. Zero or negative means the quote
	// stands alone with no segment context.
	SegmentIndex int `json:"segment_index"`
}

// Badge is a removable annotation marker distinct from free-form tags.
// Deleted badges keep their value so they can be restored.
type Badge struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// InSegment reports whether the quote is anchored inside a multi-turn
// segment. Only segmented quotes may carry moderator-question context.
func (q Quote) InSegment() bool {
	return q.SegmentIndex > 0
}

// DisplayText returns the edited override when one exists, otherwise the
// original text.
func (q Quote) DisplayText() string {
	if q.EditedText != "" {
		return q.EditedText
	}
	return q.Text
}

// ModeratorQuestion is the question that opened a transcript segment. It is
// only meaningful when linked to quotes with a matching positive segment
// index.
type ModeratorQuestion struct {
	Text          string  `json:"text"`
	SpeakerCode   string  `json:"speaker_code"`
	StartTimecode float64 `json:"start_timecode"`
	EndTimecode   float64 `json:"end_timecode"`
	SegmentIndex  int     `json:"segment_index"`
}

// Session is one transcript session file: quotes plus the moderator
// questions for its segments.
type Session struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Quotes    []Quote             `json:"quotes"`
	Questions []ModeratorQuestion `json:"questions"`
}

// QuestionFor returns the moderator question for the quote's segment, or nil.
// Standalone quotes (SegmentIndex <= 0) never resolve a question regardless
// of what question data the session carries.
func (s *Session) QuestionFor(q Quote) *ModeratorQuestion {
	if !q.InSegment() {
		return nil
	}
	for i := range s.Questions {
		if s.Questions[i].SegmentIndex == q.SegmentIndex {
			return &s.Questions[i]
		}
	}
	return nil
}
