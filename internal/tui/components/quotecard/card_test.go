package quotecard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/excerpt/internal/core/transcript"
	"github.com/colonyops/excerpt/pkg/tuitest"
)

func segmentedQuote() transcript.Quote {
	return transcript.Quote{
		DomID:         "q-7",
		Text:          "It took me three tries to find the button.",
		SpeakerCode:   "P4",
		StartTimecode: 61,
		EndTimecode:   68,
		Topic:         "navigation",
		SegmentIndex:  3,
	}
}

func standaloneQuote() transcript.Quote {
	return transcript.Quote{
		DomID:             "q-9",
		Text:              "I would never use this daily.",
		SpeakerCode:       "P2",
		ResearcherContext: "asked after the pricing screen",
		SegmentIndex:      -1,
	}
}

func question() *transcript.ModeratorQuestion {
	return &transcript.ModeratorQuestion{
		Text:         "What specifically was confusing about it?",
		SpeakerCode:  "MOD",
		SegmentIndex: 3,
	}
}

func render(c *Card) string {
	return tuitest.StripANSI(c.View())
}

func TestCardView_PillVisibleWhenHintedAndClosed(t *testing.T) {
	c := New(Props{
		Quote:       segmentedQuote(),
		Question:    question(),
		PillVisible: true,
	})

	out := render(c)
	assert.Contains(t, out, "moderator question", "pill renders while hinted")
	assert.NotContains(t, out, "What specifically", "question text stays hidden until opened")
}

func TestCardView_PillAbsentWhenNotHinted(t *testing.T) {
	c := New(Props{
		Quote:    segmentedQuote(),
		Question: question(),
	})

	out := render(c)
	assert.NotContains(t, out, "moderator question")
	vis := c.Visibility()
	assert.True(t, vis.ShowHoverZone, "hover zone remains active without the hint")
}

func TestCardView_OpenBlockSupersedesPill(t *testing.T) {
	c := New(Props{
		Quote:        segmentedQuote(),
		Question:     question(),
		PillVisible:  true,
		QuestionOpen: true,
	})

	out := render(c)
	assert.Contains(t, out, "What specifically was confusing about it?")
	assert.NotContains(t, out, "moderator question", "pill suppressed while open")

	vis := c.Visibility()
	assert.False(t, vis.ShowPill)
	assert.False(t, vis.ShowHoverZone)
}

func TestCardView_QuestionBlockRendersBeforeQuoteContent(t *testing.T) {
	c := New(Props{
		Quote:        segmentedQuote(),
		Question:     question(),
		QuestionOpen: true,
	})

	out := render(c)
	qIdx := strings.Index(out, "What specifically")
	bodyIdx := strings.Index(out, "three tries")
	require.GreaterOrEqual(t, qIdx, 0)
	require.GreaterOrEqual(t, bodyIdx, 0)
	assert.Less(t, qIdx, bodyIdx, "question block precedes the quote's own content")
}

func TestCardView_OpenWithNoDataRendersNothing(t *testing.T) {
	c := New(Props{
		Quote:        segmentedQuote(),
		QuestionOpen: true,
	})

	out := render(c)
	assert.NotContains(t, out, "MOD")
	assert.Contains(t, out, "three tries", "quote body still renders")
}

func TestCardView_StandaloneNeverRendersQuestionUI(t *testing.T) {
	// Question data supplied alongside a standalone quote is ignored.
	q := standaloneQuote()
	c := New(Props{
		Quote:        q,
		Question:     question(),
		PillVisible:  true,
		QuestionOpen: true,
	})

	out := render(c)
	assert.NotContains(t, out, "moderator question")
	assert.NotContains(t, out, "What specifically")
	assert.Contains(t, out, "asked after the pricing screen", "researcher context renders instead")
}

func TestCardView_SegmentedSuppressesResearcherContext(t *testing.T) {
	q := segmentedQuote()
	q.ResearcherContext = "should never show"
	c := New(Props{Quote: q, Question: question()})

	assert.NotContains(t, render(c), "should never show")
}

func TestCardView_SingleSentenceQuestionHasNoExpandControl(t *testing.T) {
	c := New(Props{
		Quote:        segmentedQuote(),
		Question:     question(),
		QuestionOpen: true,
	})

	out := render(c)
	assert.Contains(t, out, "What specifically was confusing about it?")
	assert.NotContains(t, out, "more…")
}

func TestCardView_MultiSentenceQuestionTruncatesThenExpands(t *testing.T) {
	mq := &transcript.ModeratorQuestion{
		Text:         "First sentence here. And then a second sentence with more detail.",
		SegmentIndex: 3,
	}
	c := New(Props{
		Quote:        segmentedQuote(),
		Question:     mq,
		QuestionOpen: true,
	})

	out := render(c)
	assert.Contains(t, out, "First sentence here.")
	assert.NotContains(t, out, "second sentence")
	assert.Contains(t, out, "more…")

	c.ExpandQuestion()
	out = render(c)
	assert.Contains(t, out, "second sentence with more detail")
	assert.NotContains(t, out, "more…", "control removed once expanded")
}

func TestCard_SetPropsResetsExpansionOnQuestionChange(t *testing.T) {
	mq := &transcript.ModeratorQuestion{Text: "One. Two.", SegmentIndex: 3}
	props := Props{Quote: segmentedQuote(), Question: mq, QuestionOpen: true}
	c := New(props)
	c.ExpandQuestion()
	require.True(t, c.QuestionExpanded())

	// Same question identity keeps the expansion.
	c.SetProps(props)
	assert.True(t, c.QuestionExpanded())

	// New question identity resets it.
	props.Question = &transcript.ModeratorQuestion{Text: "Other. Text.", SegmentIndex: 5}
	c.SetProps(props)
	assert.False(t, c.QuestionExpanded())
}

func TestCardView_EditedAndHiddenAppearanceFollowsProps(t *testing.T) {
	q := segmentedQuote()
	q.EditedText = "It took me a few tries."
	q.IsHidden = true
	q.IsStarred = true
	c := New(Props{Quote: q})

	out := render(c)
	assert.Contains(t, out, "It took me a few tries.", "edited override replaces text")
	assert.NotContains(t, out, "three tries")
	assert.Contains(t, out, "hidden")
	assert.Contains(t, out, "★")
	assert.Contains(t, out, "edited")
}

func TestCardView_TagsBadgesProposed(t *testing.T) {
	q := segmentedQuote()
	q.Tags = []string{"friction", "navigation"}
	q.DeletedBadges = []transcript.Badge{{Value: "key-moment"}}
	q.ProposedTags = []string{"onboarding"}
	c := New(Props{Quote: q})

	out := render(c)
	assert.Contains(t, out, "friction")
	assert.Contains(t, out, "deleted:")
	assert.Contains(t, out, "key-moment")
	assert.Contains(t, out, "proposed:")
	assert.Contains(t, out, "onboarding?")
}

func TestCardView_EmptyTagRenderedLiterally(t *testing.T) {
	// Malformed input is accepted as-is; nothing panics or filters it.
	q := segmentedQuote()
	q.Tags = []string{""}
	c := New(Props{Quote: q})
	assert.NotPanics(t, func() { _ = c.View() })
}

func TestCardView_NegativeTimeRangeRenderedLiterally(t *testing.T) {
	q := segmentedQuote()
	q.StartTimecode = -5
	c := New(Props{Quote: q})
	assert.NotPanics(t, func() { _ = c.View() })
	assert.Contains(t, render(c), "-5s")
}
