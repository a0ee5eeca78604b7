package quotecard

import "github.com/colonyops/excerpt/internal/core/transcript"

// Annotation controls and the hover/event relay. Each method is a stateless
// projection of one event onto one callback, invoked with the quote's
// identifier. The card holds no optimistic shadow state: the rendered
// starred/hidden/tag appearance always follows props.

// ToggleStar requests a star toggle for this card's quote.
func (c *Card) ToggleStar() {
	if fn := c.props.Callbacks.OnToggleStar; fn != nil {
		fn(c.props.Quote.DomID)
	}
}

// ToggleHide requests a hide toggle for this card's quote.
func (c *Card) ToggleHide() {
	if fn := c.props.Callbacks.OnToggleHide; fn != nil {
		fn(c.props.Quote.DomID)
	}
}

// CommitEdit commits an inline edit of the quote text.
func (c *Card) CommitEdit(text string) {
	if fn := c.props.Callbacks.OnEditCommit; fn != nil {
		fn(c.props.Quote.DomID, text)
	}
}

// AddTag requests adding a tag. Empty values are relayed as-is; validation
// belongs to the parent.
func (c *Card) AddTag(tag string) {
	if fn := c.props.Callbacks.OnTagAdd; fn != nil {
		fn(c.props.Quote.DomID, tag)
	}
}

// RemoveTag requests removing a tag, addressed by value.
func (c *Card) RemoveTag(tag string) {
	if fn := c.props.Callbacks.OnTagRemove; fn != nil {
		fn(c.props.Quote.DomID, tag)
	}
}

// DeleteBadge requests deleting a badge, addressed by value.
func (c *Card) DeleteBadge(badge transcript.Badge) {
	if fn := c.props.Callbacks.OnBadgeDelete; fn != nil {
		fn(c.props.Quote.DomID, badge)
	}
}

// RestoreBadge requests restoring a previously deleted badge.
func (c *Card) RestoreBadge(badge transcript.Badge) {
	if fn := c.props.Callbacks.OnBadgeRestore; fn != nil {
		fn(c.props.Quote.DomID, badge)
	}
}

// AcceptProposed accepts a proposed tag.
func (c *Card) AcceptProposed(tag string) {
	if fn := c.props.Callbacks.OnProposedAccept; fn != nil {
		fn(c.props.Quote.DomID, tag)
	}
}

// DenyProposed denies a proposed tag.
func (c *Card) DenyProposed(tag string) {
	if fn := c.props.Callbacks.OnProposedDeny; fn != nil {
		fn(c.props.Quote.DomID, tag)
	}
}

// ClickPill toggles the question disclosure open. The parent flips its
// QuestionOpen flag for this id on every invocation; there is no separate
// open vs close signal.
func (c *Card) ClickPill() {
	if fn := c.props.Callbacks.OnToggleQuestion; fn != nil {
		fn(c.props.Quote.DomID)
	}
}

// ClickDismiss toggles the question disclosure closed. Same callback as
// ClickPill; toggle semantics are symmetric.
func (c *Card) ClickDismiss() {
	if fn := c.props.Callbacks.OnToggleQuestion; fn != nil {
		fn(c.props.Quote.DomID)
	}
}

// HoverEnter relays pointer-enter on the quote body.
func (c *Card) HoverEnter() {
	if fn := c.props.Callbacks.OnQuoteHoverEnter; fn != nil {
		fn(c.props.Quote.DomID)
	}
}

// HoverLeave relays pointer-leave on the quote body.
func (c *Card) HoverLeave() {
	if fn := c.props.Callbacks.OnQuoteHoverLeave; fn != nil {
		fn(c.props.Quote.DomID)
	}
}

// PillHoverEnter relays pointer-enter on the pill.
func (c *Card) PillHoverEnter() {
	if fn := c.props.Callbacks.OnPillHoverEnter; fn != nil {
		fn(c.props.Quote.DomID)
	}
}

// PillHoverLeave relays pointer-leave on the pill.
func (c *Card) PillHoverLeave() {
	if fn := c.props.Callbacks.OnPillHoverLeave; fn != nil {
		fn(c.props.Quote.DomID)
	}
}
