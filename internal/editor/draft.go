package editor

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// MinPublishWords is the minimum body word count for publishing.
	MinPublishWords = 30

	// placeholder titles a new draft starts with
	placeholderTitle = "untitled"
)

// RejectReason is a typed publish-eligibility failure.
type RejectReason string

const (
	ReasonInsufficientContent RejectReason = "InsufficientContent"
	ReasonMissingCategory     RejectReason = "MissingCategory"
	ReasonPlaceholderTitle    RejectReason = "PlaceholderTitle"
)

// PublishError carries every unmet publish condition. The draft is still
// saved; only the publish flag is reverted.
type PublishError struct {
	Reasons []RejectReason
}

func (e *PublishError) Error() string {
	parts := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		parts[i] = string(r)
	}
	return "draft is not publishable: " + strings.Join(parts, ", ")
}

// Has reports whether the rejection includes the given reason.
func (e *PublishError) Has(r RejectReason) bool {
	for _, got := range e.Reasons {
		if got == r {
			return true
		}
	}
	return false
}

// Draft is the authoritative in-memory working copy of an article. It
// holds no validation logic beyond the publish transition; the command
// dispatcher and autosave coordinator mutate it.
type Draft struct {
	ID            *uuid.UUID // nil until first save
	AuthorID      uuid.UUID
	Title         string
	Subtitle      string
	Body          *Doc
	CategoryID    *uuid.UUID
	FeaturedImage string
	Language      string
	Published     bool
}

// NewDraft returns an empty draft for the given author.
func NewDraft(authorID uuid.UUID) *Draft {
	return &Draft{
		AuthorID: authorID,
		Body:     NewDoc(),
		Language: "en",
	}
}

// SetTitle commits a plain-text title; pasted markup is stripped.
func (d *Draft) SetTitle(raw string) {
	d.Title = StripTags(raw)
}

// SetSubtitle commits a plain-text subtitle; pasted markup is stripped.
func (d *Draft) SetSubtitle(raw string) {
	d.Subtitle = StripTags(raw)
}

// SetBody replaces the draft body. The caller keeps ownership of doc.
func (d *Draft) SetBody(doc *Doc) {
	d.Body = doc.Clone()
}

// BodyHTML returns the canonical serialization of the body.
func (d *Draft) BodyHTML() string {
	if d.Body == nil {
		return ""
	}
	return d.Body.HTML()
}

// ValidatePublish is the pure publish-eligibility rule set: minimum word
// count, a category, and a real title. Returns nil when publishable.
func ValidatePublish(d *Draft) *PublishError {
	var reasons []RejectReason
	if d.Body == nil || d.Body.WordCount() < MinPublishWords {
		reasons = append(reasons, ReasonInsufficientContent)
	}
	if d.CategoryID == nil {
		reasons = append(reasons, ReasonMissingCategory)
	}
	title := strings.TrimSpace(d.Title)
	if title == "" || strings.ToLower(title) == placeholderTitle {
		reasons = append(reasons, ReasonPlaceholderTitle)
	}
	if len(reasons) == 0 {
		return nil
	}
	return &PublishError{Reasons: reasons}
}

// SetPublished transitions the publish flag. Turning it on runs the
// eligibility validation; on rejection the flag is forced back to false
// and the typed reasons are returned. Turning it off always succeeds.
func (d *Draft) SetPublished(published bool) error {
	if !published {
		d.Published = false
		return nil
	}
	if err := ValidatePublish(d); err != nil {
		d.Published = false
		return err
	}
	d.Published = true
	return nil
}
