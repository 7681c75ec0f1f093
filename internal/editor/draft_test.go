package editor

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// bodyOfWords builds a single paragraph body with exactly n words.
func bodyOfWords(n int) *Doc {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return &Doc{Blocks: []Block{{
		Type:  BlockParagraph,
		Spans: []Span{{Text: strings.Join(words, " ")}},
	}}}
}

func TestDraft_SetTitleStripsMarkup(t *testing.T) {
	d := NewDraft(uuid.New())

	d.SetTitle("<b>Hello</b>")
	assert.Equal(t, "Hello", d.Title)

	d.SetSubtitle("a <em>styled</em> subtitle")
	assert.Equal(t, "a styled subtitle", d.Subtitle)
}

func TestValidatePublish_CollectsEveryReason(t *testing.T) {
	d := NewDraft(uuid.New())
	d.Body = bodyOfWords(MinPublishWords - 1)

	err := ValidatePublish(d)
	assert.NotNil(t, err)
	assert.True(t, err.Has(ReasonInsufficientContent))
	assert.True(t, err.Has(ReasonMissingCategory))
	assert.True(t, err.Has(ReasonPlaceholderTitle))
}

func TestValidatePublish_PlaceholderTitle(t *testing.T) {
	category := uuid.New()

	d := NewDraft(uuid.New())
	d.Body = bodyOfWords(MinPublishWords)
	d.CategoryID = &category

	for _, title := range []string{"", "   ", "Untitled", "untitled"} {
		d.Title = title
		err := ValidatePublish(d)
		assert.NotNil(t, err, "title %q", title)
		assert.True(t, err.Has(ReasonPlaceholderTitle), "title %q", title)
	}

	d.Title = "A Real Title"
	assert.Nil(t, ValidatePublish(d))
}

func TestDraft_SetPublished(t *testing.T) {
	category := uuid.New()

	d := NewDraft(uuid.New())
	d.Body = bodyOfWords(MinPublishWords - 1)
	d.Title = "A Real Title"
	d.CategoryID = &category

	err := d.SetPublished(true)
	assert.Error(t, err)
	assert.False(t, d.Published, "rejection must leave the draft unpublished")

	var pubErr *PublishError
	assert.ErrorAs(t, err, &pubErr)
	assert.Equal(t, []RejectReason{ReasonInsufficientContent}, pubErr.Reasons)

	d.Body = bodyOfWords(MinPublishWords)
	assert.NoError(t, d.SetPublished(true))
	assert.True(t, d.Published)

	assert.NoError(t, d.SetPublished(false))
	assert.False(t, d.Published)
}
