package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoc_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "paragraph", body: "<p>Hello world</p>"},
		{name: "marks", body: "<p>Hello <strong>bold</strong> and <em>italic</em> text</p>"},
		{name: "nested marks", body: "<p><strong><em>both</em></strong></p>"},
		{name: "link", body: `<p>see <a href="https://example.com/a">this</a></p>`},
		{name: "heading", body: "<h2>Title</h2><p>Body</p>"},
		{name: "blockquote", body: "<blockquote>Quoted</blockquote>"},
		{name: "code block", body: "<pre><code>x := 1</code></pre>"},
		{name: "bullet list", body: "<ul><li>one</li><li>two</li></ul>"},
		{name: "ordered list", body: "<ol><li>first</li><li>second</li></ol>"},
		{name: "image", body: `<img src="https://example.com/a.png" alt="a picture">`},
		{name: "button", body: `<a class="button" href="https://example.com/go">Go</a>`},
		{name: "video", body: `<video src="https://example.com/v.mp4" controls></video>`},
		{name: "audio", body: `<audio src="https://example.com/a.mp3" controls></audio>`},
		{name: "rule", body: "<p>above</p><hr><p>below</p>"},
		{name: "alignment", body: `<p align="center">Centered</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseHTML(tt.body)
			assert.NoError(t, err)
			assert.Equal(t, tt.body, doc.HTML())
		})
	}
}

func TestParseHTML_NormalizesLegacyTags(t *testing.T) {
	doc, err := ParseHTML("<p><b>bold</b> and <i>italic</i> and <del>gone</del></p>")
	assert.NoError(t, err)
	assert.Equal(t, "<p><strong>bold</strong> and <em>italic</em> and <s>gone</s></p>", doc.HTML())
}

func TestParseHTML_UnknownElementDegradesToParagraph(t *testing.T) {
	doc, err := ParseHTML("<section>pasted content</section>")
	assert.NoError(t, err)
	assert.Equal(t, "<p>pasted content</p>", doc.HTML())
}

func TestDoc_Equal(t *testing.T) {
	doc, err := ParseHTML("<p>Hello <strong>bold</strong></p>")
	assert.NoError(t, err)

	clone := doc.Clone()
	assert.True(t, doc.Equal(clone))

	clone.Blocks[0].Spans[0].Text = "Changed "
	assert.False(t, doc.Equal(clone))
}

func TestDoc_WordCount(t *testing.T) {
	doc, err := ParseHTML("<p>one two three</p><ul><li>four five</li><li>six</li></ul><img src=\"https://x.test/a.png\">")
	assert.NoError(t, err)
	assert.Equal(t, 6, doc.WordCount())
}

func TestDoc_Empty(t *testing.T) {
	assert.True(t, NewDoc().Empty())

	doc, err := ParseHTML("<p>   </p>")
	assert.NoError(t, err)
	assert.True(t, doc.Empty(), "whitespace only body is empty")

	doc, err = ParseHTML("<img src=\"https://x.test/a.png\">")
	assert.NoError(t, err)
	assert.False(t, doc.Empty(), "an atom block counts as content")
}

func TestImageSources(t *testing.T) {
	body := `<p>text</p><img src="https://x.test/a.png"><figure><img src="https://x.test/b.png"></figure>`
	assert.Equal(t, []string{"https://x.test/a.png", "https://x.test/b.png"}, ImageSources(body))

	assert.Nil(t, ImageSources("<p>no images</p>"))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hello", StripTags("<b>Hello</b>"))
	assert.Equal(t, "plain title", StripTags("plain title"))
	assert.Equal(t, "a b", StripTags("<p>a <em>b</em></p>"))
}
