package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func surfaceOf(t *testing.T, body string) *Surface {
	t.Helper()
	doc, err := ParseHTML(body)
	assert.NoError(t, err)
	return NewSurface(doc)
}

func TestDispatch_ToggleMark(t *testing.T) {
	s := surfaceOf(t, "<p>hello world</p>")
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1, Start: 0, End: 5})
	d := NewDispatcher(s, NewHistory(s.HTML()))

	assert.NoError(t, d.Dispatch(Command{Name: CmdBold}))
	assert.Equal(t, "<p><strong>hello</strong> world</p>", s.HTML())

	// applying the same mark to a fully marked range removes it
	assert.NoError(t, d.Dispatch(Command{Name: CmdBold}))
	assert.Equal(t, "<p>hello world</p>", s.HTML())
}

func TestDispatch_MixedRangeGetsMarked(t *testing.T) {
	s := surfaceOf(t, "<p><strong>he</strong>llo</p>")
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1, Start: 0, End: 5})
	d := NewDispatcher(s, NewHistory(s.HTML()))

	assert.NoError(t, d.Dispatch(Command{Name: CmdBold}))
	assert.Equal(t, "<p><strong>hello</strong></p>", s.HTML())
}

func TestDispatch_ClearFormatting(t *testing.T) {
	s := surfaceOf(t, `<p><strong>bold</strong> and <a href="https://x.test">linked</a></p>`)
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1, Start: 0, End: 15})
	d := NewDispatcher(s, NewHistory(s.HTML()))

	assert.NoError(t, d.Dispatch(Command{Name: CmdClearFormatting}))
	assert.Equal(t, "<p>bold and linked</p>", s.HTML())
}

func TestDispatch_BlockTypesAreExclusive(t *testing.T) {
	s := surfaceOf(t, "<p>hello world</p>")
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1})
	d := NewDispatcher(s, NewHistory(s.HTML()))

	assert.NoError(t, d.Dispatch(Command{Name: CmdHeading2}))
	assert.Equal(t, "<h2>hello world</h2>", s.HTML())

	// selecting another block type replaces the current one, no toggling
	assert.NoError(t, d.Dispatch(Command{Name: CmdBlockquote}))
	assert.Equal(t, "<blockquote>hello world</blockquote>", s.HTML())

	assert.NoError(t, d.Dispatch(Command{Name: CmdParagraph}))
	assert.Equal(t, "<p>hello world</p>", s.HTML())
}

func TestDispatch_WrapAndUnwrapList(t *testing.T) {
	s := surfaceOf(t, "<p>one</p><p>two</p>")
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 1, Item: -1})
	d := NewDispatcher(s, NewHistory(s.HTML()))

	assert.NoError(t, d.Dispatch(Command{Name: CmdBulletList}))
	assert.Equal(t, "<ul><li>one</li><li>two</li></ul>", s.HTML())

	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1})
	assert.NoError(t, d.Dispatch(Command{Name: CmdParagraph}))
	assert.Equal(t, "<p>one</p><p>two</p>", s.HTML())
}

func TestDispatch_Align(t *testing.T) {
	s := surfaceOf(t, "<p>hello</p>")
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1})
	d := NewDispatcher(s, NewHistory(s.HTML()))

	assert.NoError(t, d.Dispatch(Command{Name: CmdAlignCenter}))
	assert.Equal(t, `<p align="center">hello</p>`, s.HTML())

	assert.NoError(t, d.Dispatch(Command{Name: CmdAlignLeft}))
	assert.Equal(t, "<p>hello</p>", s.HTML())
}

func TestDispatch_InsertLinkRejectsMalformedURL(t *testing.T) {
	s := surfaceOf(t, "<p>hello world</p>")
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1, Start: 0, End: 5})
	d := NewDispatcher(s, NewHistory(s.HTML()))

	before := s.HTML()
	for _, raw := range []string{"", "not a url", "ftp://example.com/x", "https://"} {
		err := d.Dispatch(Command{Name: CmdInsertLink, URL: raw})
		assert.ErrorIs(t, err, ErrMalformedURL, "url %q", raw)
		assert.Equal(t, before, s.HTML(), "a rejected command must not mutate the document")
	}

	assert.NoError(t, d.Dispatch(Command{Name: CmdInsertLink, URL: "https://example.com/x"}))
	assert.Equal(t, `<p><a href="https://example.com/x">hello</a> world</p>`, s.HTML())
}

func TestDispatch_InsertLinkAtCollapsedCursor(t *testing.T) {
	s := surfaceOf(t, "<p>before after</p>")
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1, Start: 7, End: 7})
	d := NewDispatcher(s, NewHistory(s.HTML()))

	assert.NoError(t, d.Dispatch(Command{Name: CmdInsertLink, URL: "https://x.test", Text: "mid"}))
	assert.Equal(t, `<p>before <a href="https://x.test">mid</a>after</p>`, s.HTML())
}

func TestDispatch_InsertAtomBlocks(t *testing.T) {
	s := surfaceOf(t, "<p>intro</p>")
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1})
	d := NewDispatcher(s, NewHistory(s.HTML()))

	assert.NoError(t, d.Dispatch(Command{Name: CmdInsertImage, URL: "https://x.test/a.png", Alt: "pic"}))
	assert.Equal(t, `<p>intro</p><img src="https://x.test/a.png" alt="pic">`, s.HTML())

	err := d.Dispatch(Command{Name: CmdInsertVideo, URL: "nope"})
	assert.ErrorIs(t, err, ErrMalformedURL)

	assert.NoError(t, d.Dispatch(Command{Name: CmdInsertRule}))
	assert.Equal(t, `<p>intro</p><img src="https://x.test/a.png" alt="pic"><hr>`, s.HTML())
}

func TestDispatch_UndoRedo(t *testing.T) {
	s := surfaceOf(t, "<p>hello world</p>")
	s.SetSelection(Selection{StartBlock: 0, EndBlock: 0, Item: -1, Start: 0, End: 5})
	h := NewHistory(s.HTML())
	d := NewDispatcher(s, h)

	assert.NoError(t, d.Dispatch(Command{Name: CmdBold}))
	h.RecordIfChanged(s.HTML())

	assert.NoError(t, d.Dispatch(Command{Name: CmdUndo}))
	assert.Equal(t, "<p>hello world</p>", s.HTML())

	assert.NoError(t, d.Dispatch(Command{Name: CmdRedo}))
	assert.Equal(t, "<p><strong>hello</strong> world</p>", s.HTML())

	// redo on an empty branch is a no-op
	assert.NoError(t, d.Dispatch(Command{Name: CmdRedo}))
	assert.Equal(t, "<p><strong>hello</strong> world</p>", s.HTML())
}

func TestDispatch_UnknownCommand(t *testing.T) {
	s := surfaceOf(t, "<p>hello</p>")
	d := NewDispatcher(s, NewHistory(s.HTML()))

	err := d.Dispatch(Command{Name: "explode"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
