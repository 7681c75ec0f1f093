package editor

// Selection addresses a range of the live document. Offsets are rune-free
// byte offsets into the flattened text of the anchor block. Item selects a
// list item when the anchor block is a list, and is -1 otherwise.
//
// Inline commands require the selection to sit inside a single textual
// block (or list item); block commands operate on the whole block range.
type Selection struct {
	StartBlock int
	EndBlock   int
	Item       int
	Start      int
	End        int
}

// Collapsed reports whether the selection is a bare cursor.
func (s Selection) Collapsed() bool {
	return s.StartBlock == s.EndBlock && s.Start == s.End
}

func (s Selection) singleBlock() bool {
	return s.StartBlock == s.EndBlock
}

// Surface is the live editing state: the document tree plus the current
// selection. Formatting commands are pure tree transformations applied
// here; nothing else holds editing state.
type Surface struct {
	doc   *Doc
	sel   Selection
	dirty bool
}

// NewSurface wraps a document in an editing surface. A nil doc starts a
// fresh single-paragraph document.
func NewSurface(doc *Doc) *Surface {
	if doc == nil || len(doc.Blocks) == 0 {
		doc = NewDoc()
	}
	return &Surface{doc: doc, sel: Selection{Item: -1}}
}

// Doc returns a deep copy of the current document.
func (s *Surface) Doc() *Doc {
	return s.doc.Clone()
}

// HTML returns the canonical serialization of the current document.
func (s *Surface) HTML() string {
	return s.doc.HTML()
}

// Dirty reports whether the surface changed since the last ClearDirty.
func (s *Surface) Dirty() bool { return s.dirty }

// ClearDirty resets the dirty flag, called after the autosave tick has
// consumed the current state.
func (s *Surface) ClearDirty() { s.dirty = false }

// SetSelection moves the selection, clamping it to the document.
func (s *Surface) SetSelection(sel Selection) {
	s.sel = s.clamp(sel)
}

// Selection returns the current (clamped) selection.
func (s *Surface) Selection() Selection {
	return s.sel
}

// SetHTML repaints the surface from a serialized body. Used when undo/redo
// or visibility recovery restores a snapshot; the selection collapses to
// the start of the document.
func (s *Surface) SetHTML(body string) error {
	doc, err := ParseHTML(body)
	if err != nil {
		return err
	}
	if len(doc.Blocks) == 0 {
		doc = NewDoc()
	}
	s.doc = doc
	s.sel = s.clamp(Selection{Item: -1})
	s.dirty = true
	return nil
}

func (s *Surface) clamp(sel Selection) Selection {
	last := len(s.doc.Blocks) - 1
	if sel.StartBlock < 0 {
		sel.StartBlock = 0
	}
	if sel.StartBlock > last {
		sel.StartBlock = last
	}
	if sel.EndBlock < sel.StartBlock {
		sel.EndBlock = sel.StartBlock
	}
	if sel.EndBlock > last {
		sel.EndBlock = last
	}
	b := &s.doc.Blocks[sel.StartBlock]
	if !b.List() {
		sel.Item = -1
	} else if sel.Item >= len(b.Items) {
		sel.Item = len(b.Items) - 1
	}
	max := len(s.selectedText(sel))
	if sel.Start < 0 {
		sel.Start = 0
	}
	if sel.Start > max {
		sel.Start = max
	}
	if sel.End < sel.Start {
		sel.End = sel.Start
	}
	if sel.End > max {
		sel.End = max
	}
	return sel
}

// selectedText returns the flattened text the offsets of sel index into.
func (s *Surface) selectedText(sel Selection) string {
	b := &s.doc.Blocks[sel.StartBlock]
	if b.List() && sel.Item >= 0 {
		var t string
		for _, sp := range b.Items[sel.Item] {
			t += sp.Text
		}
		return t
	}
	return b.Text()
}

// targetSpans resolves the span slice the selection addresses, or nil for
// atom blocks and cross-block selections.
func (s *Surface) targetSpans() *[]Span {
	if !s.sel.singleBlock() {
		return nil
	}
	b := &s.doc.Blocks[s.sel.StartBlock]
	switch {
	case b.List() && s.sel.Item >= 0:
		return &b.Items[s.sel.Item]
	case b.Textual() && b.Type != BlockCodeBlock:
		return &b.Spans
	}
	return nil
}

// toggleMark applies toggle semantics over the selection: when the whole
// range already carries the mark it is removed, otherwise it is added.
// Returns true when the document changed.
func (s *Surface) toggleMark(m Mark) bool {
	target := s.targetSpans()
	if target == nil || s.sel.Collapsed() {
		return false
	}
	spans, lo, hi := splitSpans(*target, s.sel.Start, s.sel.End)
	if lo == hi {
		return false
	}
	all := true
	for i := lo; i < hi; i++ {
		if !spans[i].Marks.Has(m) {
			all = false
			break
		}
	}
	for i := lo; i < hi; i++ {
		if all {
			spans[i].Marks &^= m
		} else {
			spans[i].Marks |= m
		}
	}
	*target = mergeSpans(spans)
	s.dirty = true
	return true
}

// clearFormatting removes every mark and link from the selection.
func (s *Surface) clearFormatting() bool {
	target := s.targetSpans()
	if target == nil || s.sel.Collapsed() {
		return false
	}
	spans, lo, hi := splitSpans(*target, s.sel.Start, s.sel.End)
	changed := false
	for i := lo; i < hi; i++ {
		if spans[i].Marks != 0 || spans[i].Href != "" {
			spans[i].Marks = 0
			spans[i].Href = ""
			changed = true
		}
	}
	if !changed {
		return false
	}
	*target = mergeSpans(spans)
	s.dirty = true
	return true
}

// applyLink links the selected range, or inserts a new linked span at a
// collapsed cursor. text defaults to the URL itself.
func (s *Surface) applyLink(url, text string) bool {
	target := s.targetSpans()
	if target == nil {
		return false
	}
	if s.sel.Collapsed() {
		if text == "" {
			text = url
		}
		spans, lo, _ := splitSpans(*target, s.sel.Start, s.sel.Start)
		out := make([]Span, 0, len(spans)+1)
		out = append(out, spans[:lo]...)
		out = append(out, Span{Text: text, Href: url})
		out = append(out, spans[lo:]...)
		*target = mergeSpans(out)
		s.sel.Start += len(text)
		s.sel.End = s.sel.Start
		s.dirty = true
		return true
	}
	spans, lo, hi := splitSpans(*target, s.sel.Start, s.sel.End)
	for i := lo; i < hi; i++ {
		spans[i].Href = url
	}
	*target = mergeSpans(spans)
	s.dirty = true
	return true
}

// setBlockType converts every block in the selected range to the given
// type. Block types are mutually exclusive selectors, not toggles. Atom
// blocks in the range are left untouched.
func (s *Surface) setBlockType(t BlockType, level int) bool {
	if t == BlockBulletList || t == BlockOrderedList {
		return s.wrapInList(t)
	}
	changed := false
	var out []Block
	for i := 0; i < len(s.doc.Blocks); i++ {
		b := s.doc.Blocks[i]
		inRange := i >= s.sel.StartBlock && i <= s.sel.EndBlock
		if !inRange || (!b.Textual() && !b.List()) {
			out = append(out, b)
			continue
		}
		if b.List() {
			// unwrap: each item becomes its own block of the target type
			for _, item := range b.Items {
				out = append(out, makeTextBlock(t, level, b.Align, item))
			}
			changed = true
			continue
		}
		if b.Type == t && b.Level == level {
			out = append(out, b)
			continue
		}
		out = append(out, makeTextBlock(t, level, b.Align, b.Spans))
		changed = true
	}
	if !changed {
		return false
	}
	s.doc.Blocks = out
	s.sel = s.clamp(s.sel)
	s.dirty = true
	return true
}

func makeTextBlock(t BlockType, level int, align Alignment, spans []Span) Block {
	b := Block{Type: t, Align: align, Spans: append([]Span(nil), spans...)}
	if t == BlockHeading {
		b.Level = level
	}
	if t == BlockCodeBlock {
		// code blocks carry plain text only
		b.Align = AlignDefault
		b.Spans = []Span{{Text: blockTextOf(spans)}}
	}
	return b
}

func blockTextOf(spans []Span) string {
	var t string
	for _, sp := range spans {
		t += sp.Text
	}
	return t
}

// wrapInList merges the textual blocks of the selected range into a single
// list block, one item per block. The range must be entirely textual.
func (s *Surface) wrapInList(t BlockType) bool {
	var items [][]Span
	for i := s.sel.StartBlock; i <= s.sel.EndBlock; i++ {
		b := &s.doc.Blocks[i]
		switch {
		case b.List():
			if b.Type == t && s.sel.StartBlock == s.sel.EndBlock {
				return false // already the requested list type
			}
			items = append(items, b.Items...)
		case b.Textual():
			items = append(items, append([]Span(nil), b.Spans...))
		default:
			return false
		}
	}
	list := Block{Type: t, Items: items}
	out := append([]Block(nil), s.doc.Blocks[:s.sel.StartBlock]...)
	out = append(out, list)
	out = append(out, s.doc.Blocks[s.sel.EndBlock+1:]...)
	s.doc.Blocks = out
	s.sel = s.clamp(Selection{StartBlock: s.sel.StartBlock, EndBlock: s.sel.StartBlock, Item: 0})
	s.dirty = true
	return true
}

// setAlign sets the alignment of every non-atom block in the range.
func (s *Surface) setAlign(a Alignment) bool {
	changed := false
	for i := s.sel.StartBlock; i <= s.sel.EndBlock; i++ {
		b := &s.doc.Blocks[i]
		if b.Type == BlockHorizontalRule || b.Type == BlockCodeBlock {
			continue
		}
		if b.Align != a {
			b.Align = a
			changed = true
		}
	}
	if changed {
		s.dirty = true
	}
	return changed
}

// insertBlock places an atom block after the selection and moves the
// cursor past it.
func (s *Surface) insertBlock(b Block) {
	at := s.sel.EndBlock + 1
	out := append([]Block(nil), s.doc.Blocks[:at]...)
	out = append(out, b)
	out = append(out, s.doc.Blocks[at:]...)
	s.doc.Blocks = out
	s.sel = s.clamp(Selection{StartBlock: at, EndBlock: at, Item: -1})
	s.dirty = true
}

// splitSpans returns a copy of spans with boundaries aligned to start and
// end, plus the half-open span window covering [start, end).
func splitSpans(spans []Span, start, end int) ([]Span, int, int) {
	var out []Span
	lo, hi := -1, -1
	pos := 0
	for _, sp := range spans {
		n := len(sp.Text)
		cuts := []int{}
		if start > pos && start < pos+n {
			cuts = append(cuts, start-pos)
		}
		if end > pos && end < pos+n && end != start {
			cuts = append(cuts, end-pos)
		}
		prev := 0
		for _, c := range append(cuts, n) {
			if c == prev {
				continue
			}
			part := sp
			part.Text = sp.Text[prev:c]
			if lo == -1 && pos+prev >= start {
				lo = len(out)
			}
			if hi == -1 && pos+prev >= end {
				hi = len(out)
			}
			out = append(out, part)
			prev = c
		}
		pos += n
	}
	if lo == -1 {
		lo = len(out)
	}
	if hi == -1 {
		hi = len(out)
	}
	return out, lo, hi
}
