package editor

import (
	"strings"

	"golang.org/x/net/html"
)

// BlockType identifies the kind of a top level content block.
type BlockType string

const (
	BlockParagraph      BlockType = "paragraph"
	BlockHeading        BlockType = "heading"
	BlockBlockquote     BlockType = "blockquote"
	BlockCodeBlock      BlockType = "codeBlock"
	BlockBulletList     BlockType = "bulletList"
	BlockOrderedList    BlockType = "orderedList"
	BlockImage          BlockType = "image"
	BlockButton         BlockType = "button"
	BlockVideo          BlockType = "video"
	BlockAudio          BlockType = "audio"
	BlockHorizontalRule BlockType = "horizontalRule"
)

// Alignment is the horizontal alignment of a block. The zero value means
// the default (left) alignment and is omitted from the serialized form.
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// Mark is a bitset of inline formatting flags carried by a span.
type Mark uint8

const (
	MarkBold Mark = 1 << iota
	MarkItalic
	MarkStrike
	MarkCode
)

// Has reports whether all bits of m2 are set in m.
func (m Mark) Has(m2 Mark) bool { return m&m2 == m2 }

// Span is a run of text with a uniform mark set and optional link target.
type Span struct {
	Text  string
	Marks Mark
	Href  string
}

func (s Span) sameStyle(o Span) bool {
	return s.Marks == o.Marks && s.Href == o.Href
}

// Block is a top level node of the content tree. Textual blocks carry
// spans, list blocks carry items (one span slice per list item), and atom
// blocks (image, button, video, audio, rule) carry attributes only.
type Block struct {
	Type  BlockType
	Level int // heading level 1..6
	Align Alignment
	Spans []Span
	Items [][]Span

	// atom attributes
	Src   string
	Alt   string
	Label string // button label
}

// Textual reports whether the block carries a single span slice.
func (b *Block) Textual() bool {
	switch b.Type {
	case BlockParagraph, BlockHeading, BlockBlockquote, BlockCodeBlock:
		return true
	}
	return false
}

// List reports whether the block is a bullet or ordered list.
func (b *Block) List() bool {
	return b.Type == BlockBulletList || b.Type == BlockOrderedList
}

// Text returns the flattened text of a textual or list block.
func (b *Block) Text() string {
	var sb strings.Builder
	if b.List() {
		for i, item := range b.Items {
			if i > 0 {
				sb.WriteString("\n")
			}
			for _, s := range item {
				sb.WriteString(s.Text)
			}
		}
		return sb.String()
	}
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Doc is the article body: an ordered sequence of blocks. It is the
// explicit tree representation every formatting command transforms, there
// is no hidden editing state outside of it.
type Doc struct {
	Blocks []Block
}

// NewDoc returns an empty document with a single empty paragraph.
func NewDoc() *Doc {
	return &Doc{Blocks: []Block{{Type: BlockParagraph}}}
}

// Clone returns a deep copy of the document.
func (d *Doc) Clone() *Doc {
	out := &Doc{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		nb := b
		nb.Spans = append([]Span(nil), b.Spans...)
		if b.Items != nil {
			nb.Items = make([][]Span, len(b.Items))
			for j, item := range b.Items {
				nb.Items[j] = append([]Span(nil), item...)
			}
		}
		out.Blocks[i] = nb
	}
	return out
}

// Equal reports structural equality. The serialized form is canonical, so
// two documents are equal exactly when their HTML matches byte for byte.
func (d *Doc) Equal(o *Doc) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.HTML() == o.HTML()
}

// Empty reports whether the document has no text and no atom blocks.
func (d *Doc) Empty() bool {
	for i := range d.Blocks {
		b := &d.Blocks[i]
		if !b.Textual() && !b.List() {
			return false
		}
		if strings.TrimSpace(b.Text()) != "" {
			return false
		}
	}
	return true
}

// PlainText returns the document text with blocks separated by newlines.
func (d *Doc) PlainText() string {
	var parts []string
	for i := range d.Blocks {
		b := &d.Blocks[i]
		if b.Textual() || b.List() {
			parts = append(parts, b.Text())
		}
	}
	return strings.Join(parts, "\n")
}

// WordCount returns the number of whitespace separated words in the body.
func (d *Doc) WordCount() int {
	return len(strings.Fields(d.PlainText()))
}

// ImageURLs returns the src of every image block, in document order.
func (d *Doc) ImageURLs() []string {
	var urls []string
	for i := range d.Blocks {
		if d.Blocks[i].Type == BlockImage && d.Blocks[i].Src != "" {
			urls = append(urls, d.Blocks[i].Src)
		}
	}
	return urls
}

// HTML renders the canonical serialization of the document.
func (d *Doc) HTML() string {
	var sb strings.Builder
	for i := range d.Blocks {
		writeBlock(&sb, &d.Blocks[i])
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, b *Block) {
	switch b.Type {
	case BlockParagraph:
		openTag(sb, "p", b.Align)
		writeSpans(sb, b.Spans)
		sb.WriteString("</p>")
	case BlockHeading:
		tag := headingTag(b.Level)
		openTag(sb, tag, b.Align)
		writeSpans(sb, b.Spans)
		sb.WriteString("</" + tag + ">")
	case BlockBlockquote:
		openTag(sb, "blockquote", b.Align)
		writeSpans(sb, b.Spans)
		sb.WriteString("</blockquote>")
	case BlockCodeBlock:
		sb.WriteString("<pre><code>")
		sb.WriteString(html.EscapeString(b.Text()))
		sb.WriteString("</code></pre>")
	case BlockBulletList, BlockOrderedList:
		tag := "ul"
		if b.Type == BlockOrderedList {
			tag = "ol"
		}
		openTag(sb, tag, b.Align)
		for _, item := range b.Items {
			sb.WriteString("<li>")
			writeSpans(sb, item)
			sb.WriteString("</li>")
		}
		sb.WriteString("</" + tag + ">")
	case BlockImage:
		sb.WriteString(`<img src="` + html.EscapeString(b.Src) + `"`)
		if b.Alt != "" {
			sb.WriteString(` alt="` + html.EscapeString(b.Alt) + `"`)
		}
		sb.WriteString(">")
	case BlockButton:
		sb.WriteString(`<a class="button" href="` + html.EscapeString(b.Src) + `">`)
		sb.WriteString(html.EscapeString(b.Label))
		sb.WriteString("</a>")
	case BlockVideo:
		sb.WriteString(`<video src="` + html.EscapeString(b.Src) + `" controls></video>`)
	case BlockAudio:
		sb.WriteString(`<audio src="` + html.EscapeString(b.Src) + `" controls></audio>`)
	case BlockHorizontalRule:
		sb.WriteString("<hr>")
	}
}

func openTag(sb *strings.Builder, tag string, align Alignment) {
	sb.WriteString("<" + tag)
	if align != AlignDefault && align != AlignLeft {
		sb.WriteString(` align="` + string(align) + `"`)
	}
	sb.WriteString(">")
}

func headingTag(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return "h" + string(rune('0'+level))
}

// span nesting order is fixed: link, strong, em, s, code. A fixed order
// keeps the serialization canonical.
func writeSpans(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		var open, clos string
		if s.Href != "" {
			open += `<a href="` + html.EscapeString(s.Href) + `">`
			clos = "</a>" + clos
		}
		if s.Marks.Has(MarkBold) {
			open += "<strong>"
			clos = "</strong>" + clos
		}
		if s.Marks.Has(MarkItalic) {
			open += "<em>"
			clos = "</em>" + clos
		}
		if s.Marks.Has(MarkStrike) {
			open += "<s>"
			clos = "</s>" + clos
		}
		if s.Marks.Has(MarkCode) {
			open += "<code>"
			clos = "</code>" + clos
		}
		sb.WriteString(open)
		sb.WriteString(html.EscapeString(s.Text))
		sb.WriteString(clos)
	}
}

// ParseHTML parses a serialized body back into a document tree. Unknown
// elements are treated as paragraphs so content pasted from elsewhere
// degrades instead of being dropped.
func ParseHTML(s string) (*Doc, error) {
	if strings.TrimSpace(s) == "" {
		return &Doc{}, nil
	}
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil, err
	}
	body := findNode(root, "body")
	if body == nil {
		return &Doc{}, nil
	}

	doc := &Doc{}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			doc.Blocks = append(doc.Blocks, Block{
				Type:  BlockParagraph,
				Spans: []Span{{Text: c.Data}},
			})
		case html.ElementNode:
			if b, ok := parseBlock(c); ok {
				doc.Blocks = append(doc.Blocks, b)
			}
		}
	}
	return doc, nil
}

func parseBlock(n *html.Node) (Block, bool) {
	align := Alignment(attr(n, "align"))
	switch n.Data {
	case "p", "div":
		return Block{Type: BlockParagraph, Align: align, Spans: collectSpans(n)}, true
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		return Block{Type: BlockHeading, Level: level, Align: align, Spans: collectSpans(n)}, true
	case "blockquote":
		return Block{Type: BlockBlockquote, Align: align, Spans: collectSpans(n)}, true
	case "pre":
		return Block{Type: BlockCodeBlock, Spans: []Span{{Text: textContent(n)}}}, true
	case "ul", "ol":
		t := BlockBulletList
		if n.Data == "ol" {
			t = BlockOrderedList
		}
		b := Block{Type: t, Align: align, Items: [][]Span{}}
		for li := n.FirstChild; li != nil; li = li.NextSibling {
			if li.Type == html.ElementNode && li.Data == "li" {
				b.Items = append(b.Items, collectSpans(li))
			}
		}
		return b, true
	case "img":
		return Block{Type: BlockImage, Src: attr(n, "src"), Alt: attr(n, "alt")}, true
	case "a":
		if strings.Contains(attr(n, "class"), "button") {
			return Block{Type: BlockButton, Src: attr(n, "href"), Label: textContent(n)}, true
		}
		// a bare link at the top level becomes a paragraph
		return Block{Type: BlockParagraph, Spans: collectSpansFrom(n, 0, attr(n, "href"))}, true
	case "video":
		return Block{Type: BlockVideo, Src: attr(n, "src")}, true
	case "audio":
		return Block{Type: BlockAudio, Src: attr(n, "src")}, true
	case "hr":
		return Block{Type: BlockHorizontalRule}, true
	case "figure":
		if img := findNode(n, "img"); img != nil {
			return Block{Type: BlockImage, Src: attr(img, "src"), Alt: attr(img, "alt")}, true
		}
		return Block{}, false
	default:
		spans := collectSpans(n)
		if len(spans) == 0 {
			return Block{}, false
		}
		return Block{Type: BlockParagraph, Spans: spans}, true
	}
}

// collectSpans flattens the inline subtree of n into spans, merging
// adjacent runs that share the same style.
func collectSpans(n *html.Node) []Span {
	return collectSpansFrom(n, 0, "")
}

func collectSpansFrom(n *html.Node, marks Mark, href string) []Span {
	var spans []Span
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if c.Data == "" {
				continue
			}
			spans = appendSpan(spans, Span{Text: c.Data, Marks: marks, Href: href})
		case html.ElementNode:
			m, h := marks, href
			switch c.Data {
			case "b", "strong":
				m |= MarkBold
			case "i", "em":
				m |= MarkItalic
			case "s", "del", "strike":
				m |= MarkStrike
			case "code":
				m |= MarkCode
			case "a":
				if v := attr(c, "href"); v != "" {
					h = v
				}
			case "br":
				spans = appendSpan(spans, Span{Text: "\n", Marks: marks, Href: href})
				continue
			}
			for _, s := range collectSpansFrom(c, m, h) {
				spans = appendSpan(spans, s)
			}
		}
	}
	return spans
}

func appendSpan(spans []Span, s Span) []Span {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].sameStyle(s) {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}

// mergeSpans joins adjacent spans with identical style and drops empty ones.
func mergeSpans(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		out = appendSpan(out, s)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// ImageSources extracts the src attribute of every img tag in a serialized
// body. Reconciliation works from the stored serialization, not from a live
// document tree, so this walks the raw markup.
func ImageSources(body string) []string {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}
	var urls []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			if src := attr(n, "src"); src != "" {
				urls = append(urls, src)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return urls
}
