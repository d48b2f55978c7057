// Package editor implements the streaming replacement editor: a user
// selection is sent with an instruction to a generation channel and the
// selected range is replaced in place as cumulative text chunks arrive,
// with explicit accept/reject/stop controls.
package editor

// Document is the rich-text surface the session patches. Offsets are rune
// offsets. Implementations are not required to be safe for concurrent use;
// the session serializes every access.
type Document interface {
	// Len returns the document length in runes.
	Len() int
	// Slice returns the text in [from, to).
	Slice(from, to int) string
	// Replace substitutes the text in [from, to) with text.
	Replace(from, to int, text string)
	// Mark highlights [from, to); a new mark replaces the previous one.
	Mark(from, to int)
	// ClearMarks removes the highlight.
	ClearMarks()
}

// TextDocument is a plain in-memory Document with a single highlight mark.
type TextDocument struct {
	runes    []rune
	markFrom int
	markTo   int
	hasMark  bool
}

// NewTextDocument builds a document from its initial content.
func NewTextDocument(content string) *TextDocument {
	return &TextDocument{runes: []rune(content)}
}

func (d *TextDocument) Len() int { return len(d.runes) }

// String returns the full document content.
func (d *TextDocument) String() string { return string(d.runes) }

func (d *TextDocument) Slice(from, to int) string {
	from, to = d.clamp(from, to)
	return string(d.runes[from:to])
}

func (d *TextDocument) Replace(from, to int, text string) {
	from, to = d.clamp(from, to)
	insert := []rune(text)
	next := make([]rune, 0, len(d.runes)-(to-from)+len(insert))
	next = append(next, d.runes[:from]...)
	next = append(next, insert...)
	next = append(next, d.runes[to:]...)
	d.runes = next
}

func (d *TextDocument) Mark(from, to int) {
	from, to = d.clamp(from, to)
	d.markFrom, d.markTo, d.hasMark = from, to, true
}

func (d *TextDocument) ClearMarks() {
	d.hasMark = false
	d.markFrom, d.markTo = 0, 0
}

// MarkedRange returns the highlighted range, when present.
func (d *TextDocument) MarkedRange() (from, to int, ok bool) {
	return d.markFrom, d.markTo, d.hasMark
}

func (d *TextDocument) clamp(from, to int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > len(d.runes) {
		to = len(d.runes)
	}
	if from > to {
		from = to
	}
	return from, to
}
