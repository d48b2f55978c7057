package editor

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	previewAdded   = color.New(color.FgGreen).SprintFunc()
	previewRemoved = color.New(color.FgRed).SprintFunc()
)

// Preview renders the pending change as a line diff between the captured
// original selection and the streamed replacement, so the decision controls
// can show what accept would keep and reject would restore. Empty until the
// session has streamed content.
func (s *Session) Preview(colorize bool) string {
	s.mu.Lock()
	original, replacement := s.original, s.accumulated
	pending := s.controlsVisible || s.state == StateStreaming
	s.mu.Unlock()

	if !pending || original == replacement {
		return ""
	}
	return renderDiff(original, replacement, colorize)
}

func renderDiff(before, after string, colorize bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		text := strings.TrimRight(d.Text, "\n")
		if text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				if colorize {
					b.WriteString(previewAdded("+ " + line))
				} else {
					b.WriteString("+ " + line)
				}
			case diffmatchpatch.DiffDelete:
				if colorize {
					b.WriteString(previewRemoved("- " + line))
				} else {
					b.WriteString("- " + line)
				}
			case diffmatchpatch.DiffEqual:
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
