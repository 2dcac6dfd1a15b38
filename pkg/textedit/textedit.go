// Package textedit applies non-overlapping byte-range replacements to content.
package textedit

import (
	"bytes"
	"fmt"
	"slices"
)

// Edit replaces content[Start:End] with NewText.
type Edit struct {
	Start   int
	End     int
	NewText string
}

// RangeError describes an edit that does not fit the content.
type RangeError struct {
	Edit    Edit
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Prepare validates edits against a content length, sorts them by position
// and rejects overlaps. The input slice is not modified.
func Prepare(edits []Edit, contentLen int) ([]Edit, error) {
	for _, edit := range edits {
		switch {
		case edit.Start < 0:
			return nil, &RangeError{Edit: edit, Message: "start offset is negative"}
		case edit.End < edit.Start:
			return nil, &RangeError{Edit: edit, Message: "end offset is before start offset"}
		case edit.End > contentLen:
			return nil, &RangeError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.End, contentLen),
			}
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// Apply applies edits prepared by Prepare and returns the new content.
// content is never modified.
func Apply(content []byte, edits []Edit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.End - e.Start)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.Start])
		out.WriteString(e.NewText)
		cursor = e.End
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
