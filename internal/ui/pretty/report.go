package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/deindent/pkg/deindent"
	"github.com/yaklabco/deindent/pkg/mdblocks"
)

// FormatInfo renders the indentation of one input as an aligned key/value block.
// A nil info means the input had no content.
func (s *Styles) FormatInfo(path string, info *deindent.IndentInfo) string {
	var builder strings.Builder

	builder.WriteString(s.FilePath.Render(path) + "\n")
	if info == nil {
		builder.WriteString("  " + s.Dim.Render("no content") + "\n")
		return builder.String()
	}

	rows := [][2]string{
		{"first line", strconv.Itoa(info.FirstLine)},
		{"last line", strconv.Itoa(info.LastLine)},
		{"indent", strconv.Itoa(info.LeadingWhitespace)},
		{"lines", strconv.Itoa(info.LineCount())},
	}
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf("  %s %s\n",
			s.Key.Render(fmt.Sprintf("%-11s", row[0]+":")), s.Value.Render(row[1])))
	}
	return builder.String()
}

// FormatBlocks renders the code blocks found in a Markdown file.
func (s *Styles) FormatBlocks(path string, blocks []mdblocks.Block) string {
	var builder strings.Builder

	builder.WriteString(s.FilePath.Render(path) + "\n")
	if len(blocks) == 0 {
		builder.WriteString("  " + s.Dim.Render("no code blocks") + "\n")
		return builder.String()
	}

	for _, block := range blocks {
		label := string(block.Kind)
		if block.Language != "" {
			label += " " + block.Language
		}

		var status string
		switch {
		case block.Skipped != "":
			status = s.Warning.Render("skipped: " + block.Skipped)
		case block.Changed:
			status = s.Success.Render(fmt.Sprintf("deindented %d columns", block.Info.LeadingWhitespace))
		case block.Info == nil:
			status = s.Dim.Render("empty")
		default:
			status = s.Dim.Render(fmt.Sprintf("indent %d", block.Info.LeadingWhitespace))
		}

		builder.WriteString(fmt.Sprintf("  %s %s %s\n",
			s.Key.Render(fmt.Sprintf("line %-5d", block.Line)), label, status))
	}
	return builder.String()
}
