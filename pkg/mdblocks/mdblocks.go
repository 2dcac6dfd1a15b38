// Package mdblocks deindents the bodies of fenced code blocks in Markdown
// documents. Blocks are located with goldmark; each body is deindented on its
// own and written back through byte-range edits, so everything outside the
// code blocks is left byte-for-byte intact.
package mdblocks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/deindent/pkg/deindent"
	"github.com/yaklabco/deindent/pkg/textedit"
)

// Kind identifies the code block syntax.
type Kind string

const (
	KindFenced   Kind = "fenced"
	KindIndented Kind = "indented"
)

// Block describes one code block found in the document.
type Block struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Language is the info string language of a fenced block, if any.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// Line is the 1-based line of the first body line.
	Line int `json:"line" yaml:"line"`

	// Info is nil when the body is empty or whitespace-only.
	Info *deindent.IndentInfo `json:"info,omitempty" yaml:"info,omitempty"`

	// Changed is true when the body was rewritten.
	Changed bool `json:"changed" yaml:"changed"`

	// Skipped holds the reason a block was left alone, if it was.
	Skipped string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Result is the outcome of Rewrite.
type Result struct {
	Blocks  []Block
	Content []byte
	Changed bool
}

// Rewriter parses Markdown and rewrites code block bodies.
type Rewriter struct {
	md goldmark.Markdown
}

// New returns a Rewriter using the GitHub Flavored Markdown dialect.
func New() *Rewriter {
	return &Rewriter{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Rewrite deindents every fenced code block in content. Indented code blocks
// are reported but never modified since their indentation is syntax.
// content is not modified.
func (r *Rewriter) Rewrite(ctx context.Context, content []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rewrite cancelled: %w", err)
	}

	doc := r.md.Parser().Parse(text.NewReader(content))

	result := &Result{Content: content}
	var edits []textedit.Edit

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch block := node.(type) {
		case *ast.FencedCodeBlock:
			b, blockEdits := fencedBlock(block, content)
			result.Blocks = append(result.Blocks, b)
			edits = append(edits, blockEdits...)
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			result.Blocks = append(result.Blocks, indentedBlock(block, content))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rewrite cancelled: %w", err)
	}

	prepared, err := textedit.Prepare(edits, len(content))
	if err != nil {
		return nil, fmt.Errorf("prepare edits: %w", err)
	}

	result.Content = textedit.Apply(content, prepared)
	result.Changed = !bytes.Equal(result.Content, content)
	return result, nil
}

func fencedBlock(node *ast.FencedCodeBlock, source []byte) (Block, []textedit.Edit) {
	block := Block{
		Kind:     KindFenced,
		Language: string(node.Language(source)),
	}

	lines := node.Lines()
	if lines.Len() == 0 {
		return block, nil
	}
	block.Line = lineNumber(source, lines.At(0).Start)

	var body strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		if seg.Padding > 0 {
			// Part of a tab was consumed by the container; the segment no
			// longer maps onto whole source bytes.
			block.Skipped = "tab-expanded indentation"
			return block, nil
		}
		body.Write(seg.Value(source))
	}

	d, ok := deindent.New(body.String())
	if !ok {
		return block, nil
	}
	info := d.Info()
	block.Info = &info

	rendered := make(map[int]string, info.LineCount())
	for _, line := range d.Lines() {
		rendered[line.Index] = line.Rendered
	}

	var edits []textedit.Edit
	for i := range lines.Len() {
		seg := lines.At(i)
		original := string(seg.Value(source))
		replacement := rendered[i]

		if replacement == original {
			continue
		}
		edits = append(edits, textedit.Edit{Start: seg.Start, End: seg.Stop, NewText: replacement})
	}

	block.Changed = len(edits) > 0
	return block, edits
}

func indentedBlock(node *ast.CodeBlock, source []byte) Block {
	block := Block{Kind: KindIndented, Skipped: "indented code block"}

	lines := node.Lines()
	if lines.Len() == 0 {
		return block
	}
	block.Line = lineNumber(source, lines.At(0).Start)

	var body bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		body.Write(seg.Value(source))
	}
	if info, ok := deindent.Analyze(body.String()); ok {
		block.Info = &info
	}
	return block
}

// lineNumber returns the 1-based line containing offset.
func lineNumber(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
