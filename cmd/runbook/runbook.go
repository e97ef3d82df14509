package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Issue represents a single troubleshooting entry in the runbook
type Issue struct {
	Title    string
	Sections map[string]string
}

// Runbook represents a parsed troubleshooting runbook
type Runbook struct {
	Title  string
	Issues []Issue
}

// FindIssue finds an issue whose title contains the query, case-insensitively
func (r *Runbook) FindIssue(query string) *Issue {
	query = strings.ToLower(query)

	for i := range r.Issues {
		if strings.Contains(strings.ToLower(r.Issues[i].Title), query) {
			return &r.Issues[i]
		}
	}
	return nil
}

// Parse parses a troubleshooting runbook markdown file. Each h2 heading
// starts an issue; h3 headings inside it (Symptoms, Cause, Resolution,
// Verification) become the issue's sections.
func Parse(source []byte) (*Runbook, error) {
	md := goldmark.New()
	reader := text.NewReader(source)
	ctx := parser.NewContext()
	doc := md.Parser().Parse(reader, parser.WithContext(ctx))

	runbook := &Runbook{}

	// Collect all h1/h2/h3 headings with their positions from the AST
	type headingInfo struct {
		level        int
		text         string
		headingStart int
		contentStart int
	}
	var headings []headingInfo

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level > 3 {
			return ast.WalkContinue, nil
		}

		lines := heading.Lines()
		headingStart := 0
		contentStart := 0
		if lines.Len() > 0 {
			headingStart = lines.At(0).Start
			contentStart = lines.At(lines.Len() - 1).Stop
			// The segment starts at the heading text, after the "#" marker.
			// Back up to the line start so the marker does not leak into
			// the previous section's content.
			for headingStart > 0 && source[headingStart-1] != '\n' {
				headingStart--
			}
		}

		headings = append(headings, headingInfo{
			level:        heading.Level,
			text:         extractHeadingText(heading, source),
			headingStart: headingStart,
			contentStart: contentStart,
		})

		return ast.WalkContinue, nil
	})

	sectionContent := func(i int) string {
		contentEnd := len(source)
		if i+1 < len(headings) {
			contentEnd = headings[i+1].headingStart
		}
		if headings[i].contentStart >= contentEnd {
			return ""
		}
		return strings.TrimSpace(string(source[headings[i].contentStart:contentEnd]))
	}

	var current *Issue
	for i, h := range headings {
		switch h.level {
		case 1:
			if runbook.Title == "" {
				runbook.Title = h.text
			}
		case 2:
			runbook.Issues = append(runbook.Issues, Issue{
				Title:    h.text,
				Sections: make(map[string]string),
			})
			current = &runbook.Issues[len(runbook.Issues)-1]
		case 3:
			if current != nil {
				current.Sections[h.text] = sectionContent(i)
			}
		}
	}

	return runbook, nil
}

func extractHeadingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(source))
		} else if link, ok := child.(*ast.Link); ok {
			for linkChild := link.FirstChild(); linkChild != nil; linkChild = linkChild.NextSibling() {
				if textNode, ok := linkChild.(*ast.Text); ok {
					buf.Write(textNode.Segment.Value(source))
				}
			}
		}
	}
	return buf.String()
}
