// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// =============================================================================
// DOCUMENT PREVIEW
// =============================================================================

// Archived documents come in two shapes: markdown (release notes, policy
// documents) rendered through glamour, and raw text (config exports, CSV
// snapshots, JSON payloads) highlighted by extension through chroma.
// Rendering failures fall back to the raw content; the preview never
// blocks viewing a document.

var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// RenderDocument renders an archived document for terminal display,
// choosing the renderer from the file name.
func RenderDocument(name, content string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return renderMarkdown(content)
	default:
		return highlightByExtension(name, content)
	}
}

// renderMarkdown renders markdown, returning the original content when
// the renderer is unavailable or fails.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	out, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// highlightByExtension applies syntax highlighting keyed off the file
// name. Unknown extensions come back unhighlighted.
func highlightByExtension(name, content string) string {
	lexer := lexers.Match(name)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	style := chromaStyles.Get("monokai")
	formatter := formatters.Get("terminal256")

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}
