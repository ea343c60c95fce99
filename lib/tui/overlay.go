// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// resetSequence ends any styling the view left open so an overlay
// starts clean, and keeps overlay styling from leaking into the view.
const resetSequence = "\x1b[0m"

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines, the top-left corner at (anchorX, anchorY). Truncation
// is ANSI-aware, so styling in the view survives on both sides of the
// overlay. View lines shorter than anchorX are padded with spaces.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	if anchorX < 0 {
		anchorX = 0
	}

	viewLines := strings.Split(view, "\n")
	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}

		viewLine := viewLines[row]
		viewWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if viewWidth >= anchorX {
			result.WriteString(ansi.Truncate(viewLine, anchorX, ""))
		} else {
			result.WriteString(viewLine)
			result.WriteString(strings.Repeat(" ", anchorX-viewWidth))
		}
		result.WriteString(resetSequence)
		result.WriteString(overlayLine)
		result.WriteString(resetSequence)

		suffixStart := anchorX + ansi.StringWidth(overlayLine)
		if suffixStart < viewWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}
		viewLines[row] = result.String()
	}
	return strings.Join(viewLines, "\n")
}

// CenterOverlay splices box into the middle of a width x height view.
func CenterOverlay(view, box string, width, height int) string {
	boxLines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range boxLines {
		boxWidth = max(boxWidth, ansi.StringWidth(line))
	}
	anchorX := max(0, (width-boxWidth)/2)
	anchorY := max(0, (height-len(boxLines))/2)
	return SpliceOverlay(view, boxLines, anchorX, anchorY)
}

// FitLine truncates text to width columns, marking the cut with an
// ellipsis. Styling is preserved.
func FitLine(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}

// FirstLines returns up to maxLines non-blank lines of text, trimmed
// and fitted to maxWidth. Server messages are free text and may span
// lines; pages show an excerpt.
func FirstLines(text string, maxWidth, maxLines int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		result = append(result, FitLine(trimmed, maxWidth))
		if len(result) >= maxLines {
			break
		}
	}
	return result
}
