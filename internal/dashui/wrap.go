package dashui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles text rune by rune. Runes inside a highlighted
// range use the highlight style.
func buildStyledRunes(text []rune, highlights []wordRange, base, highlight lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(text))
	for i, r := range text {
		style := base
		for _, h := range highlights {
			if i >= h.start && i < h.end {
				style = highlight
				break
			}
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

// filterNames returns the rune ranges of the attribute names in a filter
// summary such as "st_spectype=G,K  disc_year=2000..2010".
func filterNames(text []rune) []wordRange {
	words := []wordRange{}
	start := 0
	inName := true
	for i, r := range text {
		switch {
		case r == '=' && inName:
			if i > start {
				words = append(words, wordRange{start: start, end: i})
			}
			inName = false
		case r == ' ':
			start = i + 1
			inName = true
		}
	}
	return words
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines of at most width cells, at the last
// space when there is one.
func wrapStyledRunes(runes []styledRune, width int) []string {
	if width <= 0 {
		return []string{renderStyledRunes(runes)}
	}
	var out []string
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out = append(out, renderStyledRunes(line[:lastSpaceIdx]))
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out = append(out, renderStyledRunes(line))
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	return append(out, renderStyledRunes(line))
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
