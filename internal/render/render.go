// Package render prints cards and spreads to a terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/solevolog/solevolog/internal/card"
	"github.com/solevolog/solevolog/internal/engine"
	"github.com/solevolog/solevolog/internal/spread"
)

const defaultWidth = 80

var (
	label    = color.New(color.FgCyan).SprintFunc()
	value    = color.New(color.FgHiWhite).SprintFunc()
	heading  = color.New(color.FgHiYellow, color.Bold).SprintFunc()
	reversed = color.New(color.FgHiRed).SprintFunc()
	faint    = color.New(color.Faint).SprintFunc()
)

// Renderer writes formatted output to Out.
type Renderer struct {
	Out   io.Writer
	Width int
}

// New returns a renderer for out, sized to the terminal when out is one.
func New(out io.Writer) *Renderer {
	width := defaultWidth
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return &Renderer{Out: out, Width: width}
}

func suitSymbol(s card.Suit) string {
	switch s {
	case card.Wands:
		return "♣"
	case card.Cups:
		return "♥"
	case card.Swords:
		return "♠"
	case card.Pentacles:
		return "♦"
	default:
		return "•"
	}
}

func orientation(isReversed bool) string {
	if isReversed {
		return reversed("Reversed")
	}
	return value("Upright")
}

// cardInfo returns the label/value lines describing c.
func cardInfo(c card.Card, deckName string) []string {
	name := c.NamePrimary
	if c.NameSecondary != "" && c.NameSecondary != c.NamePrimary {
		name = fmt.Sprintf("%s (%s)", c.NamePrimary, c.NameSecondary)
	}

	lines := []string{label("Card: ") + value(name)}
	if deckName != "" {
		lines = append(lines, label("Deck: ")+value(deckName))
	}
	lines = append(lines, label("ID:   ")+value(c.ID))
	if c.IsMajor() {
		lines = append(lines, label("Type: ")+value(fmt.Sprintf("Major Arcana · %s", romanNumeral(c.Rank))))
	} else {
		lines = append(lines,
			label("Type: ")+value("Minor Arcana"),
			label("Suit: ")+value(fmt.Sprintf("%s · %s", c.Suit, suitSymbol(c.Suit))),
			label("Rank: ")+value(card.RankName(c.Rank)),
		)
	}
	if len(c.Keywords) > 0 {
		lines = append(lines, label("Keywords: ")+value(strings.Join(c.Keywords, ", ")))
	}
	return lines
}

// Card prints c with both meanings beside its ANSI art. art may be empty.
func (r *Renderer) Card(c card.Card, art, deckName string) {
	artLines := splitArt(art)
	artWidth := 0
	for _, line := range artLines {
		artWidth = max(artWidth, visibleWidth(line))
	}

	infoCol := 0
	if artWidth > 0 {
		infoCol = artWidth + 4
	}
	textWidth := max(r.Width-infoCol-4, 20)

	info := cardInfo(c, deckName)
	for _, m := range []struct {
		title string
		text  string
	}{
		{"Upright:", c.DescriptionUpright},
		{"Reversed:", c.DescriptionReversed},
	} {
		if m.text == "" {
			continue
		}
		info = append(info, "", label(m.title))
		info = append(info, wrapText(m.text, textWidth)...)
	}
	if c.ImageReference != "" && art == "" {
		info = append(info, "", label("Image: ")+faint(c.ImageReference))
	}

	fmt.Fprintln(r.Out)
	for i := 0; i < max(len(artLines), len(info)); i++ {
		fmt.Fprint(r.Out, "  ")
		if artWidth > 0 {
			line := ""
			if i < len(artLines) {
				line = artLines[i]
			}
			fmt.Fprint(r.Out, line+strings.Repeat(" ", infoCol-visibleWidth(line)))
		}
		if i < len(info) {
			fmt.Fprint(r.Out, info[i])
		}
		fmt.Fprintln(r.Out)
	}
	fmt.Fprintln(r.Out)
}

// Spread prints a drawn spread, one block per position, with the meaning
// that matches each card's orientation.
func (r *Renderer) Spread(cfg spread.Config, drawn []engine.DrawnCard) {
	fmt.Fprintln(r.Out, heading(cfg.Name))
	fmt.Fprintln(r.Out)

	textWidth := max(r.Width-6, 20)
	for _, d := range drawn {
		name := d.NamePrimary
		if d.NameSecondary != "" && d.NameSecondary != d.NamePrimary {
			name = fmt.Sprintf("%s (%s)", d.NamePrimary, d.NameSecondary)
		}
		fmt.Fprintf(r.Out, "%2d. %s %s  %s\n",
			d.PositionIndex+1, label(d.PositionMeaning+":"), value(name), orientation(d.IsReversed))
		if len(d.Keywords) > 0 {
			fmt.Fprintf(r.Out, "    %s\n", faint(strings.Join(d.Keywords, ", ")))
		}
		if desc := d.Description(); desc != "" {
			for _, line := range wrapText(desc, textWidth) {
				fmt.Fprintf(r.Out, "    %s\n", line)
			}
		}
		fmt.Fprintln(r.Out)
	}
}

// Spreads lists the available spread configurations.
func (r *Renderer) Spreads() {
	for _, t := range spread.Types() {
		cfg, err := spread.Lookup(t)
		if err != nil {
			continue
		}
		fmt.Fprintf(r.Out, "%s  %s (%d cards)\n", value(fmt.Sprintf("%-13s", t)), cfg.Name, cfg.Count())
		for i, p := range cfg.Positions {
			fmt.Fprintf(r.Out, "    %2d. %s\n", i+1, p)
		}
	}
}

// Question prints the question a reading answers.
func (r *Renderer) Question(q string) {
	fmt.Fprintln(r.Out, label("Question: ")+value(q))
}

// SessionCards lists persisted rows of a session. names maps card IDs to
// display names; question may be empty.
func (r *Renderer) SessionCards(sessionID, question string, rows []engine.SessionCard, names map[string]string) {
	fmt.Fprintln(r.Out, label("Session: ")+value(sessionID))
	if question != "" {
		r.Question(question)
	}
	for _, row := range rows {
		name := names[row.CardID]
		if name == "" {
			name = row.CardID
		}
		fmt.Fprintf(r.Out, "%2d. %s %s  %s\n",
			row.PositionIndex+1, label(row.PositionMeaning+":"), value(name), orientation(row.IsReversed))
	}
}

func splitArt(art string) []string {
	art = strings.TrimRight(art, "\n")
	if art == "" {
		return nil
	}
	return strings.Split(art, "\n")
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func romanNumeral(n int) string {
	if n == 0 {
		return "0"
	}
	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
