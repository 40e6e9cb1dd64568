package strategem

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessbot-go/internal/chess"
)

// bookStep is one half-move of an opening line. A wildcard step matches
// any move and can never be played from the book.
type bookStep struct {
	from, to chess.Square
	wildcard bool
}

func (s bookStep) matches(m chess.Move) bool {
	return s.wildcard || (s.from == m.From && s.to == m.To)
}

// bookLine is a planned opening sequence starting from the initial position.
type bookLine struct {
	text  string
	steps []bookStep
}

// parseBookLine parses a comma separated list of "e2->e4" steps, where
// "any" stands for whatever the opponent plays.
func parseBookLine(text string) (bookLine, error) {
	line := bookLine{text: text}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "any" {
			line.steps = append(line.steps, bookStep{wildcard: true})
			continue
		}
		from, to, ok := strings.Cut(part, "->")
		if !ok {
			return bookLine{}, fmt.Errorf("book step %q: missing \"->\"", part)
		}
		fromSq, err := chess.ParseSquare(from)
		if err != nil {
			return bookLine{}, fmt.Errorf("book step %q: %w", part, err)
		}
		toSq, err := chess.ParseSquare(to)
		if err != nil {
			return bookLine{}, fmt.Errorf("book step %q: %w", part, err)
		}
		line.steps = append(line.steps, bookStep{from: fromSq, to: toSq})
	}
	return line, nil
}

func mustParseBook(lines ...string) []bookLine {
	book := make([]bookLine, 0, len(lines))
	for _, text := range lines {
		line, err := parseBookLine(text)
		if err != nil {
			panic(err)
		}
		book = append(book, line)
	}
	return book
}

var (
	whiteBook = mustParseBook(
		"e2->e4,e7->e5,c2->c3,any,d2->d4",
		"e2->e4,d7->d5,f2->f3",
		"e2->e4,d7->d5,d2->d3,f5->e4,d3->e4,any,f2->f3",
		"e2->e4,g8->f6,d2->d3",
		"e2->e4,any,d1->e2,any,d2->d3",
	)
	blackBook = mustParseBook(
		"e2->e4,e7->e6,e4->e5,f7->f6",
		"e2->e4,e7->e6,any,d8->f6",
		"c2->c4,e7->e5",
		"any,d7->d5,any,e7->e6",
	)
)

func bookFor(colour chess.Colour) []bookLine {
	if colour == chess.White {
		return whiteBook
	}
	return blackBook
}

// lookup returns the first line consistent with played whose next step is a
// concrete move present in legal.
func lookup(book []bookLine, played, legal []chess.Move) (chess.Move, string, bool) {
	n := len(played)
	for _, line := range book {
		if len(line.steps) <= n {
			continue
		}
		if !followsLine(line, played) {
			continue
		}
		next := line.steps[n]
		if next.wildcard {
			continue
		}
		for _, m := range legal {
			if next.matches(m) {
				return m, line.text, true
			}
		}
	}
	return chess.Move{}, "", false
}

func followsLine(line bookLine, played []chess.Move) bool {
	for i, m := range played {
		if !line.steps[i].matches(m) {
			return false
		}
	}
	return true
}
