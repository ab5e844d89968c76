package board

import (
	"fmt"
	"strings"
)

/*
 * Text form of a snapshot, used by the CLI and by test fixtures.
 * One row per line, whitespace between tiles:
 *
 *   - covered tile
 *   F flagged tile
 *   0..8 revealed tile with that clue value
 */

// Parse reads a snapshot from its text form. mines is the total mine
// count of the board, which the text cannot carry.
func Parse(text string, mines int) (*Snapshot, error) {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty board text")
	}
	s := &Snapshot{
		Width:  len(rows[0]),
		Height: len(rows),
		Mines:  mines,
	}
	type revealed struct{ index, value int }
	var clues []revealed
	for y, row := range rows {
		if len(row) != s.Width {
			return nil, fmt.Errorf("row %d has %d tiles, want %d", y, len(row), s.Width)
		}
		for x, tok := range row {
			i := s.Index(x, y)
			switch {
			case tok == "-":
				s.Covered = append(s.Covered, i)
			case tok == "F":
				s.Flagged = append(s.Flagged, i)
			case len(tok) == 1 && tok[0] >= '0' && tok[0] <= '8':
				clues = append(clues, revealed{i, int(tok[0] - '0')})
			default:
				return nil, fmt.Errorf("bad tile %q at %d:%d", tok, x, y)
			}
		}
	}
	for _, c := range clues {
		s.Clues = append(s.Clues, Clue{
			Index:     c.index,
			Value:     c.value,
			Neighbors: s.Neighbors(c.index),
		})
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Snapshot) String() string {
	tok := make([]string, s.Size())
	for i := range tok {
		tok[i] = " "
	}
	for _, i := range s.Covered {
		tok[i] = "-"
	}
	for _, i := range s.Flagged {
		tok[i] = "F"
	}
	for _, c := range s.Clues {
		tok[c.Index] = fmt.Sprintf("%d", c.Value)
	}
	var b strings.Builder
	for y := range s.Height {
		for x := range s.Width {
			if x > 0 {
				fmt.Fprint(&b, " ")
			}
			fmt.Fprint(&b, tok[s.Index(x, y)])
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
