package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrLayout is wrapped by every layout parsing failure.
var ErrLayout = errors.New("malformed layout")

var tagRunes = map[Tag]byte{
	Default: '.',
	Wall:    '#',
	Start:   'S',
	End:     'E',
	Open:    'o',
	Closed:  'x',
	Path:    '*',
}

// Rune is the layout character for t, '?' for unknown tags.
func (t Tag) Rune() byte {
	if ch, ok := tagRunes[t]; ok {
		return ch
	}
	return '?'
}

// ParseLayout reads a square board, one line per row: '.' empty, '#' wall,
// 'S' start, 'E' end. Blank lines are skipped.
func ParseLayout(reader io.Reader, width int) (*Board, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	lines := make([]string, 0)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			continue
		}
		lines = append(lines, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	rows := len(lines)
	if rows == 0 {
		return nil, fmt.Errorf("%w: empty", ErrLayout)
	}
	if width <= 0 {
		width = rows
	}

	b := NewBoard(rows, width)
	for r, line := range lines {
		if len(line) != rows {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrLayout, r, len(line), rows)
		}
		for c := 0; c < len(line); c++ {
			p := Pos{Row: r, Col: c}
			cell := b.Grid.CellAt(r, c)
			switch line[c] {
			case '.':
			case '#':
				cell.MakeWall()
			case 'S':
				if b.start != nil {
					return nil, fmt.Errorf("%w: second start at (%d,%d)", ErrLayout, r, c)
				}
				b.start = &p
				cell.MakeStart()
			case 'E':
				if b.end != nil {
					return nil, fmt.Errorf("%w: second end at (%d,%d)", ErrLayout, r, c)
				}
				b.end = &p
				cell.MakeEnd()
			default:
				return nil, fmt.Errorf("%w: unknown cell %q at (%d,%d)", ErrLayout, line[c], r, c)
			}
		}
	}
	return b, nil
}

// String renders the board in the layout format, with 'o' open, 'x' closed
// and '*' path cells.
func (b *Board) String() string {
	var sb strings.Builder
	g := b.Grid
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Rows; c++ {
			sb.WriteByte(g.CellAt(r, c).Tag.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
