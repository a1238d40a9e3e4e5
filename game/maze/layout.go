package maze

// Layout is a maze read from its text form.
type Layout struct {
	Walls []Cell
	// Marks maps every rune other than a wall or blank floor to the floor cells it appears on.
	Marks map[rune][]Cell
}

// ParseLayout reads a maze drawn as text, top row first, in the same orientation as Grid.String.
// '#' and '%' are walls; '.' and ' ' are plain floor; any other rune marks a floor cell.
func ParseLayout(rows ...string) Layout {
	layout := Layout{Marks: make(map[rune][]Cell)}
	height := len(rows)
	for r, row := range rows {
		y := height - 1 - r
		for x, ch := range []rune(row) {
			c := Cell{X: x, Y: y}
			switch ch {
			case '#', '%':
				layout.Walls = append(layout.Walls, c)
			case '.', ' ':
			default:
				layout.Marks[ch] = append(layout.Marks[ch], c)
			}
		}
	}
	return layout
}

// Mark returns the first cell carrying mark ch and whether there was one.
func (l Layout) Mark(ch rune) (Cell, bool) {
	cells := l.Marks[ch]
	if len(cells) == 0 {
		return Cell{}, false
	}
	return cells[0], true
}
