package buffer

// bracketPairs maps each bracket character to its partner.
var bracketPairs = map[rune]rune{
	'(': ')',
	')': '(',
	'{': '}',
	'}': '{',
	'[': ']',
	']': '[',
}

// openBrackets is the set of opening bracket characters.
var openBrackets = map[rune]bool{
	'(': true,
	'{': true,
	'[': true,
}

// FindMatchingBracket looks at the character immediately before pos and,
// if it is a bracket, returns the position of its partner. The search
// crosses rows and honours nesting. Supports: () {} []
func (d *Document) FindMatchingBracket(pos Position) (Position, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	pos = d.clip(pos)
	if pos.Column == 0 {
		return Position{}, false
	}

	line := []rune(d.lines[pos.Row])
	ch := line[pos.Column-1]
	partner, ok := bracketPairs[ch]
	if !ok {
		return Position{}, false
	}

	if openBrackets[ch] {
		return d.scanForward(ch, partner, pos.Row, pos.Column)
	}
	return d.scanBackward(ch, partner, pos.Row, pos.Column-2)
}

// scanForward searches for partner starting at (row, column).
func (d *Document) scanForward(ch, partner rune, row, column int) (Position, bool) {
	depth := 1
	for ; row < len(d.lines); row++ {
		line := []rune(d.lines[row])
		for ; column < len(line); column++ {
			switch line[column] {
			case ch:
				depth++
			case partner:
				depth--
				if depth == 0 {
					return Position{Row: row, Column: column}, true
				}
			}
		}
		column = 0
	}
	return Position{}, false
}

// scanBackward searches for partner starting at (row, column) and moving
// toward the document start.
func (d *Document) scanBackward(ch, partner rune, row, column int) (Position, bool) {
	depth := 1
	for ; row >= 0; row-- {
		line := []rune(d.lines[row])
		if column >= len(line) {
			column = len(line) - 1
		}
		for ; column >= 0; column-- {
			switch line[column] {
			case ch:
				depth++
			case partner:
				depth--
				if depth == 0 {
					return Position{Row: row, Column: column}, true
				}
			}
		}
		column = 1 << 30
	}
	return Position{}, false
}
