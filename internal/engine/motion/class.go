package motion

import "unicode"

// Class partitions characters for word motions.
type Class uint8

const (
	// NonWord covers punctuation, whitespace and symbols. A run of them is
	// one token, so "+= " is crossed in a single word motion.
	NonWord Class = iota
	// Word covers letters, digits and underscore.
	Word
)

// String returns the class name.
func (c Class) String() string {
	if c == Word {
		return "word"
	}
	return "non-word"
}

// asciiClass is the lookup table for the ASCII range.
var asciiClass [128]Class

func init() {
	for r := 'a'; r <= 'z'; r++ {
		asciiClass[r] = Word
	}
	for r := 'A'; r <= 'Z'; r++ {
		asciiClass[r] = Word
	}
	for r := '0'; r <= '9'; r++ {
		asciiClass[r] = Word
	}
	asciiClass['_'] = Word
}

// ClassOf returns the class of r. Outside ASCII, letters and digits are
// word characters.
func ClassOf(r rune) Class {
	if r >= 0 && r < 128 {
		return asciiClass[r]
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return Word
	}
	return NonWord
}

// IsWord reports whether r is a word character.
func IsWord(r rune) bool {
	return ClassOf(r) == Word
}
