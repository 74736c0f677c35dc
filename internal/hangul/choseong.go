package hangul

import (
	"errors"
	"fmt"
)

const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	jungseongSize = 21
	jongseongSize = 28
)

// ErrUnsupportedConsonant is matched by every error returned from Expand.
var ErrUnsupportedConsonant = errors.New("unsupported initial consonant")

// UnsupportedConsonantError reports the input that Expand rejected.
type UnsupportedConsonantError struct {
	Input string
}

func (e *UnsupportedConsonantError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedConsonant, e.Input)
}

func (e *UnsupportedConsonantError) Is(target error) bool {
	return target == ErrUnsupportedConsonant
}

type choseong struct {
	jamo  rune
	index int
}

// Double consonants (ㄲ ㄸ ㅃ ㅆ ㅉ) are intentionally absent.
var choseongTable = [...]choseong{
	{'ㄱ', 0},
	{'ㄴ', 2},
	{'ㄷ', 3},
	{'ㄹ', 5},
	{'ㅁ', 6},
	{'ㅂ', 7},
	{'ㅅ', 9},
	{'ㅇ', 11},
	{'ㅈ', 12},
	{'ㅊ', 14},
	{'ㅋ', 15},
	{'ㅌ', 16},
	{'ㅍ', 17},
	{'ㅎ', 18},
}

func lookup(s string) (int, bool) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, false
	}
	for _, c := range choseongTable {
		if c.jamo == r[0] {
			return c.index, true
		}
	}
	return 0, false
}

// Expand returns the 21 syllable blocks (one per medial vowel, no final
// consonant) that start with the given initial consonant, in code point order.
func Expand(consonant string) ([]string, error) {
	index, ok := lookup(consonant)
	if !ok {
		return nil, &UnsupportedConsonantError{Input: consonant}
	}

	out := make([]string, 0, jungseongSize)
	for v := 0; v < jungseongSize; v++ {
		cp := syllableBase + (index*jungseongSize+v)*jongseongSize
		out = append(out, string(rune(cp)))
	}
	return out, nil
}

// IsChoseong reports whether s is one of the consonants Expand accepts.
func IsChoseong(s string) bool {
	_, ok := lookup(s)
	return ok
}

// Supported lists the accepted consonants in table order.
func Supported() []string {
	out := make([]string, len(choseongTable))
	for i, c := range choseongTable {
		out[i] = string(c.jamo)
	}
	return out
}
