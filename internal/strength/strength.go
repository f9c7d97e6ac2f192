// Package strength rates candidate passwords on a coarse scale.
package strength

import "unicode/utf8"

// MinLength is the shortest password that can rate above Weak.
const MinLength = 8

// Rating is a qualitative password strength.
type Rating int

const (
	None Rating = iota
	Weak
	Medium
	Strong
)

func (r Rating) String() string {
	switch r {
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	default:
		return ""
	}
}

// Tooltip is the hint shown next to the password field; empty for None.
func (r Rating) Tooltip() string {
	if r == None {
		return ""
	}
	return "Password Strength: " + r.String()
}

// Classify rates password. Anything shorter than MinLength is Weak whatever
// it contains; longer passwords score by how many of letters, digits and
// symbols (anything that is not an ASCII letter or digit) they mix.
func Classify(password string) Rating {
	if password == "" {
		return None
	}
	if utf8.RuneCountInString(password) < MinLength {
		return Weak
	}

	var letters, digits, symbols bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letters = true
		case r >= '0' && r <= '9':
			digits = true
		default:
			symbols = true
		}
	}

	switch countTrue(letters, digits, symbols) {
	case 3:
		return Strong
	case 2:
		return Medium
	default:
		return Weak
	}
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
