package sanitizer

import (
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trimAndLower(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// NormalizeEmail is applied to requester identities before they are stored.
// It does not check the address format.
func NormalizeEmail(email string) string {
	p := Pipeline{
		stripControl,
		trimAndLower,
	}
	return p.Apply(email)
}

// Requester picks the first non-empty normalized identity, or fallback.
func Requester(fallback string, candidates ...string) string {
	for _, c := range candidates {
		if s := NormalizeEmail(c); s != "" {
			return s
		}
	}
	return fallback
}
