package replay

import (
	"errors"

	"github.com/jamesbachini/typezero/core/types"
	"github.com/jamesbachini/typezero/crypto"
)

// Prompt normalization errors.
var (
	ErrPromptNotASCII = errors.New("replay: prompt must be ASCII")
)

// NormalizePrompt canonicalizes a raw prompt string: letters are
// lower-cased, runs of whitespace collapse to single spaces, and leading or
// trailing space is dropped. The prompt's identity for binding purposes is
// always the SHA-256 of this normalized byte form, never of the raw string.
func NormalizePrompt(input string) ([]byte, error) {
	out := make([]byte, 0, len(input))
	inSpace := true
	for i := 0; i < len(input); i++ {
		b := input[i]
		if b > 0x7F {
			return nil, ErrPromptNotASCII
		}
		if isASCIIWhitespace(b) {
			if !inSpace {
				out = append(out, ' ')
				inSpace = true
			}
			continue
		}
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		out = append(out, b)
		inSpace = false
	}
	if n := len(out); n > 0 && out[n-1] == ' ' {
		out = out[:n-1]
	}
	return out, nil
}

// PromptHash returns the SHA-256 of the normalized prompt bytes.
func PromptHash(normalized []byte) types.Hash {
	return crypto.SHA256Hash(normalized)
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
