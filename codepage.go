package fatreader

import (
	"fmt"
	"unicode/utf8"

	"github.com/tamurashingo/fat-image-reader/checkpoint"
	"golang.org/x/text/encoding/japanese"
)

// DecodePolicy selects what happens with byte sequences which are invalid in the name codepage.
type DecodePolicy uint8

const (
	// PolicyStrict fails with ErrDecode.
	PolicyStrict DecodePolicy = iota
	// PolicyReplace replaces invalid sequences by utf8.RuneError.
	PolicyReplace
)

func (p DecodePolicy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyReplace:
		return "replace"
	default:
		return fmt.Sprintf("DecodePolicy(%d)", uint8(p))
	}
}

// decodeName decodes a trimmed 8.3 name part from Shift_JIS.
//
// The x/text decoder never fails on invalid input but emits utf8.RuneError
// instead, so strict mode has to look for it. Shift_JIS itself has no
// mapping to U+FFFD, so any RuneError comes from invalid input.
func decodeName(raw []byte, policy DecodePolicy) (string, error) {
	if isASCII(raw) {
		return string(raw), nil
	}

	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return "", checkpoint.Wrap(err, ErrDecode)
	}

	if policy == PolicyStrict {
		for i := 0; i < len(decoded); {
			r, size := utf8.DecodeRune(decoded[i:])
			if r == utf8.RuneError {
				return "", checkpoint.Wrap(fmt.Errorf("invalid Shift_JIS sequence in % x", raw), ErrDecode)
			}
			i += size
		}
	}

	return string(decoded), nil
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// trimPadding removes the trailing space padding of a name field.
func trimPadding(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == ' ' {
		end--
	}
	return b[:end]
}
