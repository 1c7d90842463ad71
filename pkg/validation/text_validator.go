package validation

import (
	"strings"
	"unicode"

	apperrors "go-mood-analyzer/internal/errors"
)

// TextValidator decides whether request text is missing, blank or usable.
type TextValidator struct{}

// NewTextValidator creates a new text validator
func NewTextValidator() *TextValidator {
	return &TextValidator{}
}

// Validate returns the text and whether it is blank. A nil text is a
// missing input error; blank text is valid and handled by the caller.
func (v *TextValidator) Validate(text *string) (string, bool, error) {
	if text == nil {
		return "", false, apperrors.NewMissingInputError(nil)
	}
	return *text, IsBlank(*text), nil
}

// IsBlank reports whether text is empty or consists only of whitespace,
// including the ASCII information separators U+001C..U+001F.
func IsBlank(text string) bool {
	return strings.TrimFunc(text, isSpace) == ""
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
