package scrape

import (
	"errors"
	"fmt"
)

var (
	// ErrStructure matches any *StructureError via errors.Is.
	ErrStructure = errors.New("structure error")
	// ErrParse matches any *ParseError via errors.Is.
	ErrParse = errors.New("parse error")
)

// StructureError reports an anchor node that is absent from the markup.
type StructureError struct {
	Anchor string
	Field  string
}

func (e *StructureError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("structure: missing %s", e.Anchor)
	}
	return fmt.Sprintf("structure: %s: missing %s", e.Field, e.Anchor)
}

func (e *StructureError) Is(target error) bool { return target == ErrStructure }

// ParseError reports an anchor whose content could not be converted.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: %s: %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

var (
	errEmpty    = errors.New("empty value")
	errNegative = errors.New("negative value")
	errNotDigit = errors.New("not a digit")
)

func missing(field, anchor string) error {
	return &StructureError{Anchor: anchor, Field: field}
}
