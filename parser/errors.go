package parser

import (
	"errors"
	"fmt"
)

// Sentinel parse errors, one per failure the parsing algorithm names.
var (
	// ErrFileNotFound means the document's backing ConfigSource had
	// nothing to load.
	ErrFileNotFound = errors.New("parser: configuration document not found")

	// ErrIllegalContent means the document's bytes could not be
	// unmarshaled as the expected surface syntax.
	ErrIllegalContent = errors.New("parser: illegal document content")

	// ErrEmpty means the document parsed but contained nothing.
	ErrEmpty = errors.New("parser: empty document")

	// ErrStartWord means the document did not open with the expected
	// sentinel root key.
	ErrStartWord = errors.New("parser: missing sentinel root key")
)

// NoNameAttrError reports a task entry missing its required name field.
type NoNameAttrError struct{ Key string }

func (e *NoNameAttrError) Error() string {
	return fmt.Sprintf("parser: task %q missing required %q attribute", e.Key, "name")
}

// NotFoundPrecursorError reports a task's after list naming an unknown
// task key.
type NotFoundPrecursorError struct {
	Key       string
	Precursor string
}

func (e *NotFoundPrecursorError) Error() string {
	return fmt.Sprintf("parser: task %q names unknown precursor %q", e.Key, e.Precursor)
}

// NoScriptAttrError reports a task with neither a supplied Action nor a
// cmd field to build a default one from.
type NoScriptAttrError struct{ Key string }

func (e *NoScriptAttrError) Error() string {
	return fmt.Sprintf("parser: task %q has no action and no %q attribute", e.Key, "cmd")
}
