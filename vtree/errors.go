package vtree

import "fmt"

// UsageError reports a soft, non-fatal violation of the keyed-children
// contract: a sibling list where some but not all siblings carry the key
// attribute, or two siblings sharing the same key value. The diff always
// proceeds despite a UsageError (see DiffWithFunctions and Logger);
// it is only surfaced through a Logger, never returned.
type UsageError struct {
	Name    string
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// ErrDuplicateKey reports two keyed siblings sharing a key value.
func ErrDuplicateKey(message string) *UsageError {
	return &UsageError{Name: "DuplicateKeyError", Message: message}
}

// ErrMissingKey reports a keyed sibling list containing an entry without a key.
func ErrMissingKey(message string) *UsageError {
	return &UsageError{Name: "MissingKeyError", Message: message}
}
