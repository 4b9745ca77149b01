package validation

import "fmt"

// SetupError reports a missing or unreadable bundle input. Setup errors
// abort the whole run before any rule evaluation happens, unlike content
// violations which are always collected in full.
type SetupError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SetupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("setup error: %s: %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("setup error: %s: %s", e.Message, e.Path)
}

func (e *SetupError) Unwrap() error {
	return e.Cause
}
