package oolong

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeInvalidOperation     = "invalid_operation"
	CodeWrapped              = "wrapped"
	CodeParseError           = "parse_error"
)

// Issue represents a single decode failure entry.
type Issue struct {
	Path    string // JSON Pointer into the document (for example: /pet/name).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: the expected shape, candidate names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"candidates": [...]})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of decode failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// WrapError converts an error into Issues. An error that already carries
// Issues passes through unchanged; anything else is reported under
// CodeWrapped at the given path.
func WrapError(path string, err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{Issue{Path: path, Code: CodeWrapped, Message: err.Error(), Cause: err}}
}

// Rebase prefixes every issue path in err with base, so failures from a child
// decoder surface under the field or index that produced them. Non-Issues
// errors are first wrapped via WrapError.
func Rebase(base string, err error) Issues {
	child := WrapError(base, err)
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// CapturePanic converts a panic into a CodeWrapped failure. It is installed
// with defer around user-supplied functions so that faults surface on the
// error channel instead of unwinding through the caller.
func CapturePanic(err *error) {
	if r := recover(); r != nil {
		cause, _ := r.(error)
		*err = Issues{Issue{Path: "/", Code: CodeWrapped, Message: fmt.Sprintf("panic: %v", r), Cause: cause}}
	}
}
