package robdd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the errors a Manager can return, independently of the
// message text, so callers can branch on failure category with errors.Is.
type Kind int

const (
	// BadArgument means a caller passed a value outside the domain of the
	// operation: an out-of-range variable index, a malformed handle, a
	// mismatched variable-pair list.
	BadArgument Kind = iota
	// InvariantViolation means an internal consistency check failed, such
	// as a dangling edge found by AssertConsistent. This should never
	// happen from well-formed API use; it indicates a bug in the manager.
	InvariantViolation
	// Exhausted means the manager could not satisfy a request because the
	// node table could not grow any further (Maxnodesize or MaxMemory
	// reached) or the maximum number of variables was reached.
	Exhausted
	// NotFound means a lookup failed: an unknown variable name, or a
	// variable that has been undeclared.
	NotFound
	// InUse means an operation was refused because the target resource
	// (commonly a variable level) still has live references.
	InUse
	// IOError wraps a failure while reading or writing a dump file.
	IOError
)

func (k Kind) String() string {
	switch k {
	case BadArgument:
		return "bad argument"
	case InvariantViolation:
		return "invariant violation"
	case Exhausted:
		return "exhausted"
	case NotFound:
		return "not found"
	case InUse:
		return "in use"
	case IOError:
		return "io error"
	default:
		return "unknown"
	}
}

// kindError pairs a Kind with a message; it is comparable to a Kind via
// errors.Is because Is treats the target as equal whenever its own Kind
// matches, regardless of message or wrapping.
type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string { return e.msg }

// Is lets errors.Is(err, robdd.BadArgument) work: Kind values behave as
// sentinels that match any kindError (or wrapped kindError) of that Kind.
func (e *kindError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.kind
}

// newError builds a *kindError with a formatted message, grounded on the
// dalzilio/rudd pattern of a single seterror helper, generalized to carry a
// classification instead of a sticky manager-wide error field.
func newError(kind Kind, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf("%s: %s", kind, fmt.Sprintf(format, args...))}
}

// wrapError attaches a Kind to an underlying error, for failures that
// originate outside this package (file I/O, JSON decoding). The message is
// formatted with github.com/pkg/errors, but only its text is kept: the
// result carries no stack trace and does not unwrap to the underlying error.
func wrapError(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, msg: errors.Wrapf(err, "%s: %s", kind, fmt.Sprintf(format, args...)).Error()}
}

// Kind lets a Kind satisfy the error interface so it can also be returned
// directly as a sentinel, e.g. `return BadArgument` from a tiny guard.
func (k Kind) Error() string { return k.String() }
