package selector

// ErrorKind discriminates builder contract violations so callers can switch
// on failure kind without string matching.
type ErrorKind int

const (
	// ErrorKindUniqueness - element, id or pseudo-element appended twice.
	ErrorKindUniqueness ErrorKind = iota
	// ErrorKindOrder - part appended out of canonical rank order.
	ErrorKindOrder
)

// Error is a builder contract violation. The message texts are fixed and
// intentionally match the original coursework wording, misspelling included.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

// The closed set of builder failures. Both are raised at the offending append
// call, never at stringify time, and are matchable with errors.Is.
var (
	ErrDuplicatePart = &Error{
		Kind: ErrorKindUniqueness,
		msg:  "Element, id and pseudo-element should not occur more then one time inside the selector",
	}
	ErrOutOfOrder = &Error{
		Kind: ErrorKindOrder,
		msg:  "Selector parts should be arranged in the following order: element, id, class, attribute, pseudo-class, pseudo-element",
	}
)
