package devices

import "strings"

// ErrorSet defines a list of one or more device errors and is itself an error.
type ErrorSet []error

// Len returns the number of errors in the set.
func (e ErrorSet) Len() int {
	return len(e)
}

// Append adds the given non-nil errors to the set.
func (e *ErrorSet) Append(args ...error) {
	for _, err := range args {
		if err != nil {
			*e = append(*e, err)
		}
	}
}

func (e ErrorSet) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}
