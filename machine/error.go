package machine

import (
	"fmt"

	"github.com/pkg/errors"
)

// Known error conditions. Errors returned by a Machine wrap one of these.
var (
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrAddressRange    = errors.New("address out of range")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrKeyRange        = errors.New("key out of range")
	ErrProgramTooLarge = errors.New("program too large")
)

// Error defines a fatal runtime error.
type Error struct {
	Addr uint16 // Address of the failing instruction.
	Word uint16 // Failing instruction word, if it was fetched.
	Err  error
}

// NewError creates a new error for the instruction at addr, wrapping err
// with the given formatted message.
func NewError(addr, word uint16, err error, f string, argv ...interface{}) *Error {
	return &Error{
		Addr: addr,
		Word: word,
		Err:  errors.Wrapf(err, f, argv...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %04x: %v", e.Addr, e.Word, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
