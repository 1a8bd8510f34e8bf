package fst

import (
	"errors"
	"fmt"
)

// ErrCorrupt is returned when decoding an invalid binary transducer.
var ErrCorrupt = errors.New("fst: corrupt encoding")

// Error describes a structural misuse of the algebra, such as impossible
// closure bounds. Construction functions panic with *Error; callers compiling
// grammars recover it once at the top of their build step.
type Error struct {
	Op  string
	Msg string
}

func (e *Error) Error() string {
	return "fst: " + e.Op + ": " + e.Msg
}

func fail(op, format string, args ...interface{}) {
	panic(&Error{Op: op, Msg: fmt.Sprintf(format, args...)})
}
