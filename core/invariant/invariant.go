// Package invariant provides contract assertions for the compiler front end.
//
// A failed assertion is a bug in the calling code, never a problem with the
// source text being compiled. Lexical errors travel through lexer.Result;
// contract violations panic here and are not meant to be recovered.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func Add(dst, a, b *Int) {
//	    invariant.Precondition(dst != a && dst != b, "destination must not alias an operand")
//	    // ... work ...
//	}
func Precondition(condition bool, format string, args ...any) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
func Postcondition(condition bool, format string, args ...any) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks internal consistency during execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Example:
//
//	invariant.Invariant(borrow == 0, "magnitude subtraction underflowed")
func Invariant(condition bool, format string, args ...any) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if ptr is nil. Only pointer arguments are accepted so the
// check never needs reflection.
func NotNil[T any](ptr *T, name string) {
	if ptr == nil {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

// InRange panics if value is outside [minVal, maxVal].
//
// Example:
//
//	invariant.InRange(line, 0, len(r.LineOffsets)-1, "line")
func InRange(value, minVal, maxVal int, name string) {
	if value < minVal || value > maxVal {
		fail("PRECONDITION", "%s must be in range [%d, %d], got %d",
			name, minVal, maxVal, value)
	}
}

// fail panics with the violation kind, the message and the caller location.
func fail(kind, format string, args ...any) {
	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]any{kind}, args...)...)

	// Skip runtime.Callers, fail and the exported wrapper.
	pc := make([]uintptr, 1)
	if n := runtime.Callers(3, pc); n > 0 {
		frame, _ := runtime.CallersFrames(pc[:n]).Next()
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
