package jvm

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyStarted is returned when a virtual machine has already been
	// started. A JVM cannot be started twice in one process, and xnode keeps
	// the same rule even after Close.
	ErrAlreadyStarted = errors.New("jvm: virtual machine already started")

	// ErrNotStarted is returned when a call is made before Start.
	ErrNotStarted = errors.New("jvm: virtual machine not started")

	// ErrClosed is returned for calls made after Close.
	ErrClosed = errors.New("jvm: virtual machine closed")
)

// ToolkitError carries a failure raised inside the toolkit. Type, Message
// and Trace are exactly what the JVM reported.
type ToolkitError struct {
	Class   string
	Method  string
	Type    string
	Message string
	Trace   string
	Output  string
}

func (e *ToolkitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("jvm: %s.%s: %s", e.Class, e.Method, e.Type)
	}
	return fmt.Sprintf("jvm: %s.%s: %s: %s", e.Class, e.Method, e.Type, e.Message)
}

// IsAssertion reports whether the toolkit failed on a Java assertion, which
// only fires when the VM runs with assertions enabled.
func (e *ToolkitError) IsAssertion() bool {
	return e.Type == "java.lang.AssertionError"
}
