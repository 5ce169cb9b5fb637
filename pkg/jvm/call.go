package jvm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Invoker runs static toolkit methods. *Runtime talks to a real JVM;
// SimRuntime answers from memory.
type Invoker interface {
	Invoke(ctx context.Context, call Call) (*Result, error)
}

// ArgKind is the Java parameter type of an argument.
type ArgKind uint8

const (
	ArgString ArgKind = iota // java.lang.String
	ArgInt                   // int
)

// Arg is a primitive argument passed to a static method.
type Arg struct {
	Kind ArgKind
	Str  string
	Int  int
}

// StringArg wraps a java.lang.String argument.
func StringArg(s string) Arg {
	return Arg{Kind: ArgString, Str: s}
}

// IntArg wraps an int argument.
func IntArg(i int) Arg {
	return Arg{Kind: ArgInt, Int: i}
}

func (a Arg) String() string {
	if a.Kind == ArgInt {
		return strconv.Itoa(a.Int)
	}
	return strconv.Quote(a.Str)
}

// Call identifies one static method invocation.
type Call struct {
	Class  string
	Method string
	Args   []Arg
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s.%s(%s)", c.Class, c.Method, strings.Join(args, ", "))
}

// Result is what a static method returned. Value is the toString rendering
// of the returned object, Null is set when it returned null or void, and
// Output holds whatever the method printed to System.out.
type Result struct {
	Value  string
	Null   bool
	Output string
}
