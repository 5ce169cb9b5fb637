package jvm

import (
	"context"
	"sync"
)

// InvokeHook lets a SimRuntime answer calls the way a toolkit would.
type InvokeHook func(call Call) (*Result, error)

// SimRuntime is an in-memory Invoker for tests and dry runs. It records
// every call and answers through OnInvoke; without a hook every method
// returns null.
type SimRuntime struct {
	OnInvoke InvokeHook

	mu    sync.Mutex
	calls []Call
}

// NewSimRuntime constructs a simulator answering through hook.
func NewSimRuntime(hook InvokeHook) *SimRuntime {
	return &SimRuntime{OnInvoke: hook}
}

func (s *SimRuntime) Invoke(ctx context.Context, call Call) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := encodeRequest(0, call); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Class:  call.Class,
		Method: call.Method,
		Args:   append([]Arg(nil), call.Args...),
	})
	s.mu.Unlock()

	if s.OnInvoke != nil {
		return s.OnInvoke(call)
	}
	return &Result{Null: true}, nil
}

// Calls returns a copy of every call seen so far.
func (s *SimRuntime) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// LastCall returns the most recent call.
func (s *SimRuntime) LastCall() (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return Call{}, false
	}
	return s.calls[len(s.calls)-1], true
}
