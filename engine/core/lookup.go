package core

import "context"

// StepLookup is the directory contract for finding a step by its reference.
// A miss may be reported either as a nil step or as an error; callers treat
// both the same way and never propagate the error.
type StepLookup interface {
	LookupStep(ctx context.Context, ref string) (*Step, error)
}

// StepLookupFunc adapts a plain function to the StepLookup interface.
type StepLookupFunc func(ctx context.Context, ref string) (*Step, error)

func (f StepLookupFunc) LookupStep(ctx context.Context, ref string) (*Step, error) {
	return f(ctx, ref)
}
