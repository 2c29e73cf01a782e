package participant

// IValidator gates whether a generated identifier candidate becomes the
// persisted identifier. A typical implementation asks a registration server
// whether the candidate may be used, so Validate is allowed to block; the
// manager waits for the decision before branching. There is no timeout around
// the call - a hanging validator stalls the generation procedure, and callers
// who need cancellation must enforce it inside their implementation.
type IValidator interface {
	// Validate returns whether the candidate is accepted. A non-nil error
	// aborts the generation procedure; it does not count as a rejection.
	Validate(id string) (ok bool, err error)
}

// ValidatorFunc adapts a plain function to the IValidator interface.
type ValidatorFunc func(id string) (ok bool, err error)

// Validate implements the IValidator interface.
func (f ValidatorFunc) Validate(id string) (bool, error) {
	return f(id)
}
