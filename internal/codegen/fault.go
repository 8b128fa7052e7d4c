package codegen

import "fmt"

// Fault is an internal-consistency failure. Every Fault aborts the whole
// compilation: none of these conditions are recoverable, and any text
// built so far must be discarded by the caller.
type Fault struct {
	Reason string
}

func (f *Fault) Error() string {
	return "codegen fault: " + f.Reason
}

func faultf(format string, args ...any) error {
	return &Fault{Reason: fmt.Sprintf(format, args...)}
}
