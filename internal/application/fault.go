package application

import "errors"

// Fault is a domain soft-fail: the operation did not succeed and Error() is a
// message safe to show to the caller. Anything that is not a Fault is an
// infrastructure failure and must be logged server-side and reported to the
// client generically.
type Fault struct {
	msg string
}

func NewFault(msg string) *Fault { return &Fault{msg: msg} }

func (f *Fault) Error() string { return f.msg }

// AsFault extracts a Fault from err, if there is one.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
