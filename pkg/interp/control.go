package interp

// exitSignal is returned up the call stack by EXIT to unwind every
// enclosing block without going through the diagnostic (*langerr.Error)
// path: EXIT is normal program termination, not a failure.
type exitSignal struct {
	code int32
}

func (exitSignal) Error() string { return "program exited" }

// Exit requests termination of the current Run/Exec call with the given
// exit code, unwinding exactly like a returned error but recognized as
// success by Run. Used by the EXIT builtin.
func Exit(code int32) error {
	return exitSignal{code: code}
}

// ExitCode reports whether err is an exit signal and, if so, its code.
func ExitCode(err error) (int32, bool) {
	if es, ok := err.(exitSignal); ok {
		return es.code, true
	}
	return 0, false
}
