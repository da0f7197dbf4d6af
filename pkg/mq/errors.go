package mq

type TempError struct {
	Err error
}

func (e TempError) Error() string {
	return e.Err.Error()
}

func (e TempError) Temporary() bool {
	return true
}

// Temporary wraps an error so the consumer requeues the delivery
// instead of dropping it.
func Temporary(err error) error {
	return TempError{Err: err}
}
