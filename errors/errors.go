package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrSinkBackpressure = fmt.Errorf("sink buffer full")
)
