package report

import "fmt"

type Kind int

const (
	// ConnectionFailure means the tracker could not be reached or rejected the credentials.
	ConnectionFailure Kind = iota + 1
	// FetchFailure means the worklogs of a user could not be retrieved.
	FetchFailure
	// WriteFailure means the workbook could not be written.
	WriteFailure
)

func (kind Kind) String() string {
	switch kind {
	case ConnectionFailure:
		return "connection failure"
	case FetchFailure:
		return "fetch failure"
	case WriteFailure:
		return "write failure"
	default:
		return fmt.Sprintf("failure %d", int(kind))
	}
}

// Failure aborts a run. Err is the underlying cause.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (failure *Failure) Error() string {
	if failure.Err == nil {
		return failure.Message
	}
	return fmt.Sprintf("%s: %v", failure.Message, failure.Err)
}

func (failure *Failure) Unwrap() error {
	return failure.Err
}
