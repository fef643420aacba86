package broken

// Conflict has no catch-all variant.
//
//errenum:derive
type Conflict interface {
	error
	conflict()
}

type ConflictA struct{ *CodeError }

type CodeError struct{ Code int }

func (e *CodeError) Error() string { return "code" }

func (ConflictA) conflict() {}

//errenum:derive
type Record struct{}
