package shapes

//errenum:derive
type Record struct {
	Code int
}

//errenum:derive
type Generic[T any] interface {
	error
	generic(T)
}

//errenum:derive
type Loose interface{}

// Selected is only requested by name.
type Selected interface {
	error
	selected()
}

//errenum:without_catchall
//errenum:bogus trailing words are ignored
type SelectedPtr struct{ error }

type SelectedPlain struct {
	Reason string
	Code   int
}

type SelectedAlias = SelectedPlain

type selectedHidden struct{ error }

type SelectedNamed struct {
	Err error
}

func (*SelectedPtr) selected() {}

func (SelectedPlain) selected()      {}
func (SelectedPlain) Error() string { return "plain" }

func (selectedHidden) selected() {}

func (SelectedNamed) selected()        {}
func (e SelectedNamed) Error() string { return e.Err.Error() }

// Unwrap is declared by hand.
func (e selectedHidden) Unwrap() error { return e.error }

var _, sentinel = 0, 1

const Version = "1"
