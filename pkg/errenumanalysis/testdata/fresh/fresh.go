package fresh

//errenum:derive
type E interface {
	error
	e()
}

type EB struct{ error }

func (EB) e() {}
