package diagnostics

type Code struct{ N int }

func (c *Code) Error() string { return "code" }

//errenum:derive // want `\[EE002\] no variant carrying the opaque-error type error was found`
type Missing interface {
	error
	missing()
}

type MissingCode struct{ *Code }

func (MissingCode) missing() {}

//errenum:derive // want `\[EE001\] errenum applies only to tagged unions`
type Record struct{}

//errenum:derive // want `\[EE003\] variants TwiceA, TwiceB all carry`
type Twice interface {
	error
	twice()
}

type TwiceA struct{ error }

func (TwiceA) twice() {}

type TwiceB struct{ error }

func (TwiceB) twice() {}

//errenum:derive
type Plain interface {
	error
	plain()
}

type PlainCode struct{ *Code } // want `\[EE004\] inner type \*Code is not a tagged union`

func (PlainCode) plain() {}

type PlainOther struct{ error }

func (PlainOther) plain() {}
