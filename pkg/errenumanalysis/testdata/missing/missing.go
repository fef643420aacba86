package missing

type Code struct{ N int }

func (c *Code) Error() string { return "code" }

//errenum:derive // want `errenum_gen.go is missing; run errenum`
type Failure interface {
	error
	failure()
}

//errenum:without_catchal // want `\[EW001\] unknown marker //errenum:without_catchal is ignored`
//errenum:without_anyhow
type FailureCode struct{ *Code }

func (FailureCode) failure() {}

type FailureOther struct{ error }

func (FailureOther) failure() {}
