package exitcode

const (
	Success       = 0
	UsageError    = 1
	InputError    = 2
	ParseError    = 3
	EvaluateError = 4
	OutputError   = 5
	ServeError    = 6
)
