package repository

import "github.com/pashagolub/pgxmock/v4"

// anyArgs returns n pgxmock.AnyArg matchers, for expectations on bulk
// statements where only the argument count is known up front.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}
