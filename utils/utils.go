package utils

import "fmt"

// Assert panics with a formatted message when the condition doesn't hold.
// For programming errors only, never for user input.
func Assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("ASSERT: "+format, args...))
	}
}
