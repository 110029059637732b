package broadphase2d

import "fmt"

// Debug gates precondition checks throughout the package, mirroring the
// classic b2DEBUG switch. Turning it off trusts the caller instead of
// paying for the check.
var Debug = true

func assertf(cond bool, format string, args ...any) {
	if !Debug {
		return
	}
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
