package utils

import "runtime"

// Stack formats the calling goroutine's stack trace, skipping the given
// number of frames.
func Stack(skip int) []byte {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, 2*len(buf))
	}
}
