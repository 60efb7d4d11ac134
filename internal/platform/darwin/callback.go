//go:build darwin && cgo

package darwin

/*
#include <stdint.h>
*/
import "C"

//export goKeyTapEvent
func goKeyTapEvent(ch C.uint32_t, flags C.uint64_t) C.int {
	tapMu.Lock()
	t := activeTap
	tapMu.Unlock()
	if t == nil {
		return 0
	}
	if t.deliver(rune(ch), uint64(flags)) {
		return 1
	}
	return 0
}
