//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

#define MAX_DISPLAYS 16

static int cg_displays(uint32_t *ids, float *bounds, int *count) {
    CGDirectDisplayID list[MAX_DISPLAYS];
    uint32_t n = 0;
    if (CGGetActiveDisplayList(MAX_DISPLAYS, list, &n) != kCGErrorSuccess) {
        return -1;
    }
    for (uint32_t i = 0; i < n; i++) {
        CGRect r = CGDisplayBounds(list[i]);
        ids[i] = list[i];
        bounds[i*4+0] = r.origin.x;
        bounds[i*4+1] = r.origin.y;
        bounds[i*4+2] = r.size.width;
        bounds[i*4+3] = r.size.height;
    }
    *count = (int)n;
    return 0;
}

static uint32_t cg_main_display() {
    return CGMainDisplayID();
}
*/
import "C"

import (
	"fmt"

	"github.com/keypoint/keypointer/internal/platform"
)

// Screens implements platform.ScreenLister over CGGetActiveDisplayList.
type Screens struct{}

// NewScreens returns the CoreGraphics display lister.
func NewScreens() *Screens {
	return &Screens{}
}

func (s *Screens) Screens() ([]platform.Screen, error) {
	var (
		ids    [16]C.uint32_t
		bounds [64]C.float
		count  C.int
	)
	if C.cg_displays(&ids[0], &bounds[0], &count) != 0 {
		return nil, fmt.Errorf("failed to enumerate displays")
	}

	main := uint32(C.cg_main_display())
	out := make([]platform.Screen, 0, int(count))
	for i := 0; i < int(count); i++ {
		id := uint32(ids[i])
		out = append(out, platform.Screen{
			ID:      id,
			X:       int(bounds[i*4+0]),
			Y:       int(bounds[i*4+1]),
			Width:   int(bounds[i*4+2]),
			Height:  int(bounds[i*4+3]),
			Primary: id == main,
		})
	}
	return out, nil
}
