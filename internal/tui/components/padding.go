package components

import (
	"strings"
	"sync"
)

const padCacheMax = 128

var (
	padOnce  sync.Once
	padCache [padCacheMax + 1]string
)

// Pad returns n spaces. Small widths come from a cache since the dialogs
// call this per row on every render.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n > padCacheMax {
		return strings.Repeat(" ", n)
	}
	padOnce.Do(func() {
		for i := 1; i <= padCacheMax; i++ {
			padCache[i] = strings.Repeat(" ", i)
		}
	})
	return padCache[n]
}
