//go:build !micromap_opt_cachelinesize_64 && !micromap_opt_cachelinesize_128

package micromap

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the cache line size of the target CPU, used by
// WithCacheLines to size the slot storage.
// It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
