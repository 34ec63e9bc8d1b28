//go:build micromap_opt_cachelinesize_128

package micromap

// CacheLineSize is pinned to 128 bytes by the micromap_opt_cachelinesize_128 build tag.
const CacheLineSize uintptr = 128
