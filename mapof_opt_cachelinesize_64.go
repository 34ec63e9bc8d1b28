//go:build micromap_opt_cachelinesize_64 && !micromap_opt_cachelinesize_128

package micromap

// CacheLineSize is pinned to 64 bytes by the micromap_opt_cachelinesize_64 build tag.
const CacheLineSize uintptr = 64
