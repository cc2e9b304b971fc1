//go:build !memalloc_patterns

package memalloc

const patternsEnabled = false

func stamp(addr Addr, n Size, pattern byte) {}
