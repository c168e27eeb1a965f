//go:build !linux

package crono

func bootTime() (uint64, bool) { return 0, false }
