package bufferpool

import "unsafe"

func reinterpretSlice[Old, New any](s []Old) []New {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*New)(unsafe.Pointer(&s[0])), len(s))
}
