package container

import "unsafe"

// unsafeReinterpretSlice reinterprets a []Old chunk as a []New chunk of
// the same length, for GetAttributeForceType. The caller has already
// checked that Old and New have identical binary size.
func unsafeReinterpretSlice[Old, New any](s []Old) []New {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*New)(unsafe.Pointer(&s[0])), len(s))
}
