package vkboot

import (
	"unsafe"
)

var end = "\x00"
var endChar byte = '\x00'

// ToBytes will take an unsafe.Pointer and length in bytes and convert it
// to a byte slice
func ToBytes(ptr unsafe.Pointer, lenInBytes int) []byte {
	const m = 0x7fffffff
	return (*[m]byte)(ptr)[:lenInBytes]
}

// safeString ensures a string is null terminated as required by the C API
func safeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != endChar {
		return s + end
	}
	return s
}

func safeStrings(list []string) []string {
	for i := range list {
		list[i] = safeString(list[i])
	}
	return list
}

// unwrapString trims the null terminator so names read back from the C API
// can be compared against plain Go strings
func unwrapString(s string) string {
	for len(s) > 0 && s[len(s)-1] == endChar {
		s = s[:len(s)-1]
	}
	return s
}
