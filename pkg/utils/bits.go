package utils

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

const BitsPerByte = 8

// Returns the size in bits of n bytes
func Bits(bytes int) int {
	return bytes * BitsPerByte
}

// Returns the size in bytes of values of a type
func Sizeof[T any]() int {
	var val T
	return int(unsafe.Sizeof(val))
}

// Returns the size in bits of values of a type
func SizeofBits[T any]() int {
	return Bits(Sizeof[T]())
}

// Returns an all ones bitmask of n bits of the given unsigned integer type.
// Asking for as many bits as the type holds (or more) returns a full mask.
func AllOnes[T constraints.Unsigned](bits int) T {
	if bits >= SizeofBits[T]() {
		return ^T(0)
	}

	return (T(1) << bits) - T(1)
}

// Keeps the n least significant bits of a value, clearing the rest
func Truncate[T constraints.Unsigned](value T, bits int) T {
	return value & AllOnes[T](bits)
}

// Returns the number of bits needed to address n distinct values (n must be a power of two)
func Log2[T constraints.Unsigned](n T) int {
	bits := 0

	for n > 1 {
		n >>= 1
		bits++
	}

	return bits
}
