// Package bitv provides the word-level bit operations the simulation
// arena is built from: bit access within a little-endian word array,
// population count, and least-significant-set-bit lookup.
package bitv

import "math/bits"

// WordBits is the width of one arena word.
const WordBits = 32

// HasBit reports whether bit k is set across a little-endian word array.
// Bit k lives in word k/WordBits, at position k%WordBits within it.
func HasBit(words []uint32, k int) bool {
	return words[k/WordBits]&(1<<uint(k%WordBits)) != 0
}

// SetBit sets bit k across a little-endian word array.
func SetBit(words []uint32, k int) {
	words[k/WordBits] |= 1 << uint(k%WordBits)
}

// XorBit flips bit k across a little-endian word array.
func XorBit(words []uint32, k int) {
	words[k/WordBits] ^= 1 << uint(k%WordBits)
}

// PopCount returns the Hamming weight of one word.
func PopCount(word uint32) int {
	return bits.OnesCount32(word)
}

// FirstSetBit returns the index of the least significant set bit of word.
// The result is undefined (and returns -1 here, rather than panicking)
// if word is zero; callers must not call this on a zero word per the
// contract in spec section 4.1.
func FirstSetBit(word uint32) int {
	if word == 0 {
		return -1
	}
	return bits.TrailingZeros32(word)
}

// BitWordNum returns ceil(n/WordBits), the number of words needed to
// hold n bits.
func BitWordNum(n int) int {
	return (n + WordBits - 1) / WordBits
}
