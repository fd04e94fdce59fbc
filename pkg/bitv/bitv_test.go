package bitv

import "testing"

func TestHasBitSetBit(t *testing.T) {
	words := make([]uint32, 4)
	cases := []int{0, 1, 31, 32, 33, 63, 127}
	for _, k := range cases {
		if HasBit(words, k) {
			t.Fatalf("bit %d set before SetBit", k)
		}
		SetBit(words, k)
		if !HasBit(words, k) {
			t.Fatalf("bit %d not set after SetBit", k)
		}
	}
}

func TestXorBit(t *testing.T) {
	words := make([]uint32, 2)
	SetBit(words, 10)
	XorBit(words, 10)
	if HasBit(words, 10) {
		t.Fatalf("bit 10 still set after XorBit toggle")
	}
	XorBit(words, 10)
	if !HasBit(words, 10) {
		t.Fatalf("bit 10 not set after second XorBit toggle")
	}
}

func TestPopCount(t *testing.T) {
	tests := []struct {
		word uint32
		want int
	}{
		{0, 0},
		{1, 1},
		{0xFFFFFFFF, 32},
		{0xF0F0F0F0, 16},
	}
	for _, tc := range tests {
		if got := PopCount(tc.word); got != tc.want {
			t.Errorf("PopCount(%#x) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestFirstSetBit(t *testing.T) {
	tests := []struct {
		word uint32
		want int
	}{
		{0, -1},
		{1, 0},
		{2, 1},
		{0x80000000, 31},
		{0x00000100, 8},
	}
	for _, tc := range tests {
		if got := FirstSetBit(tc.word); got != tc.want {
			t.Errorf("FirstSetBit(%#x) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestBitWordNum(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{32, 1},
		{33, 2},
		{64, 2},
		{65, 3},
	}
	for _, tc := range tests {
		if got := BitWordNum(tc.n); got != tc.want {
			t.Errorf("BitWordNum(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
