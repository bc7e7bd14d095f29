package utils

import "testing"

func TestNormalizeContainerID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"mscu1234567", "MSCU1234567"},
		{" MSCU 123-4567 ", "MSCU1234567"},
		{"MSCU-123-4567", "MSCU1234567"},
		{"", ""},
	}

	for _, c := range cases {
		if got := NormalizeContainerID(c.in); got != c.want {
			t.Errorf("NormalizeContainerID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsContainerID(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"MSCU1234567", true},
		{"mscu1234567", true},
		{"MSCU123456", false},
		{"MSCU12345678", false},
		{"MSC11234567", false},
		{"1234MSCU567", false},
		{"", false},
	}

	for _, c := range cases {
		if got := IsContainerID(c.in); got != c.valid {
			t.Errorf("IsContainerID(%q) = %v, want %v", c.in, got, c.valid)
		}
	}
}

func TestDeriveOwnerFromContainerID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"MSCU1234567", "MSC"},
		{"MAEU1234567", "Maersk"},
		{"HLCU1234567", "Hapag-Lloyd"},
		// Unknown prefixes fall back to the prefix itself.
		{"XXXU1234567", "XXXU"},
		{"abc", ""},
	}

	for _, c := range cases {
		if got := DeriveOwnerFromContainerID(c.in); got != c.want {
			t.Errorf("DeriveOwnerFromContainerID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
