package util

import (
	"errors"
	"testing"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		n    int
		want string
	}{
		{name: "default length truncates", id: "0b8f3a52-2c1e-4b7a-9d55-5d2f4c1e9a10", n: 0, want: "0b8f3a52"},
		{name: "negative uses default", id: "0b8f3a52-2c1e-4b7a-9d55-5d2f4c1e9a10", n: -1, want: "0b8f3a52"},
		{name: "explicit length", id: "0b8f3a52-2c1e", n: 4, want: "0b8f"},
		{name: "length equals ID", id: "abcdefgh", n: 8, want: "abcdefgh"},
		{name: "length longer than ID", id: "abc", n: 20, want: "abc"},
		{name: "empty ID", id: "", n: 8, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortID(tt.id, tt.n); got != tt.want {
				t.Errorf("ShortID(%q, %d) = %q, want %q", tt.id, tt.n, got, tt.want)
			}
		})
	}
}

func TestResolvePrefix(t *testing.T) {
	ids := []string{
		"0b8f3a52-2c1e-4b7a-9d55-5d2f4c1e9a10",
		"0b8f9911-1111-4222-8333-444455556666",
		"7c1d2e3f-aaaa-4bbb-9ccc-dddddddddddd",
		"abc",
		"abcd",
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "full id", input: ids[0], want: ids[0]},
		{name: "unique prefix", input: "7c1d", want: ids[2]},
		{name: "case-insensitive prefix", input: "7C1D", want: ids[2]},
		{name: "exact match beats longer prefix match", input: "abc", want: "abc"},
		{name: "ambiguous prefix", input: "0b8f", wantErr: ErrAmbiguousID},
		{name: "no match", input: "ffff", wantErr: ErrNotFound},
		{name: "empty input", input: "  ", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePrefix(tt.input, ids)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolvePrefix(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePrefix(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolvePrefix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
