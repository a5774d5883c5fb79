package common

import "testing"

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{in: []string{"06:10", "06:00"}, want: "06:10"},
		{in: []string{"", "06:00"}, want: "06:00"},
		{in: []string{"", ""}, want: ""},
		{in: nil, want: ""},
	}
	for _, tt := range tests {
		if got := FirstNonEmpty(tt.in...); got != tt.want {
			t.Errorf("FirstNonEmpty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
