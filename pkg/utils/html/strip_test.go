package html

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>월드컵</b> 일정", "월드컵 일정"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<script>alert(1)</script>날씨", "날씨"},
		{"  a\n\t b  ", "a b"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
