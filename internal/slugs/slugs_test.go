package slugs

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Use Rust", "use-rust"},
		{"Use React for Frontend", "use-react-for-frontend"},
		{"API v2.0 Design", "api-v2-0-design"},
		{"  Multiple   Spaces  ", "multiple-spaces"},
		{"Authentication Mechanism", "authentication-mechanism"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
