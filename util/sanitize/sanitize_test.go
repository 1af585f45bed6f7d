package sanitize

import "testing"

func TestForTagClass(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"simple tag", "hello", "tag_hello"},
		{"with space", "a b", "tag_a_b"},
		{"multiple spaces", "message passing interface", "tag_message_passing_interface"},
		{"with dots", "v1.2", "tag_v12"},
		{"case preserved", "MPI", "tag_MPI"},
		{"special characters", "c++ & co", "tag_c_co"},
		{"consecutive spaces", "a  b", "tag_a_b"},
		{"leading/trailing spaces", " trimmed ", "tag_trimmed"},
		{"hyphens kept", "floating-point", "tag_floating-point"},
		{"only invalid characters", "@#!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ForTagClass(tt.input)
			if result != tt.expected {
				t.Errorf("ForTagClass(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestForSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"simple string", "hello", "hello"},
		{"with spaces", "Hello World", "hello-world"},
		{"special characters", "Exercise 3: Debugging!", "exercise-3-debugging"},
		{"multiple hyphens", "a---b", "a-b"},
		{"leading/trailing hyphens", "-hello-", "hello"},
		{"very long name", "this is a very long page title that should be cut off somewhere sensible", "this-is-a-very-long-page-title-that-should-be-cut"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ForSlug(tt.input)
			if result != tt.expected {
				t.Errorf("ForSlug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
