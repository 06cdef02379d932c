package validators

import "testing"

func TestIsValidPhone(t *testing.T) {
	valid := []string{"09171234567", "09991234567"}
	for _, p := range valid {
		if !IsValidPhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{
		"",
		"0917123456",    // too short
		"091712345678",  // too long
		"08171234567",   // wrong prefix
		"+639171234567", // international format not accepted
		"0917123456a",
	}
	for _, p := range invalid {
		if IsValidPhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}
