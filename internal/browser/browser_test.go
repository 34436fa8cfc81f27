package browser

import "testing"

func TestOpenRejectsNonHTTP(t *testing.T) {
	tests := []struct {
		link    string
		wantErr bool
	}{
		{"https://example.com/article", false},
		{"http://example.com", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"", true},
	}

	for _, tt := range tests {
		err := Open(tt.link)
		if tt.wantErr && err == nil {
			t.Errorf("Open(%q): expected error, got nil", tt.link)
		}
		// Valid URLs may still fail to launch in headless test environments;
		// only the scheme validation is asserted here.
	}
}
