package utils

import "testing"

func TestCleanFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"01_some-song.mp3", "01 some song"},
		{"music/album/Track__Two.flac", "Track Two"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := CleanFilename(tt.in); got != tt.want {
			t.Errorf("CleanFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrimLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Title\n", "Title"},
		{"Title\r\n", "Title"},
		{"  spaced  \n", "  spaced  "},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TrimLine(tt.in); got != tt.want {
			t.Errorf("TrimLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefault(t *testing.T) {
	if got := Default("  ", "Unknown Artist"); got != "Unknown Artist" {
		t.Errorf("Default(blank) = %q", got)
	}
	if got := Default(" Queen ", "Unknown Artist"); got != "Queen" {
		t.Errorf("Default(Queen) = %q", got)
	}
}
