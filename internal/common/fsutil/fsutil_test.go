package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home) // windows

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp", "/tmp"},
		{"relative/path", "relative/path"},
		{"~", home},
		{"~/logs/agency.log", filepath.Join(home, "logs", "agency.log")},
		{"~otheruser/x", "~otheruser/x"},
	}
	for _, c := range cases {
		got, err := ExpandHome(c.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ExpandHome(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !PathExists(file) {
		t.Fatalf("expected %q to exist", file)
	}
	if !PathExists(dir) {
		t.Fatalf("expected dir %q to exist", dir)
	}
	if PathExists(filepath.Join(dir, "absent")) {
		t.Fatalf("expected absent path to not exist")
	}
}
