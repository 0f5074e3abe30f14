package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	// Configure both env vars for cross-platform behavior of os.UserHomeDir.
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
	// raw path unaffected
	if got, err := ExpandHome("/tmp"); err != nil || got != "/tmp" {
		t.Fatalf("got %q err=%v", got, err)
	}
	// empty path
	if got, err := ExpandHome(""); err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
	p, err := ExpandHome("~")
	if err != nil || p != home {
		t.Fatalf("expected %q, got %q err=%v", home, p, err)
	}
	exp, err := ExpandHome("~/sub")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if filepath.Base(exp) != "sub" || filepath.Dir(exp) != home {
		t.Fatalf("unexpected expanded path: %q", exp)
	}
}

func TestPathExists(t *testing.T) {
	d := t.TempDir()
	if !PathExists(d) {
		t.Fatalf("expected temp dir to exist")
	}
	if PathExists(filepath.Join(d, "missing")) {
		t.Fatalf("expected missing path to not exist")
	}
}

func TestFindConfig(t *testing.T) {
	empty := t.TempDir()
	withCfg := t.TempDir()
	if got := FindConfig(empty); got != "" {
		t.Fatalf("expected no config, got %q", got)
	}
	// a directory named like a config file is skipped
	if err := os.Mkdir(filepath.Join(withCfg, "lifeline.yaml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := filepath.Join(withCfg, "lifeline.toml")
	if err := os.WriteFile(want, []byte("owner_id=\"x\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := FindConfig(empty, withCfg); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
