package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	ts := time.Date(2026, 10, 19, 9, 5, 3, 0, time.UTC)
	if got := FileName(ts); got != "2026-10-19_09-05-03.tm2" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	coll, err := Build(cableOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "out")
	path, err := WriteFile(coll, dir, "rack/patch-01")
	if err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if filepath.Base(path) != "rack-patch-01.tm2" {
		t.Fatalf("unexpected path %s", path)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	want, _ := Marshal(coll)
	if string(written) != string(want) {
		t.Fatalf("written bytes differ from Marshal output")
	}
}

func TestMarshalNil(t *testing.T) {
	if _, err := Marshal(nil); !errors.Is(err, ErrNilCollection) {
		t.Fatalf("expected ErrNilCollection, got %v", err)
	}
	if _, err := WriteFile(nil, t.TempDir(), "x"); !errors.Is(err, ErrNilCollection) {
		t.Fatalf("expected ErrNilCollection, got %v", err)
	}
}

func TestSafeName(t *testing.T) {
	cases := map[string]string{
		"patch-01":     "patch-01.tm2",
		"patch-01.tm2": "patch-01.tm2",
		"a/b":          "a-b.tm2",
		`a\b`:          "a-b.tm2",
		" rack/door ":  "rack-door.tm2",
	}
	for in, want := range cases {
		if got := SafeName(in); got != want {
			t.Fatalf("SafeName(%q) = %q, want %q", in, got, want)
		}
	}
	// "a/b" 与 "a-b" 会落到同一个文件
	if SafeName("a/b") != SafeName("a-b") {
		t.Fatalf("expected a/b and a-b to collide")
	}
}
