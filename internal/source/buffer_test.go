package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	buf, err := NewBuffer("t.src", []byte("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Filename() != "t.src" {
		t.Errorf("Filename() = %q, want %q", buf.Filename(), "t.src")
	}
	if string(buf.Bytes()) != "hello" {
		t.Errorf("Bytes() = %q, want %q", buf.Bytes(), "hello")
	}
	if buf.Len() != 5 {
		t.Errorf("Len() = %d, want 5", buf.Len())
	}
}

func TestNewBuffer_TooLarge(t *testing.T) {
	if _, err := NewBuffer("t.src", make([]byte, MaxSize)); err == nil {
		t.Fatal("expected an error for an input at the size limit")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.src")
	if err := os.WriteFile(path, []byte("package main"), 0o644); err != nil {
		t.Fatal(err)
	}

	buf, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Text() != "package main" {
		t.Errorf("Text() = %q, want %q", buf.Text(), "package main")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.src")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
