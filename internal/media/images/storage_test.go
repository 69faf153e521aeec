package images

import (
	"testing"
)

func TestStorageRoundTrip(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	data := []byte("not really an image but storage doesn't care")
	if err := s.Save("abc.jpg", data); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !s.Exists("abc.jpg") {
		t.Error("expected image to exist")
	}

	got, err := s.Get("abc.jpg")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(data) {
		t.Error("data mismatch")
	}

	hash, err := s.Hash("abc.jpg")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected hex sha256, got %q", hash)
	}
}

func TestStorageDelete_Idempotent(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	if err := s.Save("gone.jpg", []byte("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete("gone.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists("gone.jpg") {
		t.Error("expected image removed")
	}

	// Deleting again is not an error.
	if err := s.Delete("gone.jpg"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestStorage_RejectsTraversal(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	for _, name := range []string{"", "../escape.jpg", "a/b.jpg", "..\\win.jpg"} {
		if err := s.Save(name, []byte("x")); err == nil {
			t.Errorf("expected rejection for %q", name)
		}
		if s.Exists(name) {
			t.Errorf("Exists(%q) should be false", name)
		}
	}
}

func TestNewStorage_EmptyBase(t *testing.T) {
	if _, err := NewStorage(""); err == nil {
		t.Error("expected error for empty base path")
	}
}
