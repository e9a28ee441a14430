// ABOUTME: Tests for the badger-backed preference store.
// ABOUTME: Covers defaults, persistence across reopen, and raw key access.
package prefs

import (
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFirstTimeUserDefaultsTrue(t *testing.T) {
	s := openTestStore(t)

	first, err := s.FirstTimeUser()
	if err != nil {
		t.Fatalf("FirstTimeUser failed: %v", err)
	}
	if !first {
		t.Error("missing key should read as first-time user")
	}
}

func TestSetFirstTimeUser(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetFirstTimeUser(false); err != nil {
		t.Fatalf("SetFirstTimeUser failed: %v", err)
	}
	first, err := s.FirstTimeUser()
	if err != nil || first {
		t.Errorf("FirstTimeUser = %v, %v; want false", first, err)
	}

	if err := s.SetFirstTimeUser(true); err != nil {
		t.Fatalf("SetFirstTimeUser failed: %v", err)
	}
	if first, _ := s.FirstTimeUser(); !first {
		t.Error("flag should flip back to true")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SetFirstTimeUser(false); err != nil {
		t.Fatalf("SetFirstTimeUser failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	if first, _ := s.FirstTimeUser(); first {
		t.Error("flag did not survive reopen")
	}
}

func TestGetPutDelete(t *testing.T) {
	s := openTestStore(t)

	type session struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}

	var got session
	found, err := s.Get(KeyAuthSession, &got)
	if err != nil || found {
		t.Fatalf("Get on empty store = %v, %v", found, err)
	}

	want := session{Email: "a@example.com", Token: "t1"}
	if err := s.Put(KeyAuthSession, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	found, err = s.Get(KeyAuthSession, &got)
	if err != nil || !found || got != want {
		t.Errorf("Get = %+v, %v, %v", got, found, err)
	}

	if err := s.Delete(KeyAuthSession); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if found, _ := s.Get(KeyAuthSession, &got); found {
		t.Error("key still present after delete")
	}
	if err := s.Delete(KeyAuthSession); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestGetCorruptValue(t *testing.T) {
	s := openTestStore(t)
	if err := s.Put(KeyFirstTimeUser, "not a bool"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.FirstTimeUser(); err == nil {
		t.Error("expected decode error")
	}
}
