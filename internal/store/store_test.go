package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "profiles.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetProfile(t *testing.T) {
	s := setupTestStore(t)

	data := json.RawMessage(`{"full_name":"Ada Lovelace","skills":["python","go"]}`)
	saved, err := s.SaveProfile("Data Science", data)
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("SaveProfile() returned empty ID")
	}
	if saved.Name != "Data Science" {
		t.Errorf("Name = %q, want %q", saved.Name, "Data Science")
	}

	got, err := s.GetProfile("Data Science")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.ID != saved.ID {
		t.Errorf("GetProfile() ID = %q, want %q", got.ID, saved.ID)
	}
	if string(got.Data) != string(data) {
		t.Errorf("GetProfile() data = %s, want %s", got.Data, data)
	}
}

func TestSaveProfileEmptyNameDefaults(t *testing.T) {
	s := setupTestStore(t)

	saved, err := s.SaveProfile("", json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if saved.Name != "Default" {
		t.Errorf("Name = %q, want %q", saved.Name, "Default")
	}
}

func TestSaveProfileInvalidJSON(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.SaveProfile("Broken", json.RawMessage(`{not json`)); err == nil {
		t.Error("SaveProfile() with invalid JSON should fail")
	}
}

func TestSaveProfileReplacePreservesIdentity(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.SaveProfile("Default", json.RawMessage(`{"v":1}`))
	if err != nil {
		t.Fatalf("first SaveProfile() error = %v", err)
	}
	second, err := s.SaveProfile("Default", json.RawMessage(`{"v":2}`))
	if err != nil {
		t.Fatalf("second SaveProfile() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("replace changed ID: %q -> %q", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("replace changed CreatedAt")
	}

	got, err := s.GetProfile("Default")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if string(got.Data) != `{"v":2}` {
		t.Errorf("data = %s, want the replaced blob", got.Data)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetProfile("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProfile() error = %v, want ErrNotFound", err)
	}
}

func TestListProfilesSorted(t *testing.T) {
	s := setupTestStore(t)

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := s.SaveProfile(name, json.RawMessage(`{}`)); err != nil {
			t.Fatalf("SaveProfile(%q) error = %v", name, err)
		}
	}

	profiles, err := s.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("len = %d, want 3", len(profiles))
	}
	want := []string{"Alpha", "Mid", "Zeta"}
	for i, p := range profiles {
		if p.Name != want[i] {
			t.Errorf("profiles[%d].Name = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestListProfilesEmpty(t *testing.T) {
	s := setupTestStore(t)

	profiles, err := s.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("len = %d, want 0", len(profiles))
	}
}

func TestDeleteProfile(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.SaveProfile("Gone", json.RawMessage(`{}`)); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := s.DeleteProfile("Gone"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	if _, err := s.GetProfile("Gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProfile() after delete error = %v, want ErrNotFound", err)
	}
}

func TestDeleteProfileNotFound(t *testing.T) {
	s := setupTestStore(t)

	if err := s.DeleteProfile("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteProfile() error = %v, want ErrNotFound", err)
	}
}
