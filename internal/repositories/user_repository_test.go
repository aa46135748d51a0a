package repositories_test

import (
	"testing"

	"github.com/hollowave/hollowave-backend/internal/repositories"
)

func TestMergePreferences_ShallowMerge(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	user := createTestUser(t, db, "alice")

	prefs, err := repo.MergePreferences(user.ID, map[string]any{
		"theme":    "dark",
		"language": "en",
	})
	if err != nil {
		t.Fatalf("first merge failed: %v", err)
	}
	if prefs["theme"] != "dark" || prefs["language"] != "en" {
		t.Errorf("prefs = %v", prefs)
	}

	// A later patch only touches the keys it names
	prefs, err = repo.MergePreferences(user.ID, map[string]any{"theme": "light"})
	if err != nil {
		t.Fatalf("second merge failed: %v", err)
	}
	if prefs["theme"] != "light" {
		t.Errorf("theme = %v, want light", prefs["theme"])
	}
	if prefs["language"] != "en" {
		t.Errorf("language = %v, want preserved en", prefs["language"])
	}

	// Unknown keys pass through opaquely
	prefs, err = repo.MergePreferences(user.ID, map[string]any{"compactMode": true})
	if err != nil {
		t.Fatalf("third merge failed: %v", err)
	}
	if prefs["compactMode"] != true {
		t.Errorf("compactMode = %v, want true", prefs["compactMode"])
	}

	// Nil deletes a key
	prefs, err = repo.MergePreferences(user.ID, map[string]any{"language": nil})
	if err != nil {
		t.Fatalf("delete merge failed: %v", err)
	}
	if _, ok := prefs["language"]; ok {
		t.Error("language key survived nil patch")
	}

	// Round-trip through storage
	stored, err := repo.GetPreferences(user.ID)
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if stored["theme"] != "light" || stored["compactMode"] != true {
		t.Errorf("stored prefs = %v", stored)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewPostgresUserRepository(db)
	user := createTestUser(t, db, "alice")
	other := createTestUser(t, db, "bob")

	updated, err := repo.CompleteOnboarding(user.ID, "Alice A", "alice_a", "https://cdn.example.com/a.png")
	if err != nil {
		t.Fatalf("CompleteOnboarding failed: %v", err)
	}
	if !updated.Onboarded || updated.Username != "alice_a" {
		t.Errorf("user = %+v, want onboarded with username alice_a", updated)
	}

	// Username collision with another user conflicts
	if _, err := repo.CompleteOnboarding(other.ID, "Bob", "alice_a", ""); err == nil {
		t.Fatal("expected conflict on taken username, got nil")
	}

	// Re-onboarding with one's own username is fine
	if _, err := repo.CompleteOnboarding(user.ID, "Alice B", "alice_a", ""); err != nil {
		t.Errorf("re-onboarding with own username failed: %v", err)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewPostgresUserRepository(db)

	if _, err := repo.GetUserByEmail("nobody@example.com"); err == nil {
		t.Fatal("expected not found error, got nil")
	}
}
