package repositories_test

import (
	"net/http"
	"testing"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
)

func TestToggleReaction_AddThenRemove(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID, "hello", models.VisibilityPublic)

	result, err := repo.ToggleReaction(post.ID, user.ID, "like")
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if result != repositories.ToggleAdded {
		t.Errorf("first toggle = %q, want %q", result, repositories.ToggleAdded)
	}

	result, err = repo.ToggleReaction(post.ID, user.ID, "like")
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if result != repositories.ToggleRemoved {
		t.Errorf("second toggle = %q, want %q", result, repositories.ToggleRemoved)
	}

	// Pair of toggles returns the system to its original state
	var count int64
	db.Model(&models.Reaction{}).Where("post_id = ? AND user_id = ?", post.ID, user.ID).Count(&count)
	if count != 0 {
		t.Errorf("reaction count after toggle pair = %d, want 0", count)
	}
}

func TestToggleReaction_ConcurrentTogglesNeverFail(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID, "hello", models.VisibilityPublic)

	// Every outcome of a racing toggle must be a valid result or a 409;
	// never any other error.
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := repo.ToggleReaction(post.ID, user.ID, "like")
			errs <- err
		}()
	}
	for i := 0; i < 2; i++ {
		err := <-errs
		if err == nil {
			continue
		}
		appErr, ok := apperrors.As(err)
		if !ok || appErr.StatusCode != http.StatusConflict {
			t.Errorf("concurrent toggle error = %v, want nil or 409 Conflict", err)
		}
	}

	var count int64
	db.Model(&models.Reaction{}).Where("post_id = ? AND user_id = ?", post.ID, user.ID).Count(&count)
	if count > 1 {
		t.Errorf("reaction rows = %d, want at most 1", count)
	}
}

func TestToggleReaction_TypesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID, "hello", models.VisibilityPublic)

	if _, err := repo.ToggleReaction(post.ID, user.ID, "like"); err != nil {
		t.Fatalf("toggle like failed: %v", err)
	}
	if _, err := repo.ToggleReaction(post.ID, user.ID, "love"); err != nil {
		t.Fatalf("toggle love failed: %v", err)
	}

	counts, err := repo.GetReactionCounts(post.ID)
	if err != nil {
		t.Fatalf("GetReactionCounts failed: %v", err)
	}
	if counts["like"] != 1 || counts["love"] != 1 {
		t.Errorf("counts = %v, want like=1 love=1", counts)
	}

	// Removing one type leaves the other
	if _, err := repo.ToggleReaction(post.ID, user.ID, "like"); err != nil {
		t.Fatalf("toggle like off failed: %v", err)
	}
	counts, _ = repo.GetReactionCounts(post.ID)
	if counts["like"] != 0 || counts["love"] != 1 {
		t.Errorf("counts after removal = %v, want like=0 love=1", counts)
	}
}

func TestGetReactionsByPostID_IncludesUserSummaries(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	author := createTestUser(t, db, "author")
	reactor := createTestUser(t, db, "reactor")
	post := createTestPost(t, db, author.ID, "hello", models.VisibilityPublic)

	if _, err := repo.ToggleReaction(post.ID, reactor.ID, "wow"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	summaries, err := repo.GetReactionsByPostID(post.ID)
	if err != nil {
		t.Fatalf("GetReactionsByPostID failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0].User.ID != reactor.ID || summaries[0].Type != "wow" {
		t.Errorf("summary = %+v, want user %d type wow", summaries[0], reactor.ID)
	}
}
