package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
	bookmarkRepository repositories.BookmarkRepository
	reactionRepository repositories.ReactionRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	bookmarkRepo repositories.BookmarkRepository,
	reactionRepo repositories.ReactionRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:     postRepo,
		userRepository:     userRepo,
		bookmarkRepository: bookmarkRepo,
		reactionRepository: reactionRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedPost is a post with author info and user-specific flags
type EnrichedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	IsBookmarked bool               `json:"is_bookmarked"`
	Reactions    map[string]int64   `json:"reactions,omitempty"`
}

// GetFeed returns cursor-paginated posts visible to the current user: own
// posts, public posts, and posts by followed authors.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}

	p := pageParams(c, 20, 50)
	posts, page, err := h.postRepository.GetFeed(currentUserID, p)
	if err != nil {
		return err
	}

	// Resolve authors once per distinct id
	authorMap := make(map[uint]models.UserCompact)
	for _, post := range posts {
		if _, ok := authorMap[post.AuthorID]; ok {
			continue
		}
		if user, err := h.userRepository.GetUserByID(post.AuthorID); err == nil {
			authorMap[post.AuthorID] = user.ToCompact()
		}
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, post := range posts {
		bookmarked, _ := h.bookmarkRepository.IsBookmarked(currentUserID, post.ID)
		counts, _ := h.reactionRepository.GetReactionCounts(post.ID)
		enriched[i] = EnrichedPost{
			Post:         post,
			Author:       authorMap[post.AuthorID],
			IsBookmarked: bookmarked,
			Reactions:    counts,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":       enriched,
		"nextCursor":  page.NextCursor,
		"hasNextPage": page.HasNextPage,
	})
}
