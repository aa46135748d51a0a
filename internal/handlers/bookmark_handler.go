package handlers

import (
	"net/http"

	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles HTTP requests related to bookmarks
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	postRepository     repositories.PostRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, postRepo repositories.PostRepository) *BookmarkHandler {
	return &BookmarkHandler{bookmarkRepository: bookmarkRepo, postRepository: postRepo}
}

// RegisterBookmarkRoutes registers bookmark-related routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/posts/:id/bookmark", h.ToggleBookmark)
	g.GET("/user/bookmarks", h.GetBookmarks)
}

// ToggleBookmark saves the post if unsaved and removes the bookmark otherwise.
func (h *BookmarkHandler) ToggleBookmark(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		return err
	}
	result, err := h.bookmarkRepository.ToggleBookmark(currentUserID, postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "result": string(result)})
}

func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	currentUserID, err := principal(c)
	if err != nil {
		return err
	}
	p := pageParams(c, 20, 50)
	posts, page, err := h.bookmarkRepository.GetBookmarkedPosts(currentUserID, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts":       posts,
		"nextCursor":  page.NextCursor,
		"hasNextPage": page.HasNextPage,
	})
}
