package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/hollowave/hollowave-backend/internal/handlers"
	"github.com/hollowave/hollowave-backend/internal/middleware"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/repositories"
	"github.com/hollowave/hollowave-backend/internal/router"
	"github.com/hollowave/hollowave-backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestEnv builds an echo app over an in-memory database with a stub auth
// middleware that injects the given user as the principal.
func newTestEnv(t *testing.T) (*echo.Echo, *echo.Group, *gorm.DB, *uint) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.MediaAttachment{},
		&models.Reaction{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Connection{},
		&models.Community{},
		&models.CommunityMember{},
		&models.JoinRequest{},
		&models.CommunityInvitation{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = router.NewHTTPErrorHandler(zap.NewNop())

	principalID := new(uint)
	api := e.Group("/api")
	api.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if *principalID != 0 {
				c.Set(middleware.ContextUserKey, *principalID)
			}
			return next(c)
		}
	})
	return e, api, db, principalID
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Username: name, Email: name + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFollowAction(t *testing.T) {
	e, api, db, principalID := newTestEnv(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	followRepo := repositories.NewPostgresFollowRepository(db)
	userRepo := repositories.NewPostgresUserRepository(db)
	notifRepo := repositories.NewPostgresNotificationRepository(db)
	handlers.NewFollowHandler(followRepo, userRepo, notifRepo).RegisterFollowRoutes(api)

	*principalID = alice.ID

	body := `{"targetUserId": ` + itoa(bob.ID) + `, "action": "follow"}`
	rec := doJSON(e, http.MethodPost, "/api/user/follow", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("follow status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Duplicate follow conflicts
	rec = doJSON(e, http.MethodPost, "/api/user/follow", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate follow status = %d, want 409", rec.Code)
	}

	// Following yourself is a validation error
	self := `{"targetUserId": ` + itoa(alice.ID) + `, "action": "follow"}`
	rec = doJSON(e, http.MethodPost, "/api/user/follow", self)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("self follow status = %d, want 400", rec.Code)
	}

	// Unknown target is 404
	rec = doJSON(e, http.MethodPost, "/api/user/follow", `{"targetUserId": 9999, "action": "follow"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing target status = %d, want 404", rec.Code)
	}

	// Unfollow succeeds, and again as a no-op
	unfollow := `{"targetUserId": ` + itoa(bob.ID) + `, "action": "unfollow"}`
	for i := 0; i < 2; i++ {
		rec = doJSON(e, http.MethodPost, "/api/user/follow", unfollow)
		if rec.Code != http.StatusOK {
			t.Errorf("unfollow round %d status = %d, want 200", i, rec.Code)
		}
	}

	// A follow notification reached bob
	var notifCount int64
	db.Model(&models.Notification{}).Where("recipient_id = ? AND type = ?", bob.ID, "follow").Count(&notifCount)
	if notifCount != 1 {
		t.Errorf("follow notifications = %d, want 1", notifCount)
	}
}

func TestFollowAction_Unauthenticated(t *testing.T) {
	e, api, db, _ := newTestEnv(t)
	followRepo := repositories.NewPostgresFollowRepository(db)
	userRepo := repositories.NewPostgresUserRepository(db)
	handlers.NewFollowHandler(followRepo, userRepo, nil).RegisterFollowRoutes(api)

	rec := doJSON(e, http.MethodPost, "/api/user/follow", `{"targetUserId": 1, "action": "follow"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestPreferences(t *testing.T) {
	e, api, db, principalID := newTestEnv(t)
	alice := createUser(t, db, "alice")
	userRepo := repositories.NewPostgresUserRepository(db)
	handlers.NewPreferencesHandler(userRepo).RegisterPreferencesRoutes(api)
	*principalID = alice.ID

	// PUT merges arbitrary keys
	rec := doJSON(e, http.MethodPut, "/api/user/preferences", `{"theme": "dark", "density": "compact"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body %s", rec.Code, rec.Body.String())
	}

	// PATCH is restricted to theme and validates it
	rec = doJSON(e, http.MethodPatch, "/api/user/preferences", `{"theme": "neon"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PATCH invalid theme status = %d, want 400", rec.Code)
	}
	rec = doJSON(e, http.MethodPatch, "/api/user/preferences", `{"theme": "light"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH status = %d", rec.Code)
	}

	// PUT with a bad theme value is rejected even among opaque keys
	rec = doJSON(e, http.MethodPut, "/api/user/preferences", `{"theme": 5}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT non-string theme status = %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/user/preferences", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var prefs map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("GET body not JSON: %v", err)
	}
	if prefs["theme"] != "light" || prefs["density"] != "compact" {
		t.Errorf("prefs = %v, want theme=light density=compact", prefs)
	}
}

func TestConnectionStatusEndpoint(t *testing.T) {
	e, api, db, principalID := newTestEnv(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	connRepo := repositories.NewPostgresConnectionRepository(db)
	userRepo := repositories.NewPostgresUserRepository(db)
	handlers.NewConnectionHandler(connRepo, userRepo, nil).RegisterConnectionRoutes(api)
	*principalID = alice.ID

	status := func() models.ConnectionStatusResponse {
		rec := doJSON(e, http.MethodGet, "/api/user/connections/status/"+itoa(bob.ID), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status endpoint = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp models.ConnectionStatusResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad status body: %v", err)
		}
		return resp
	}

	if s := status(); s.Status != "not_connected" || !s.CanConnect {
		t.Errorf("initial status = %+v, want not_connected canConnect", s)
	}

	rec := doJSON(e, http.MethodGet, "/api/user/connections/status/"+itoa(alice.ID), "")
	var selfResp models.ConnectionStatusResponse
	json.Unmarshal(rec.Body.Bytes(), &selfResp)
	if selfResp.Status != "self" {
		t.Errorf("self status = %q, want self", selfResp.Status)
	}

	// Request: alice -> bob
	rec = doJSON(e, http.MethodPost, "/api/user/connections", `{"targetUserId": `+itoa(bob.ID)+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("request status = %d, body %s", rec.Code, rec.Body.String())
	}
	if s := status(); s.Status != "request_sent" || s.CanConnect {
		t.Errorf("after request = %+v, want request_sent", s)
	}

	// Duplicate request conflicts
	rec = doJSON(e, http.MethodPost, "/api/user/connections", `{"targetUserId": `+itoa(bob.ID)+`}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate request status = %d, want 409", rec.Code)
	}

	// Bob sees request_received and accepts
	var conn models.Connection
	db.First(&conn)
	*principalID = bob.ID
	rec = doJSON(e, http.MethodGet, "/api/user/connections/status/"+itoa(alice.ID), "")
	var bobView models.ConnectionStatusResponse
	json.Unmarshal(rec.Body.Bytes(), &bobView)
	if bobView.Status != "request_received" {
		t.Errorf("bob view = %+v, want request_received", bobView)
	}

	rec = doJSON(e, http.MethodPut, "/api/user/connections/"+itoa(conn.ID), `{"action": "accept"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept status = %d, body %s", rec.Code, rec.Body.String())
	}

	*principalID = alice.ID
	if s := status(); s.Status != "connected" {
		t.Errorf("after accept = %+v, want connected", s)
	}
}

func TestUpdateMemberRoleEndpoint(t *testing.T) {
	e, api, db, principalID := newTestEnv(t)
	creator := createUser(t, db, "creator")
	other := createUser(t, db, "other")

	communityRepo := repositories.NewPostgresCommunityRepository(db)
	invitationRepo := repositories.NewPostgresInvitationRepository(db)
	userRepo := repositories.NewPostgresUserRepository(db)
	handlers.NewCommunityHandler(communityRepo, invitationRepo, userRepo, nil).RegisterCommunityRoutes(api)

	community, err := communityRepo.CreateCommunity(creator.ID, "gophers", models.CommunityPublic)
	if err != nil {
		t.Fatalf("create community failed: %v", err)
	}
	creatorMember, _ := communityRepo.GetMember(community.ID, creator.ID)

	*principalID = other.ID
	if _, err := communityRepo.JoinCommunity(other.ID, community.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	otherMember, _ := communityRepo.GetMember(community.ID, other.ID)

	path := "/api/communities/" + itoa(community.ID) + "/members/" + itoa(otherMember.ID) + "/role"

	// Non-admin actor: 403
	rec := doJSON(e, http.MethodPut, path, `{"role": "MODERATOR"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin role change = %d, want 403", rec.Code)
	}

	// Admin actor: 200
	*principalID = creator.ID
	rec = doJSON(e, http.MethodPut, path, `{"role": "MODERATOR"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin role change = %d, body %s", rec.Code, rec.Body.String())
	}

	// Demoting the only admin: 409
	selfPath := "/api/communities/" + itoa(community.ID) + "/members/" + itoa(creatorMember.ID) + "/role"
	rec = doJSON(e, http.MethodPut, selfPath, `{"role": "USER"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("last-admin demotion = %d, want 409", rec.Code)
	}

	// Bad role value: 400
	rec = doJSON(e, http.MethodPut, path, `{"role": "OVERLORD"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid role = %d, want 400", rec.Code)
	}

	// Unknown member: 404
	rec = doJSON(e, http.MethodPut, "/api/communities/"+itoa(community.ID)+"/members/9999/role", `{"role": "USER"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing member = %d, want 404", rec.Code)
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
