package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/config"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
)

// fakeDirectory serves users from a map, standing in for the Neo4j-backed
// user DAO.
type fakeDirectory struct {
	users map[string]*model.User
}

func (f *fakeDirectory) GetUser(ctx context.Context, userID string) (*model.User, error) {
	if user, ok := f.users[userID]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, app_errors.ErrUserNotFound
}

// failingDirectory simulates a store outage behind the guard.
type failingDirectory struct{}

func (failingDirectory) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return nil, app_errors.ErrDatabaseOperation
}

func newTestTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager(config.JWTConfiguration{
		Secret:    "test-secret-key",
		ExpiresIn: time.Hour,
	})
	require.NoError(t, err)
	return tm
}

func authTestRouter(a *Authenticator, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	guard := a.Authenticate()
	if optional {
		guard = a.OptionalAuthenticate()
	}
	router.GET("/whoami", guard, func(c *gin.Context) {
		principal, ok := auth.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, principal)
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingToken(t *testing.T) {
	a := NewAuthenticator(newTestTokens(t), &fakeDirectory{})
	w := doRequest(authTestRouter(a, false), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	a := NewAuthenticator(newTestTokens(t), &fakeDirectory{})

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "garbage"} {
		w := doRequest(authTestRouter(a, false), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	tokens := newTestTokens(t)
	a := NewAuthenticator(tokens, &fakeDirectory{users: map[string]*model.User{}})

	token, err := tokens.Issue(&model.User{ID: "ghost", Email: "g@example.com"})
	require.NoError(t, err)

	w := doRequest(authTestRouter(a, false), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateDirectoryOutage(t *testing.T) {
	tokens := newTestTokens(t)
	a := NewAuthenticator(tokens, failingDirectory{})

	token, err := tokens.Issue(&model.User{ID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)

	// The token is fine; the directory is down. That is a server error, not a
	// credential problem.
	w := doRequest(authTestRouter(a, false), "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), app_errors.ErrUserNotFoundOrInactive.Error())
}

func TestAuthenticateInactiveUser(t *testing.T) {
	tokens := newTestTokens(t)
	user := &model.User{ID: "u1", Email: "u1@example.com", Role: model.RoleDeveloper, Status: model.StatusSuspended}
	a := NewAuthenticator(tokens, &fakeDirectory{users: map[string]*model.User{"u1": user}})

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	// The token is valid; the account state is not.
	w := doRequest(authTestRouter(a, false), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateUsesDirectoryStateNotClaims(t *testing.T) {
	tokens := newTestTokens(t)

	// The token was issued while the user was a developer in org-1.
	stale := &model.User{ID: "u1", Email: "u1@example.com", Role: model.RoleDeveloper, OrganizationID: "org-1", Status: model.StatusActive}
	token, err := tokens.Issue(stale)
	require.NoError(t, err)

	// The directory has since promoted them and moved them.
	current := &model.User{ID: "u1", Email: "u1@example.com", Role: model.RoleManager, OrganizationID: "org-2", Status: model.StatusActive}
	a := NewAuthenticator(tokens, &fakeDirectory{users: map[string]*model.User{"u1": current}})

	w := doRequest(authTestRouter(a, false), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(model.RoleManager))
	assert.Contains(t, w.Body.String(), "org-2")
}

func TestOptionalAuthenticateAnonymous(t *testing.T) {
	a := NewAuthenticator(newTestTokens(t), &fakeDirectory{})

	w := doRequest(authTestRouter(a, true), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestOptionalAuthenticateInvalidTokenStaysAnonymous(t *testing.T) {
	a := NewAuthenticator(newTestTokens(t), &fakeDirectory{})

	w := doRequest(authTestRouter(a, true), "Bearer not-a-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}
