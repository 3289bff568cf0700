package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/shammah/internal"
)

func TestJWTIssueAndAuthenticate(t *testing.T) {
	p := NewJWTAuthProvider([]byte("test-secret"), internal.NopLogger())
	token, err := p.IssueToken(&internal.User{ID: "u7", Name: "Ann", Role: internal.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	u, err := p.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u7", u.ID)
	assert.True(t, u.IsAdmin())

	other := NewJWTAuthProvider([]byte("other-secret"), internal.NopLogger())
	_, err = other.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := p.IssueToken(&internal.User{ID: "u7"}, -time.Minute)
	require.NoError(t, err)
	_, err = p.Authenticate(context.Background(), expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocalAuthProvider(t *testing.T) {
	p := NewLocalAuthProvider("MOCK-TOKEN", nil, internal.NopLogger())
	u, err := p.Authenticate(context.Background(), "MOCK-TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = p.Authenticate(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRemoteAuthProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["token"] != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(internal.User{ID: "r1", Name: "Remote"})
	}))
	defer srv.Close()

	p := NewRemoteAuthProvider(srv.URL, internal.NopLogger())
	u, err := p.Authenticate(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "r1", u.ID)
	assert.Equal(t, internal.RoleUser, u.Role)

	_, err = p.Authenticate(context.Background(), "bad")
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(NewLocalAuthProvider("MOCK-TOKEN", nil, internal.NopLogger())), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).ID)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer MOCK-TOKEN")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}
