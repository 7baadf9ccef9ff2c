package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport_booking/internal/models"
	"transport_booking/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedEngine(t *testing.T) (*gin.Engine, *session.Gate) {
	t.Helper()
	gate, err := session.NewGate([]byte("middleware-test-secret"), time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(LoadSession(gate, "session"))
	r.GET("/admin/dashboard", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		sess, _ := CurrentSession(c)
		c.String(http.StatusOK, sess.UserID)
	})
	return r, gate
}

func TestRequireRoleAllowsMatchingSession(t *testing.T) {
	r, gate := newGuardedEngine(t)
	token, _, err := gate.Open(models.User{UserID: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: string(token)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestRequireRoleRedirects(t *testing.T) {
	r, gate := newGuardedEngine(t)
	employeeToken, _, err := gate.Open(models.User{UserID: "e1", Role: models.RoleEmployee})
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie string
	}{
		{name: "no cookie"},
		{name: "wrong role", cookie: string(employeeToken)},
		{name: "tampered", cookie: string(employeeToken) + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
		})
	}
}

func TestEnableCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := EnableCORS(next, []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestEnableCORSWithoutAllowListIsSameOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := EnableCORS(next, nil)

	req := httptest.NewRequest(http.MethodGet, "/driver/dashboard", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
