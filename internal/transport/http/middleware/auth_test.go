package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mickeyAlem27/Super-backend/internal/infra/security"
)

func newAuthTestRouter(t *testing.T, verifier TokenVerifier) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(EnrichContext())
	r.GET("/protected", RequireAuth(verifier), func(c *gin.Context) {
		accountID, _ := GetAuthenticatedAccountID(c)
		c.JSON(http.StatusOK, gin.H{"account_id": accountID})
	})
	return r
}

func newAuthTestTokenService(t *testing.T) *security.TokenService {
	t.Helper()

	svc, err := security.NewTokenService("middleware-test-secret", "super-backend-test", 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	return svc
}

func performRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := newAuthTestRouter(t, newAuthTestTokenService(t))

	w := performRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing header, got %d", w.Code)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	r := newAuthTestRouter(t, newAuthTestTokenService(t))

	for _, header := range []string{"Token abc", "Bearer", "bearer-token"} {
		w := performRequest(r, header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for header %q, got %d", header, w.Code)
		}
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := newAuthTestRouter(t, newAuthTestTokenService(t))

	w := performRequest(r, "Bearer not-a-real-token")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for invalid token, got %d", w.Code)
	}
}

func TestRequireAuthWrongSecret(t *testing.T) {
	issuer, err := security.NewTokenService("other-secret", "super-backend-test", 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	token, err := issuer.Issue("acct-1", "")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	r := newAuthTestRouter(t, newAuthTestTokenService(t))

	w := performRequest(r, "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign-signed token, got %d", w.Code)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newAuthTestTokenService(t).WithClock(func() time.Time { return issuedAt })

	token, err := svc.Issue("acct-1", "")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.WithClock(func() time.Time { return issuedAt.Add(25 * time.Hour) })

	r := newAuthTestRouter(t, svc)

	w := performRequest(r, "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", w.Code)
	}
}

func TestRequireAuthSuccessAttachesIdentity(t *testing.T) {
	svc := newAuthTestTokenService(t)

	token, err := svc.Issue("acct-1", "jane@x.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	r := newAuthTestRouter(t, svc)

	w := performRequest(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, "acct-1") {
		t.Fatalf("response missing account id: %s", body)
	}
}
