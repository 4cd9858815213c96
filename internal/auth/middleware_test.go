package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

// TestMiddleware_MissingAuthorization rejects requests without a header
func TestMiddleware_MissingAuthorization(t *testing.T) {
	ver, _ := newTestVerifier(t)
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	rr := httptest.NewRecorder()

	Middleware(ver)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
	if *called {
		t.Error("Expected next handler not to be called")
	}
}

// TestMiddleware_MalformedHeader rejects non-bearer headers
func TestMiddleware_MalformedHeader(t *testing.T) {
	ver, _ := newTestVerifier(t)
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rr := httptest.NewRecorder()

	Middleware(ver)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
	if *called {
		t.Error("Expected next handler not to be called")
	}
}

// TestMiddleware_ValidToken injects the principal and calls next
func TestMiddleware_ValidToken(t *testing.T) {
	ver, key := newTestVerifier(t)

	var gotPrincipal *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tok := signTestToken(t, key, jwt.MapClaims{
		"iss": testIssuer,
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
		"realm_access": map[string]interface{}{
			"roles": []interface{}{"ADMIN"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()

	Middleware(ver)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotPrincipal == nil {
		t.Fatal("Expected principal in context")
	}
	if gotPrincipal.UserID != "user-42" {
		t.Errorf("Expected UserID 'user-42', got '%s'", gotPrincipal.UserID)
	}
}

// TestRequirePermission_Allowed passes through when the role grants permission
func TestRequirePermission_Allowed(t *testing.T) {
	perms := Permissions{"ADMIN": {"doctor:create"}}
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodPost, "/doctors", nil)
	ctx := ContextWithPrincipal(req.Context(), &Principal{UserID: "u1", Roles: []string{"ADMIN"}})
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()

	RequirePermission("doctor:create", perms)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if !*called {
		t.Error("Expected next handler to be called")
	}
}

// TestRequirePermission_Forbidden blocks principals without the permission
func TestRequirePermission_Forbidden(t *testing.T) {
	perms := Permissions{"ADMIN": {"doctor:create"}}
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodPost, "/doctors", nil)
	ctx := ContextWithPrincipal(req.Context(), &Principal{UserID: "u1", Roles: []string{"DOCTOR"}})
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()

	RequirePermission("doctor:create", perms)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rr.Code)
	}
	if *called {
		t.Error("Expected next handler not to be called")
	}
}

// TestRequirePermission_Unauthenticated blocks requests without a principal
func TestRequirePermission_Unauthenticated(t *testing.T) {
	perms := Permissions{"ADMIN": {"doctor:create"}}
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodPost, "/doctors", nil)
	rr := httptest.NewRecorder()

	RequirePermission("doctor:create", perms)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
	if *called {
		t.Error("Expected next handler not to be called")
	}
}
