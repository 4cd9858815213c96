package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/medicore-systems/hospital-service/internal/auth"
)

const TestIssuer = "https://sso.test.local/realms/hospital"

// CreateTestVerifier creates a verifier that accepts locally signed tokens.
// It returns the verifier and the private key to sign them with.
func CreateTestVerifier(t *testing.T) (*auth.Verifier, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate test key: %v", err)
	}

	jwks := auth.NewTestJWKS(&key.PublicKey)
	verifier := auth.NewVerifier(auth.Config{Issuer: TestIssuer}, jwks)

	return verifier, key
}

// SignTestToken signs a token for the given user and roles, valid for an hour.
func SignTestToken(t *testing.T, key *rsa.PrivateKey, userID string, roles []string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"iss": TestIssuer,
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
		"realm_access": map[string]interface{}{
			"roles": roles,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "test-key"

	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}

	return signed
}
