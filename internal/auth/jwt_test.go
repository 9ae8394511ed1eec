package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
)

const testSecret = "test-secret"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func validClaims(sub string, role models.Role) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: role,
	}
}

func TestNewHSVerifierRejectsEmptySecret(t *testing.T) {
	if _, err := NewHSVerifier("", testLogger()); err == nil {
		t.Fatal("empty secret accepted")
	}
}

func TestVerify(t *testing.T) {
	verifier, err := NewHSVerifier(testSecret, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	sub := primitive.NewObjectID()
	grant := primitive.NewObjectID()

	t.Run("valid token yields the authenticated user", func(t *testing.T) {
		claims := validClaims(sub.Hex(), models.RoleCompany)
		claims.Permissions = []string{grant.Hex()}

		user, err := verifier.Verify(signToken(t, testSecret, claims))
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if user.ID != sub {
			t.Errorf("id = %s, want %s", user.ID.Hex(), sub.Hex())
		}
		if user.Role != models.RoleCompany {
			t.Errorf("role = %s", user.Role)
		}
		if len(user.Permissions) != 1 || user.Permissions[0] != grant {
			t.Errorf("permissions = %v", user.Permissions)
		}
	})

	t.Run("malformed permission entries are dropped", func(t *testing.T) {
		claims := validClaims(sub.Hex(), models.RoleEngineer)
		claims.Permissions = []string{grant.Hex(), "garbage"}

		user, err := verifier.Verify(signToken(t, testSecret, claims))
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if len(user.Permissions) != 1 {
			t.Errorf("permissions = %v, want the one valid grant", user.Permissions)
		}
	})

	rejections := []struct {
		name  string
		token string
	}{
		{"wrong secret", signToken(t, "other-secret", validClaims(sub.Hex(), models.RoleAdmin))},
		{"expired", signToken(t, testSecret, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   sub.Hex(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
			Role: models.RoleAdmin,
		})},
		{"empty subject", signToken(t, testSecret, validClaims("", models.RoleAdmin))},
		{"non-id subject", signToken(t, testSecret, validClaims("alice", models.RoleAdmin))},
		{"unknown role", signToken(t, testSecret, validClaims(sub.Hex(), "superuser"))},
		{"unsigned alg", func() string {
			token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims(sub.Hex(), models.RoleAdmin))
			signed, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
			return signed
		}()},
		{"garbage", "not.a.token"},
	}
	for _, tt := range rejections {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("error = %v, want unauthorized", err)
			}
		})
	}
}
