package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/homelead/territory-api/internal/entity"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

// SessionClaims is the token shape issued by the auth provider. Subject
// carries the user id.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Auth struct {
	secret      []byte
	profileRepo entity.ProfileRepositoryInterface
}

func NewAuth(secret string, profileRepo entity.ProfileRepositoryInterface) *Auth {
	return &Auth{secret: []byte(secret), profileRepo: profileRepo}
}

// RequireUser validates the bearer token and puts the user id and email on
// the request context.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.parseToken(r)
		if !ok {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.Subject)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin is RequireUser plus a profile flag check. Admin status lives
// on the stored profile, not in the token, so revoking it takes effect on the
// next request.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := UserID(r.Context())

		profile, err := a.profileRepo.FindByID(r.Context(), userID)
		if err != nil || !profile.IsAdmin {
			forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (a *Auth) parseToken(r *http.Request) (*SessionClaims, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, false
	}
	return claims, true
}

// UserID returns the authenticated user id from the context, or "" when the
// request did not pass through RequireUser.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

func UserEmail(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
}
