package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid session")
)

const sessionCookieName = "admin_session"

// devFallbackPassword is accepted only when neither ADMIN_PASSWORD_HASH nor
// ADMIN_PASSWORD is configured. Production config validation refuses to start
// in that state.
const devFallbackPassword = "admin123"

// AuthService is the access gate for the single administrative identity.
// There are no roles and no per-client accounts: a session is either
// authenticated or anonymous.
type AuthService struct {
	adminEmail        string
	adminPasswordHash string
	adminPassword     string
	sessionSecret     string
	sessionExpiry     time.Duration
	isProduction      bool
}

func NewAuthService(adminEmail, adminPasswordHash, adminPassword, sessionSecret string, sessionExpiry time.Duration, isProduction bool) *AuthService {
	return &AuthService{
		adminEmail:        strings.TrimSpace(strings.ToLower(adminEmail)),
		adminPasswordHash: adminPasswordHash,
		adminPassword:     adminPassword,
		sessionSecret:     sessionSecret,
		sessionExpiry:     sessionExpiry,
		isProduction:      isProduction,
	}
}

// Login checks the submitted credentials against the configured admin
// identity. The email comparison ignores case and surrounding whitespace.
// The password is resolved strictly in priority order: bcrypt hash if
// configured (which disables the other paths entirely), else configured
// plaintext, else the development fallback. Failures are indistinguishable:
// callers only ever see ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1

	var passwordOK bool
	switch {
	case s.adminPasswordHash != "":
		passwordOK = bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)) == nil
	case s.adminPassword != "":
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	default:
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(devFallbackPassword)) == 1
	}

	if !emailOK || !passwordOK {
		return ErrInvalidCredentials
	}

	return nil
}

// SessionToken issues a signed session token for an authenticated admin.
func (s *AuthService) SessionToken() (string, error) {
	claims := jwt.MapClaims{
		"admin": true,
		"exp":   time.Now().Add(s.sessionExpiry).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.sessionSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifySession checks a session token's signature, expiry and admin claim.
func (s *AuthService) VerifySession(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.sessionSecret), nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ErrInvalidSession
	}

	admin, ok := claims["admin"].(bool)
	if !ok || !admin {
		return ErrInvalidSession
	}

	return nil
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(s.sessionExpiry),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie logs out unconditionally: it always succeeds and
// discards all session state.
func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionCookieName returns the cookie the session middleware inspects.
func (s *AuthService) SessionCookieName() string {
	return sessionCookieName
}

// SanitizeNext restricts a post-login redirect target to same-site relative
// paths so the login flow cannot be used as an open redirect. Anything else
// falls back to the roster.
func SanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/clients"
	}
	return next
}
