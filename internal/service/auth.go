package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// MarkerCookieName is the signed cookie proving a prior successful password
// check. Privileged handlers re-check it on every request.
const MarkerCookieName = "authorized"

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidMarker   = errors.New("invalid marker cookie")
)

// AuthService checks the single shared staff password and issues the signed
// marker cookie. The password is either kept in plain form (compared in
// constant time) or as a bcrypt hash.
type AuthService struct {
	password     string
	passwordHash string
	cookieSecret string
	cookieExpiry time.Duration
	isProduction bool
}

func NewAuthService(password, passwordHash, cookieSecret string, cookieExpiry time.Duration, isProduction bool) *AuthService {
	return &AuthService{
		password:     password,
		passwordHash: passwordHash,
		cookieSecret: cookieSecret,
		cookieExpiry: cookieExpiry,
		isProduction: isProduction,
	}
}

func (s *AuthService) CheckPassword(password string) error {
	if s.passwordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
		if err != nil {
			return ErrInvalidPassword
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}

// GenerateMarker signs the "authorized" marker as an HS256 JWT.
func (s *AuthService) GenerateMarker() (string, error) {
	claims := jwt.MapClaims{
		"authorized": true,
		"exp":        time.Now().Add(s.cookieExpiry).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cookieSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyMarker(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cookieSecret), nil
	})
	if err != nil {
		return ErrInvalidMarker
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ErrInvalidMarker
	}

	authorized, ok := claims["authorized"].(bool)
	if !ok || !authorized {
		return ErrInvalidMarker
	}

	return nil
}

func (s *AuthService) SetMarkerCookie(w http.ResponseWriter) error {
	marker, err := s.GenerateMarker()
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     MarkerCookieName,
		Value:    marker,
		Expires:  time.Now().Add(s.cookieExpiry),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *AuthService) ClearMarkerCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     MarkerCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
