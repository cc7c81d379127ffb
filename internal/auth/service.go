package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dvo/event-booking-backend/config"
	"github.com/dvo/event-booking-backend/internal/apperror"
	"github.com/dvo/event-booking-backend/internal/user"
	"github.com/dvo/event-booking-backend/utils"
)

// UserStore resolves credentials against the user records.
type UserStore interface {
	FindByUsername(username string) (*user.User, error)
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginInput struct {
	Username string
	Password string
}

type Service struct {
	users         UserStore
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(users UserStore, cfg *config.Config) *Service {
	return &Service{
		users:         users,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// Login verifies the credentials and issues an access/refresh token
// pair. Unknown usernames and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Login(in LoginInput) (*TokenPair, *user.User, error) {
	u, err := s.users.FindByUsername(in.Username)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, nil, apperror.Unauthorizedf("invalid credentials")
		}
		return nil, nil, err
	}

	if !utils.VerifyPassword(u.PasswordHash, in.Password) {
		return nil, nil, apperror.Unauthorizedf("invalid credentials")
	}

	accessToken, err := s.generateToken(u, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateToken(u, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, u, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.Unauthorizedf("unexpected signing method")
		}
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", apperror.Unauthorizedf("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["username"] == nil {
		return "", apperror.Unauthorizedf("invalid token claims")
	}

	username, _ := claims["username"].(string)
	u, err := s.users.FindByUsername(username)
	if err != nil {
		return "", apperror.Unauthorizedf("invalid refresh token")
	}

	return s.generateToken(u, s.accessSecret, s.accessTTL)
}

func (s *Service) generateToken(u *user.User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"role":     string(u.Role),
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
