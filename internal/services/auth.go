package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/platform/apierr"
	"github.com/devconnect/devconnect-backend/internal/platform/logger"
	"github.com/devconnect/devconnect-backend/internal/store"
)

const bcryptCost = 10

// AuthService is the identity collaborator: it registers and authenticates
// users and turns bearer tokens into caller identities. The content services
// only ever see the resulting Identity.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Verify(tokenString string) (domain.Identity, error)
	GetUser(ctx context.Context, uid string) (*domain.User, error)
	AccessTTL() time.Duration
}

type authService struct {
	log       *logger.Logger
	users     store.UserStore
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(log *logger.Logger, users store.UserStore, jwtSecret string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{log: serviceLog, users: users, jwtSecret: []byte(jwtSecret), accessTTL: accessTTL}
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func (s *authService) Register(ctx context.Context, name, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.users.LoadByEmail(ctx, email)
	if err == nil {
		return "", apierr.Invalid("user_exists", errors.New("user already exists"))
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", apierr.Internal("store_fault", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", apierr.Internal("hash_failed", err)
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Avatar:    gravatarURL(email),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Save(ctx, user); err != nil {
		return "", apierr.Internal("store_fault", err)
	}
	s.log.Info("user registered", "user_id", user.ID)
	return s.sign(user.ID)
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.LoadByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apierr.Unauthorized("invalid_credentials", errors.New("invalid credentials"))
		}
		return "", apierr.Internal("store_fault", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apierr.Unauthorized("invalid_credentials", errors.New("invalid credentials"))
	}
	return s.sign(user.ID)
}

func (s *authService) Verify(tokenString string) (domain.Identity, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return domain.Identity{}, apierr.Unauthorized("invalid_token", errors.New("token is not valid"))
	}
	return domain.Identity{UserID: claims.UserID}, nil
}

func (s *authService) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.users.Load(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("user_not_found", errors.New("user not found"))
		}
		return nil, apierr.Internal("store_fault", err)
	}
	return user, nil
}

func (s *authService) AccessTTL() time.Duration { return s.accessTTL }

func (s *authService) sign(userID string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apierr.Internal("sign_failed", err)
	}
	return signed, nil
}

// gravatarURL derives the avatar from the email the way the frontend expects:
// 200px, pg-rated, "mystery man" fallback.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
