package services

import (
	"errors"
	"fmt"
	"time"

	"lojagames/internal/models"
	"lojagames/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Expected auth failures, checked by handlers with errors.Is.
var (
	ErrEmailTaken         = errors.New("email já cadastrado")
	ErrUserNameTaken      = errors.New("nome de usuário já cadastrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrInvalidCredentials = errors.New("senha inválida")
)

// AuthService handles business logic for registration and authentication.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration // default JWT validity
	rememberMeDur time.Duration // JWT and cookie validity with remember-me
}

// NewAuthService creates a new AuthService. The signing secret comes from
// configuration; main refuses to start without one.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: time.Hour,
		rememberMeDur: 7 * 24 * time.Hour,
	}
}

// Register hashes the password and creates the user. Pre-checks give the
// caller a per-field conflict error (email first, then username); the unique
// indexes behind UserRepository.Create remain the authority, so a concurrent
// duplicate insert still comes back as repositories.ErrDuplicateUser.
func (s *AuthService) Register(user *models.User) error {
	if _, err := s.userRepo.GetByEmail(user.Email); err == nil {
		return ErrEmailTaken
	}
	if _, err := s.userRepo.GetByUserName(user.UserName); err == nil {
		return ErrUserNameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return err
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates a user and returns a signed JWT. With rememberMe the
// token is valid for the remember-me duration so the cookie carrying it can
// never outlive it; otherwise it expires after the default duration.
func (s *AuthService) Login(userName, password string, rememberMe bool) (string, error) {
	user, err := s.userRepo.GetByUserName(userName)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user %s: %w", userName, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.UserName,
		"exp": now.Add(s.TokenTTL(rememberMe)).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// TokenTTL returns how long a token issued for this login remains valid.
// Handlers use the same value for the remember-me cookie max age.
func (s *AuthService) TokenTTL(rememberMe bool) time.Duration {
	if rememberMe {
		return s.rememberMeDur
	}
	return s.tokenDuration
}

// GetUserByUserName retrieves a user record for the profile lookup endpoint.
func (s *AuthService) GetUserByUserName(userName string) (*models.User, error) {
	user, err := s.userRepo.GetByUserName(userName)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		logrus.WithError(err).Debug("token validation failed")
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
