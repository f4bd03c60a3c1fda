package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"campaign-pulse/src/helpers"
	"campaign-pulse/src/interfaces"
	"campaign-pulse/src/models"
	"campaign-pulse/src/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// -----------------------------------------------------------------------------

// Claims is the JWT payload issued on login and registration.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// -----------------------------------------------------------------------------
// Service
// -----------------------------------------------------------------------------

// Service registers and authenticates accounts and issues HS256 access tokens.
type Service struct {
	Store interfaces.IUserStore

	secret []byte
	issuer string
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

// -----------------------------------------------------------------------------

func NewService(cfg models.MAuthConfig, store interfaces.IUserStore) *Service {
	return &Service{
		Store:  store,
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		cost:   cfg.BcryptCost,
		now:    time.Now,
	}
}

// -----------------------------------------------------------------------------

// Register validates the input, hashes the password and stores a new account.
func (s *Service) Register(ctx context.Context, email, name, password string) (models.MUser, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	// bare addresses only; "Name <addr>" parses but is not an email
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return models.MUser{}, helpers.NewValidationError("invalid email address %q", email)
	}
	if len(password) < MinPasswordLength {
		return models.MUser{}, helpers.NewValidationError("password must be at least %d characters", MinPasswordLength)
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.MUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.MUser{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC().Truncate(time.Second),
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return models.MUser{}, ErrEmailTaken
		}
		return models.MUser{}, err
	}
	return user, nil
}

// -----------------------------------------------------------------------------

// Login checks the credentials. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (models.MUser, error) {
	user, err := s.Store.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, storage.ErrUserNotFound) {
		return models.MUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.MUser{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.MUser{}, ErrInvalidCredentials
	}
	return user, nil
}

// -----------------------------------------------------------------------------
// Tokens
// -----------------------------------------------------------------------------

// Issue signs an access token for user and returns it with its expiry.
func (s *Service) Issue(user models.MUser) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: user.Email,
		Name:  user.Name,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Verify parses and validates an access token.
func (s *Service) Verify(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, helpers.NewAuthError("verify token", errors.Join(ErrInvalidToken, err))
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// -----------------------------------------------------------------------------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
