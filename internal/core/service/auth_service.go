package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
	"github.com/studiodesk/schedule-system/internal/pkg/metrics"
)

// AuthService implements signup, login and logout.
type AuthService struct {
	repo      ports.UserRepository
	revoker   ports.TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(repo ports.UserRepository, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Signup registers a pending account. Approval is granted by a Master.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	if in.ID == "" || in.Password == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: id, password and name are required", domain.ErrInvalidInput)
	}
	if !domain.IsStaffRole(in.Role) {
		return nil, fmt.Errorf("%w: role must be one of %s", domain.ErrInvalidInput, strings.Join(domain.StaffRoles, ", "))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           in.ID,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Approved:     false,
		SignupDate:   s.now().Truncate(time.Second),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues(user.Role).Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("signup pending approval")
	return user, nil
}

// Login checks credentials and the approval flag and issues a session token.
func (s *AuthService) Login(ctx context.Context, id, password string) (*ports.LoginResult, error) {
	id = strings.TrimSpace(id)
	if id == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	if !s.verifyPassword(ctx, user, password) {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Approved {
		metrics.LoginsTotal.WithLabelValues("not_approved").Inc()
		return nil, domain.ErrNotApproved
	}

	expiresAt := s.now().Add(s.tokenTTL)
	session := domain.NewSession(user, uuid.NewString(), expiresAt)
	token, err := s.generateToken(session)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return &ports.LoginResult{Token: token, Session: session}, nil
}

// Logout revokes the session's token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, session domain.Session) error {
	if !session.IsLoggedIn() || session.TokenID == "" {
		return nil
	}
	until := session.ExpiresAt
	if until.IsZero() {
		until = s.now().Add(s.tokenTTL)
	}
	if err := s.revoker.Revoke(ctx, session.TokenID, until); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("user_id", session.UserID).Msg("logged out")
	return nil
}

// EnsureMaster creates an approved Master account when id is not taken yet.
func (s *AuthService) EnsureMaster(ctx context.Context, id, password, name string) error {
	_, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = s.repo.Create(ctx, &domain.User{
		ID:           id,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleMaster,
		Approved:     true,
		SignupDate:   s.now().Truncate(time.Second),
	})
	if err != nil && !errors.Is(err, domain.ErrUserExists) {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("bootstrap master ensured")
	return nil
}

// verifyPassword accepts bcrypt hashes and, for rows written before hashing
// was introduced, plaintext values. A matching plaintext value is rehashed.
func (s *AuthService) verifyPassword(ctx context.Context, user *domain.User, password string) bool {
	if _, err := bcrypt.Cost([]byte(user.PasswordHash)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	}

	if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(password)) != 1 {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to hash legacy password")
		return true
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to upgrade legacy password")
	}
	return true
}

func (s *AuthService) generateToken(session domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":  session.UserID,
		"name": session.Name,
		"role": session.Role,
		"jti":  session.TokenID,
		"iat":  s.now().Unix(),
		"exp":  session.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
