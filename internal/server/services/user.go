// Package services contains server-side business logic. UserService handles
// registration, salt lookup and login with failed-attempt lockout, and
// issues JWT access tokens.
package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/lockout"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

// ErrInvalidArgument is returned for registrations with empty fields.
var ErrInvalidArgument = errors.New("invalid argument")

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	limiter                     lockout.Limiter
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories, the lockout
// limiter and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, l lockout.Limiter, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		limiter:                     l,
		logger:                      logger.With("module", "user_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user with the given username, salt, and verifier.
// A taken username yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error) {
	if username == "" || len(salt) == 0 || len(verifier) == 0 {
		return nil, ErrInvalidArgument
	}

	var created *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, &models.User{UserName: username, Salt: salt, Verifier: verifier})
		if err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "username", username, "id", created.ID)
	return created, nil
}

// GetSalt returns the user's stored salt. For an absent user it returns a
// fake salt that is stable per username, so repeated calls cannot tell
// unknown accounts from real ones.
func (s *UserService) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fakeSalt(userName), nil
		}
		s.logger.Error(ctx, "salt lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	return user.Salt, nil
}

// Login verifies the provided verifierCandidate against the stored verifier and
// returns a signed access token. Unknown users and wrong verifiers both count
// as failures; once the limiter trips every attempt gets common.ErrorLockedOut
// until the window passes.
func (s *UserService) Login(ctx context.Context, userName string, verifierCandidate []byte) (string, error) {
	if err := s.limiter.Check(ctx, userName); err != nil {
		if errors.Is(err, common.ErrorLockedOut) {
			s.logger.Warn(ctx, "login refused, locked out", "username", userName)
			return "", common.ErrorLockedOut
		}
		s.logger.Error(ctx, "lockout check failed", "error", err)
		return "", common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if user == nil || !cryptox.Equal(user.Verifier, verifierCandidate) {
		if err := s.limiter.RecordFailure(ctx, userName); err != nil {
			s.logger.Error(ctx, "recording failed login", "error", err)
		}
		s.logger.Info(ctx, "login failed", "username", userName)
		return "", common.ErrorUnauthorized
	}

	if err := s.limiter.Reset(ctx, userName); err != nil {
		s.logger.Error(ctx, "resetting failed logins", "error", err)
	}

	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "login succeeded", "username", userName)
	return token, nil
}

// fakeSalt is HMAC-SHA256(secret, username) cut to cryptox.SaltSize.
func (s *UserService) fakeSalt(userName string) []byte {
	mac := hmac.New(sha256.New, s.jwtSecret)
	mac.Write([]byte("gophauth/fake-salt:"))
	mac.Write([]byte(userName))
	return mac.Sum(nil)[:cryptox.SaltSize]
}
