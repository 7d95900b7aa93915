// Package services contains server-side business logic. This file implements
// UserService, which handles registration, lookup, and session sign-in/out.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sooldama/sooldama/internal/common"
	"github.com/sooldama/sooldama/internal/dbx"
	"github.com/sooldama/sooldama/internal/logging"
	"github.com/sooldama/sooldama/internal/server/auth"
	"github.com/sooldama/sooldama/internal/server/models"
	"github.com/sooldama/sooldama/internal/server/repositories/repomanager"
	"github.com/sooldama/sooldama/internal/server/session"
)

// JoinUser is a registration request.
type JoinUser struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	Nickname    string
	IsAdult     bool
}

// UserResponse is the public view of a user. It never carries the password.
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Nickname    string    `json:"nickname"`
	IsAdult     bool      `json:"isAdult"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Nickname:    u.Nickname,
		IsAdult:     u.IsAdult,
		CreatedAt:   u.CreatedAt,
	}
}

// UserService provides account operations:
//   - InsertUser: register a new email
//   - FindUserByID: public profile lookup
//   - LoginUser / LogoutUser: bind and unbind a session to an email
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gate        *auth.Gate
	hasher      auth.PasswordHasher
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, gate *auth.Gate,
	hasher auth.PasswordHasher, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		gate:        gate,
		hasher:      hasher,
		logger:      logger.With("module", "services.user"),
	}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var validate = validator.New()

// ValidateEmail applies the email rule the HTTP binding uses, so accounts
// created outside the API obey it too.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email %q", common.ErrorValidation, email)
	}
	return nil
}

// InsertUser registers u. The email check and the insert share one
// transaction, and a unique-index conflict from a concurrent insert is
// reported as ErrDuplicateEmailExists as well.
func (s *UserService) InsertUser(ctx context.Context, u JoinUser) (*UserResponse, error) {
	email := NormalizeEmail(u.Email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	created, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		repo := s.repomanager.Users(tx)

		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, common.ErrDuplicateEmailExists
		}

		digest, err := s.hasher.Hash(u.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
			}
			return nil, fmt.Errorf("hash password: %w", err)
		}

		created, err := repo.Create(ctx, &models.User{
			Email:       email,
			Password:    digest,
			Name:        u.Name,
			PhoneNumber: u.PhoneNumber,
			Nickname:    u.Nickname,
			IsAdult:     u.IsAdult,
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateEmailExists
		}
		return created, err
	})

	switch {
	case err == nil:
		s.logger.Info(ctx, "user registered", "id", created.ID)
		return newUserResponse(created), nil
	case errors.Is(err, common.ErrDuplicateEmailExists), errors.Is(err, common.ErrorValidation):
		return nil, err
	default:
		s.logger.Error(ctx, "insert user failed", "error", err)
		return nil, common.ErrorInternal
	}
}

func (s *UserService) FindUserByID(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoSuchUser
		}
		s.logger.Error(ctx, "find user failed", "id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return newUserResponse(user), nil
}

// LoginUser verifies the credentials and signs sess in as the user. It does
// not check whether sess is already signed in; the web layer guards that.
func (s *UserService) LoginUser(ctx context.Context, email, password string, sess session.Session) error {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrNoSuchUser
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.Password) {
		return common.ErrPasswordNotMatch
	}

	if err := s.gate.SignIn(sess, user.Email); err != nil {
		s.logger.Error(ctx, "sign in failed", "id", user.ID, "error", err)
		return common.ErrorInternal
	}
	return nil
}

func (s *UserService) LogoutUser(ctx context.Context, sess session.Session) error {
	if err := s.gate.SignOut(sess); err != nil {
		s.logger.Error(ctx, "sign out failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}
