package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/anarkulova/maktab-monitor/internal/models"
	"github.com/anarkulova/maktab-monitor/internal/utils"
)

// AdminStore abstracts the destructive operation the dashboard exposes.
type AdminStore interface {
	DeleteAllResponses(ctx context.Context) (int64, error)
}

// TokenSigner issues a session token for a verified admin.
type TokenSigner func(ttl time.Duration) (string, error)

// AdminService handles the single shared-password admin session and the
// bulk wipe of the response set.
type AdminService struct {
	store     AdminStore
	passHash  []byte
	signToken TokenSigner
	tokenTTL  time.Duration
}

func NewAdminService(store AdminStore, passHash []byte, signer TokenSigner) *AdminService {
	return &AdminService{
		store:     store,
		passHash:  passHash,
		signToken: signer,
		tokenTTL:  12 * time.Hour,
	}
}

// Login compares the shared password and returns a session token.
func (s *AdminService) Login(password string, lang models.Language) (string, error) {
	if len(s.passHash) == 0 {
		return "", NewUnauthorizedError(utils.T(string(lang), "admin.wrong_password"))
	}
	if err := bcrypt.CompareHashAndPassword(s.passHash, []byte(password)); err != nil {
		return "", NewUnauthorizedError(utils.T(string(lang), "admin.wrong_password"))
	}
	if s.signToken == nil {
		return "", NewInvalidError("token signer not configured")
	}
	return s.signToken(s.tokenTTL)
}

// DeleteAllResponses wipes every stored response. The confirm flag is the
// explicit user confirmation step; without it the operation is refused and
// nothing is touched. There is no selective filter and no undo.
func (s *AdminService) DeleteAllResponses(ctx context.Context, confirm bool, lang models.Language) (int64, error) {
	if !confirm {
		return 0, NewInvalidError(utils.T(string(lang), "admin.confirm_required"))
	}
	return s.store.DeleteAllResponses(ctx)
}
