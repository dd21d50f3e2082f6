// auth/oracle.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	sail_errors "github.com/sapictureday/sail/errors"
	"github.com/sapictureday/sail/model"
)

// AdminChecker answers "does this user hold the administrative capability".
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// AdminOracle performs the check over the elevated-privilege database handle,
// bypassing the request-scoped row filters (the gatekeeper runs before the
// request has an asserted identity, so the ordinary per-row path cannot be
// trusted here). Idempotent and side-effect-free. Transport failures surface
// as ErrAdminCheckUnavailable so the caller's fail-closed policy is an
// explicit decision rather than a swallowed error.
type AdminOracle struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewAdminOracle(db *gorm.DB, timeout time.Duration) *AdminOracle {
	return &AdminOracle{db: db, timeout: timeout}
}

func (o *AdminOracle) IsAdmin(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var user model.User
	err := o.db.WithContext(ctx).Select("id", "is_admin").Take(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", sail_errors.ErrAdminCheckUnavailable, err)
	}
	return user.IsAdmin, nil
}
