// Package users stores accounts for the verification server.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository persists users. Create returns common.ErrorAlreadyExists for a
// taken username; GetUserByLogin returns common.ErrorNotFound for an unknown
// one.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
