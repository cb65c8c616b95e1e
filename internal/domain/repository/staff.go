package repository

import (
	"context"

	"github.com/cripslk/dispatch/internal/domain/model"
)

// StaffRepository describes persistence operations with staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.StaffRole) (*model.Staff, error)
	GetByLogin(ctx context.Context, login string) (*model.Staff, error)
	GetByID(ctx context.Context, id int64) (*model.Staff, error)
}
