package ports

import (
	"context"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
