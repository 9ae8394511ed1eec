package access

import (
	"fmt"

	"mediquip/internal/domain/models"
	"mediquip/internal/service"
)

// New selects the strategy for the authenticated caller. The role set
// is closed; any other value is a defect upstream (the middleware only
// admits known roles), so selection fails closed instead of falling
// back to any access level.
func New[T any](user models.User, svc service.Resource[T]) (Strategy[T], error) {
	switch user.Role {
	case models.RoleAdmin:
		return &adminStrategy[T]{svc: svc}, nil
	case models.RoleCompany:
		return &companyStrategy[T]{user: user, svc: svc}, nil
	case models.RoleEngineer:
		return &engineerStrategy[T]{user: user, svc: svc}, nil
	case models.RoleClient:
		return &clientStrategy[T]{user: user, svc: svc}, nil
	default:
		return nil, fmt.Errorf("access: unknown role %q", user.Role)
	}
}
