package service

import "leave_system/internal/domain"

// Authorize is the single role check behind every admin-only operation
func Authorize(identity *domain.Identity, allowed ...domain.Role) error {
	if identity == nil {
		return domain.ErrUnauthorized
	}
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}
