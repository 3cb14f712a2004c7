package middleware

import (
	"log"

	"gudang/internal/handlers"
	"gudang/internal/services"
)

// ManagerRequired rejects the wrapped command unless the operator is in manager mode.
func ManagerRequired(authService *services.AuthService) handlers.Middleware {
	return func(next handlers.HandlerFunc) handlers.HandlerFunc {
		return func(r *handlers.Request) error {
			if !authService.IsManagerMode() {
				log.Printf("Rejected command in %s mode: %s", authService.Role(), r.Usage)
				return services.ErrManagerRequired
			}
			return next(r)
		}
	}
}
