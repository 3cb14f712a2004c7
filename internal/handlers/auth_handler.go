package handlers

import (
	"fmt"
	"log"

	"gudang/internal/services"

	"github.com/go-playground/validator/v10"
)

// AuthHandler handles the commands that switch between visitor and manager mode.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterCommands registers the authentication commands with the router.
func (h *AuthHandler) RegisterCommands(router *Group) {
	router.Handle("login", "login <password>", "Enter manager mode", h.HandleLogin)
	router.Handle("logout", "logout", "Return to visitor mode", h.HandleLogout)
	router.Handle("whoami", "whoami", "Show the current mode", h.HandleWhoami)
}

// LoginRequest holds the arguments of the login command.
type LoginRequest struct {
	Password string `validate:"required"`
}

// HandleLogin checks the manager password.
func (h *AuthHandler) HandleLogin(r *Request) error {
	req := LoginRequest{Password: r.Arg(0)}
	if err := h.validate.Struct(req); err != nil || len(r.Args) > 1 {
		return r.UsageErr()
	}

	if err := h.authService.Login(req.Password); err != nil {
		log.Printf("Manager login failed: %v", err)
		return err
	}
	fmt.Fprintln(r.Out, "Manager mode enabled")
	return nil
}

// HandleLogout leaves manager mode.
func (h *AuthHandler) HandleLogout(r *Request) error {
	h.authService.Logout()
	fmt.Fprintln(r.Out, "Visitor mode")
	return nil
}

// HandleWhoami prints the current role.
func (h *AuthHandler) HandleWhoami(r *Request) error {
	fmt.Fprintln(r.Out, h.authService.Role())
	return nil
}
