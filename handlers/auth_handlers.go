package handlers

import (
	"context"
	"net/http"

	"taskboard/middleware"
	"taskboard/models"
	"taskboard/services"
	"taskboard/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Me(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Signup registers an account and returns a session token.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var body validation.SignupInput
	if err := c.BodyParser(&body); err != nil {
		return h.badBody(c)
	}
	in, err := validation.Signup(body)
	if err != nil {
		return h.invalid(c, err)
	}

	res, err := h.svc.Auth.Signup(c.UserContext(), in.Name, in.Email, in.Password)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(res)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var body validation.LoginInput
	if err := c.BodyParser(&body); err != nil {
		return h.badBody(c)
	}
	in, err := validation.Login(body)
	if err != nil {
		return h.invalid(c, err)
	}

	res, err := h.svc.Auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(res)
}

// Me returns the signed-in account.
func (h *Handler) Me(c *fiber.Ctx) error {
	id, ok := middleware.UserID(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Message: "User not authenticated"})
	}
	user, err := h.svc.Auth.Me(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(user)
}

// Logout is stateless; clients drop their token.
func (h *Handler) Logout(c *fiber.Ctx) error {
	return c.JSON(MessageResponse{Message: "User logged out"})
}
