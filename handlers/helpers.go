package handlers

import (
	"errors"
	"net/http"

	"taskboard/services"
	"taskboard/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// MessageResponse acknowledges operations that return no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation, services.KindConflict, services.KindReference:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	var se *services.Error
	if !errors.As(err, &se) {
		se = &services.Error{Kind: services.KindInternal, Message: "Internal server error", Err: err}
	}

	body := ErrorResponse{Message: se.Message, Errors: se.Fields}
	if se.Kind == services.KindInternal {
		h.log.Errorw(se.Message, "error", se.Err, "method", c.Method(), "path", c.Path())
		if h.exposeErrors && se.Err != nil {
			body.Error = se.Err.Error()
		}
	}
	return c.Status(statusFor(se.Kind)).JSON(body)
}

// invalid answers 400 with the field errors of a failed validation.
func (h *Handler) invalid(c *fiber.Ctx, err error) error {
	return h.writeError(c, services.Invalid(err))
}

func (h *Handler) badBody(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body"})
}

// pathID parses the :id route parameter.
func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := validation.ID(c.Params("id"))
	if err != nil {
		var verrs validation.Errors
		errors.As(err, &verrs)
		return uuid.Nil, &services.Error{Kind: services.KindValidation, Message: "Invalid ID format", Fields: verrs}
	}
	return id, nil
}

func deleted(c *fiber.Ctx, entity string) error {
	return c.Status(http.StatusOK).JSON(MessageResponse{Message: entity + " deleted successfully"})
}
