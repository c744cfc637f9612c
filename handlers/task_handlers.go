package handlers

import (
	"net/http"

	"taskboard/validation"

	"github.com/gofiber/fiber/v2"
)

// ListTasks serves GET /api/tasks with paging and the project, member, status,
// search and deadline range filters.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	var query validation.TaskQueryInput
	if err := c.QueryParser(&query); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid query parameters"})
	}
	filter, err := validation.TaskQuery(query)
	if err != nil {
		return h.invalid(c, err)
	}

	res, err := h.svc.Tasks.List(c.UserContext(), filter)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) GetTask(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	task, err := h.svc.Tasks.Get(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(task)
}

func (h *Handler) CreateTask(c *fiber.Ctx) error {
	var body validation.TaskInput
	if err := c.BodyParser(&body); err != nil {
		return h.badBody(c)
	}
	fields, err := validation.Task(body)
	if err != nil {
		return h.invalid(c, err)
	}

	task, err := h.svc.Tasks.Create(c.UserContext(), fields)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(task)
}

func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body validation.TaskPatchInput
	if err := c.BodyParser(&body); err != nil {
		return h.badBody(c)
	}
	patch, err := validation.TaskPatch(body)
	if err != nil {
		return h.invalid(c, err)
	}

	task, err := h.svc.Tasks.Update(c.UserContext(), id, patch)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(task)
}

func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	if err := h.svc.Tasks.Delete(c.UserContext(), id); err != nil {
		return h.writeError(c, err)
	}
	return deleted(c, "Task")
}
