package handlers

import (
	"net/http"

	"taskboard/validation"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListProjects(c *fiber.Ctx) error {
	page := validation.Page(c.Query("page"), c.Query("limit"))
	res, err := h.svc.Projects.List(c.UserContext(), page)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) GetProject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	project, err := h.svc.Projects.Get(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(project)
}

func (h *Handler) CreateProject(c *fiber.Ctx) error {
	var body validation.ProjectInput
	if err := c.BodyParser(&body); err != nil {
		return h.badBody(c)
	}
	fields, err := validation.Project(body)
	if err != nil {
		return h.invalid(c, err)
	}

	project, err := h.svc.Projects.Create(c.UserContext(), fields)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(project)
}

func (h *Handler) UpdateProject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body validation.ProjectPatchInput
	if err := c.BodyParser(&body); err != nil {
		return h.badBody(c)
	}
	patch, err := validation.ProjectPatch(body)
	if err != nil {
		return h.invalid(c, err)
	}

	project, err := h.svc.Projects.Update(c.UserContext(), id, patch)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(project)
}

func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	if err := h.svc.Projects.Delete(c.UserContext(), id); err != nil {
		return h.writeError(c, err)
	}
	return deleted(c, "Project")
}
