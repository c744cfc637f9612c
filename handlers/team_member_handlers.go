package handlers

import (
	"net/http"

	"taskboard/validation"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListTeamMembers(c *fiber.Ctx) error {
	page := validation.Page(c.Query("page"), c.Query("limit"))
	res, err := h.svc.Members.List(c.UserContext(), page)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) GetTeamMember(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	member, err := h.svc.Members.Get(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(member)
}

func (h *Handler) CreateTeamMember(c *fiber.Ctx) error {
	var body validation.TeamMemberInput
	if err := c.BodyParser(&body); err != nil {
		return h.badBody(c)
	}
	fields, err := validation.TeamMember(body)
	if err != nil {
		return h.invalid(c, err)
	}

	member, err := h.svc.Members.Create(c.UserContext(), fields)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(member)
}

func (h *Handler) UpdateTeamMember(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body validation.TeamMemberPatchInput
	if err := c.BodyParser(&body); err != nil {
		return h.badBody(c)
	}
	patch, err := validation.TeamMemberPatch(body)
	if err != nil {
		return h.invalid(c, err)
	}

	member, err := h.svc.Members.Update(c.UserContext(), id, patch)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(member)
}

func (h *Handler) DeleteTeamMember(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	if err := h.svc.Members.Delete(c.UserContext(), id); err != nil {
		return h.writeError(c, err)
	}
	return deleted(c, "Team member")
}
