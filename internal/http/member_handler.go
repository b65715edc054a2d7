package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/http/validators"
)

func (h *Handler) CreateMember(c echo.Context) error {
	var req dto.CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return toHTTPError(c, apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateCreateMemberRequest(&req); err != nil {
		return err
	}

	member, err := h.memberService.CreateMember(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusCreated, member)
}

func (h *Handler) ListMembers(c echo.Context) error {
	members, err := h.memberService.ListMembers(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, members)
}

func (h *Handler) GetMember(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return toHTTPError(c, err)
	}

	member, err := h.memberService.GetMember(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, member)
}

func (h *Handler) UpdateMember(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return toHTTPError(c, err)
	}

	var req dto.UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return toHTTPError(c, apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateUpdateMemberRequest(&req); err != nil {
		return err
	}

	member, err := h.memberService.UpdateMember(c.Request().Context(), id, req)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, member)
}

func (h *Handler) DeleteMember(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return toHTTPError(c, err)
	}

	member, err := h.memberService.DeleteMember(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DetailResponse{
		Detail: fmt.Sprintf("Member '%s' deleted successfully.", member.Name),
	})
}
