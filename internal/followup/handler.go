package followup

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FollowUpHandler struct {
	repo *FollowUpRepository
}

func NewFollowUpHandler(repo *FollowUpRepository) *FollowUpHandler {
	return &FollowUpHandler{repo: repo}
}

func (h *FollowUpHandler) Create(c echo.Context) error {
	var req FollowUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	now := time.Now()
	f := &FollowUp{
		ID:              primitive.NewObjectID(),
		VictimName:      req.VictimName,
		Gender:          req.Gender,
		DoctorName:      req.DoctorName,
		NeededAid:       req.NeededAid,
		NextAppointment: req.NextAppointment,
		Action:          req.Action,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.repo.Create(c.Request().Context(), f); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FollowUpHandler) GetAll(c echo.Context) error {
	result, err := h.repo.FindAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *FollowUpHandler) GetByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid follow-up ID"})
	}

	found, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if found == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Follow-up not found"})
	}
	return c.JSON(http.StatusOK, found)
}

func (h *FollowUpHandler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid follow-up ID"})
	}

	var req FollowUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	updated, err := h.repo.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrFollowUpNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Follow-up not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *FollowUpHandler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid follow-up ID"})
	}

	err = h.repo.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrFollowUpNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Follow-up not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.NoContent(http.StatusNoContent)
}
