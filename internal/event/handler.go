package event

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gilberthappi/isange-pro-be/pkg/stats"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Uploader interface {
	UploadMultipart(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

type EventHandler struct {
	repo    *EventRepository
	uploads Uploader
}

func NewEventHandler(repo *EventRepository, uploads Uploader) *EventHandler {
	return &EventHandler{repo: repo, uploads: uploads}
}

func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	userID, _ := c.Get("userId").(string)
	createdBy, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}

	photos, err := h.collectUploads(c, "photo")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "File upload error"})
	}
	documents, err := h.collectUploads(c, "documents")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "File upload error"})
	}

	e := &Event{
		ID:          primitive.NewObjectID(),
		EventTitle:  req.EventTitle,
		TypeOfEvent: req.TypeOfEvent,
		DateOfEvent: req.DateOfEvent,
		MainGuest:   req.MainGuest,
		Location:    req.Location,
		Photo:       photos,
		Documents:   documents,
		CreatedBy:   createdBy,
		HostedBy:    createdBy,
		Description: req.Description,
		Duration:    req.Duration,
		CreatedAt:   time.Now(),
	}
	if err := h.repo.Create(c.Request().Context(), e); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *EventHandler) GetAll(c echo.Context) error {
	result, err := h.repo.FindAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All Events (sorted from latest to oldest)",
		"events":  result,
	})
}

func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event ID"})
	}

	found, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if found == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Event not found"})
	}
	return c.JSON(http.StatusOK, found)
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event ID"})
	}

	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	fields := bson.M{}
	setIf(fields, "eventTitle", req.EventTitle)
	setIf(fields, "typeOfEvent", req.TypeOfEvent)
	setIf(fields, "dateOfEvent", req.DateOfEvent)
	setIf(fields, "mainGuest", req.MainGuest)
	setIf(fields, "location", req.Location)
	setIf(fields, "description", req.Description)
	setIf(fields, "duration", req.Duration)
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Nothing to update"})
	}

	updated, err := h.repo.Update(c.Request().Context(), id, fields)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid event ID"})
	}

	deleted, err := h.repo.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "Event deleted successfully",
		"deletedEvent": deleted,
	})
}

func (h *EventHandler) GetCounts(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid year"})
	}

	counts, err := h.repo.MonthlyCounts(c.Request().Context(), year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, stats.ZeroFill(counts))
}

func (h *EventHandler) collectUploads(c echo.Context, name string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[name]
	if len(files) == 0 {
		return nil, nil
	}
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		u, err := h.uploads.UploadMultipart(c.Request().Context(), fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func setIf(fields bson.M, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}
