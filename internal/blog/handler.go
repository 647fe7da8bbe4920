package blog

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gilberthappi/isange-pro-be/internal/auth"
	"github.com/gilberthappi/isange-pro-be/pkg/stats"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Uploader interface {
	UploadMultipart(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

type Notifier interface {
	NotifyRole(ctx context.Context, role auth.Role, subject, textBody, htmlBody string)
}

// BlogStore is the slice of the repository the handler needs.
type BlogStore interface {
	Create(ctx context.Context, b *Blog) error
	FindAll(ctx context.Context) ([]*Blog, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Blog, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Blog, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Blog, error)
	MonthlyCounts(ctx context.Context, year int) (map[int]int, error)
}

// BlogHandler is plain CRUD over blog posts; creates are announced to users
// and admins, updates to users.
type BlogHandler struct {
	repo     BlogStore
	uploads  Uploader
	notifier Notifier
}

func NewBlogHandler(repo *BlogRepository, uploads Uploader, notifier Notifier) *BlogHandler {
	return &BlogHandler{repo: repo, uploads: uploads, notifier: notifier}
}

func (h *BlogHandler) Create(c echo.Context) error {
	var req CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	userID, _ := c.Get("userId").(string)
	createdBy, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}

	photos, err := collectUploads(c, h.uploads, "photo")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "File upload error"})
	}
	documents, err := collectUploads(c, h.uploads, "documents")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "File upload error"})
	}

	b := &Blog{
		ID:          primitive.NewObjectID(),
		BlogTitle:   req.BlogTitle,
		TypeOfBlog:  req.TypeOfBlog,
		Location:    req.Location,
		Photo:       photos,
		Documents:   documents,
		CreatedBy:   createdBy,
		Description: req.Description,
		Duration:    req.Duration,
		CreatedAt:   time.Now(),
	}
	if err := h.repo.Create(c.Request().Context(), b); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	subject := "New Blog " + b.BlogTitle
	text := "New Blog has been created."
	h.notifier.NotifyRole(c.Request().Context(), auth.RoleUser, subject, text, "")
	h.notifier.NotifyRole(c.Request().Context(), auth.RoleAdmin, subject, text, "")

	return c.JSON(http.StatusCreated, b)
}

func (h *BlogHandler) GetAll(c echo.Context) error {
	result, err := h.repo.FindAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All Blogs (sorted from latest to oldest)",
		"blogs":   result,
	})
}

func (h *BlogHandler) GetByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid blog ID"})
	}

	found, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if found == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Blog not found"})
	}
	return c.JSON(http.StatusOK, found)
}

func (h *BlogHandler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid blog ID"})
	}

	var req UpdateBlogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	fields := bson.M{}
	setIf(fields, "blogTitle", req.BlogTitle)
	setIf(fields, "typeOfBlog", req.TypeOfBlog)
	setIf(fields, "location", req.Location)
	setIf(fields, "description", req.Description)
	setIf(fields, "duration", req.Duration)
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Nothing to update"})
	}

	updated, err := h.repo.Update(c.Request().Context(), id, fields)
	if err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	h.notifier.NotifyRole(c.Request().Context(), auth.RoleUser,
		"Blog "+updated.BlogTitle, "Blog has been updated.", "")

	return c.JSON(http.StatusOK, updated)
}

func (h *BlogHandler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid blog ID"})
	}

	deleted, err := h.repo.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Blog deleted successfully",
		"deletedBlog": deleted,
	})
}

func (h *BlogHandler) GetCounts(c echo.Context) error {
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

func collectUploads(c echo.Context, uploads Uploader, name string) ([]string, error) {
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
		u, err := uploads.UploadMultipart(c.Request().Context(), fh)
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
