package cases

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gilberthappi/isange-pro-be/internal/auth"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Uploader materializes a multipart file part in object storage and returns
// its public URL.
type Uploader interface {
	UploadMultipart(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

type CaseHandler struct {
	service *CaseService
	uploads Uploader
}

func NewCaseHandler(service *CaseService, uploads Uploader) *CaseHandler {
	return &CaseHandler{service: service, uploads: uploads}
}

func (h *CaseHandler) CreateCase(c echo.Context) error {
	var req CreateCaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	userID, err := callerID(c)
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

	created, err := h.service.CreateCase(c.Request().Context(), req, photos, documents, userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CaseHandler) UpdateCase(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var req UpdateCaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	updated, err := h.service.UpdateCase(c.Request().Context(), id, req)
	if err != nil {
		return h.caseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CaseHandler) AssignToRIB(c echo.Context) error {
	caseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var req AssignRIBRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	responderID, err := primitive.ObjectIDFromHex(req.RIBID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	updated, err := h.service.AssignRIB(c.Request().Context(), caseID, responderID)
	if err != nil {
		if errors.Is(err, ErrResponderNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "RIB branch not found"})
		}
		return h.caseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CaseHandler) AssignToHospital(c echo.Context) error {
	caseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var req AssignHospitalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	responderID, err := primitive.ObjectIDFromHex(req.HospitalID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	updated, err := h.service.AssignHospital(c.Request().Context(), caseID, responderID)
	if err != nil {
		if errors.Is(err, ErrResponderNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Hospital branch not found"})
		}
		return h.caseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CaseHandler) RIBAcceptReject(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var req RIBDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	updated, err := h.service.RIBDecision(c.Request().Context(), id, req.IsRIBAccepted)
	if err != nil {
		return h.caseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CaseHandler) HospitalAcceptReject(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var req HospitalDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	updated, err := h.service.HospitalDecision(c.Request().Context(), id, req.IsHospitalAccepted)
	if err != nil {
		return h.caseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CaseHandler) RIBUpdateProgress(c echo.Context) error {
	return h.updateProgress(c, h.service.RIBProgress)
}

func (h *CaseHandler) HospitalUpdateProgress(c echo.Context) error {
	return h.updateProgress(c, h.service.HospitalProgress)
}

func (h *CaseHandler) updateProgress(c echo.Context, apply func(context.Context, primitive.ObjectID, ProgressRequest, primitive.ObjectID) (*Case, error)) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var req ProgressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}

	updated, err := apply(c.Request().Context(), id, req, userID)
	if err != nil {
		return h.caseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CaseHandler) UpdateToEmergency(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var req EmergencyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	updated, err := h.service.SetEmergency(c.Request().Context(), id, req.IsEmergency)
	if err != nil {
		return h.caseError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CaseHandler) GetAll(c echo.Context) error {
	result, err := h.service.AllCases(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All Cases (sorted from latest to oldest)",
		"cases":   result,
	})
}

func (h *CaseHandler) GetByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	found, err := h.service.CaseByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if found == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}
	return c.JSON(http.StatusOK, found)
}

func (h *CaseHandler) GetMine(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}

	result, err := h.service.CasesByCreator(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CaseHandler) GetAssignedToRIB(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}

	result, err := h.service.CasesAssignedToRIB(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CaseHandler) GetAssignedToHospital(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}

	result, err := h.service.CasesAssignedToHospital(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CaseHandler) GetByRiskLevel(c echo.Context) error {
	riskLevel := c.QueryParam("riskLevel")
	result, err := h.service.CasesByRiskLevel(c.Request().Context(), riskLevel)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cases filtered by risk level: " + riskLevel,
		"cases":   result,
	})
}

func (h *CaseHandler) GetEmergencies(c echo.Context) error {
	result, err := h.service.EmergencyCases(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Emergency Cases (sorted from latest to oldest)",
		"cases":   result,
	})
}

func (h *CaseHandler) GetCounts(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid year"})
	}

	buckets, err := h.service.CaseCounts(c.Request().Context(), year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, buckets)
}

func (h *CaseHandler) DeleteByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	deleted, err := h.service.DeleteCase(c.Request().Context(), id)
	if err != nil {
		return h.caseError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Case deleted successfully",
		"deletedCase": deleted,
	})
}

func (h *CaseHandler) DeleteAll(c echo.Context) error {
	count, err := h.service.DeleteAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "All Cases deleted successfully",
		"deletedCount": count,
	})
}

func (h *CaseHandler) caseError(c echo.Context, err error) error {
	if errors.Is(err, ErrCaseNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

// collectUploads pushes every file under the named multipart part to object
// storage. A non-multipart body simply means no attachments.
func (h *CaseHandler) collectUploads(c echo.Context, name string) ([]string, error) {
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

func callerID(c echo.Context) (primitive.ObjectID, error) {
	idHex, _ := c.Get("userId").(string)
	return primitive.ObjectIDFromHex(idHex)
}
