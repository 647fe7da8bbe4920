package cases

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gilberthappi/isange-pro-be/internal/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUploader struct{}

func (stubUploader) UploadMultipart(_ context.Context, fh *multipart.FileHeader) (string, error) {
	return "https://bucket.example.com/" + fh.Filename, nil
}

func newHandlerFixture() (*CaseHandler, *memoryDirectory) {
	svc, _, dir, _ := newCaseFixture()
	return NewCaseHandler(svc, stubUploader{}), dir
}

func doJSON(h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	_ = h(c)
	return rec
}

func TestCreateCaseHandler(t *testing.T) {
	h, dir := newHandlerFixture()
	reporter := addUser(dir, auth.RoleUser)

	rec := doJSON(h.CreateCase, http.MethodPost, "/api/v1/case/create",
		`{"caseTitle":"Stolen phone","typeOfCase":"theft"}`,
		func(c echo.Context) {
			c.Set("userId", reporter.ID.Hex())
		})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"caseTitle":"Stolen phone"`)
	assert.Contains(t, rec.Body.String(), `"photo":null`, "no uploads means null attachment lists")
}

func TestCreateCaseHandlerMissingCaller(t *testing.T) {
	h, _ := newHandlerFixture()

	rec := doJSON(h.CreateCase, http.MethodPost, "/api/v1/case/create",
		`{"caseTitle":"x"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCaseByIDNotFound(t *testing.T) {
	h, _ := newHandlerFixture()

	rec := doJSON(h.GetByID, http.MethodGet, "/", "", func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(primitive.NewObjectID().Hex())
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Case not found"}`, rec.Body.String())
}

func TestDeleteCaseNotFound(t *testing.T) {
	h, _ := newHandlerFixture()

	rec := doJSON(h.DeleteByID, http.MethodDelete, "/", "", func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(primitive.NewObjectID().Hex())
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Case not found"}`, rec.Body.String())
}

func TestAssignToRIBBadResponderID(t *testing.T) {
	h, _ := newHandlerFixture()

	rec := doJSON(h.AssignToRIB, http.MethodPut, "/", `{"ribId":"not-a-hex-id"}`, func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(primitive.NewObjectID().Hex())
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid user ID"}`, rec.Body.String())
}

func TestAssignToRIBUnknownResponder(t *testing.T) {
	h, dir := newHandlerFixture()
	reporter := addUser(dir, auth.RoleUser)

	created, err := h.service.CreateCase(context.Background(),
		CreateCaseRequest{CaseTitle: "x"}, nil, nil, reporter.ID)
	require.NoError(t, err)

	rec := doJSON(h.AssignToRIB, http.MethodPut, "/",
		`{"ribId":"`+primitive.NewObjectID().Hex()+`"}`,
		func(c echo.Context) {
			c.SetParamNames("id")
			c.SetParamValues(created.ID.Hex())
		})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"RIB branch not found"}`, rec.Body.String())
}

func TestGetCountsRejectsBadYear(t *testing.T) {
	h, _ := newHandlerFixture()

	rec := doJSON(h.GetCounts, http.MethodGet, "/?year=not-a-year", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid year"}`, rec.Body.String())
}
