package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthHandler struct {
	service *UserService
}

func NewAuthHandler(service *UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	token, user, err := h.service.Signup(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "User registered successfully",
		"access_token": token,
		"user":         Summarize(user),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	token, user, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		case errors.Is(err, ErrWrongPassword):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Wrong password"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "User logged in successfully",
		"access_token": token,
		"user":         Summarize(user),
	})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	err := h.service.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "No user with that email found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "OTP sent successfully, check your email"})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	err := h.service.ResetPassword(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "No user with that email found"})
		case errors.Is(err, ErrInvalidOTP):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or expired OTP"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
	}

	err = h.service.ChangePassword(c.Request().Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Wrong password"})
		case errors.Is(err, ErrUserNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *AuthHandler) GetAllClients(c echo.Context) error {
	clients, err := h.service.AllClients(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "All clients", "clients": clients})
}

func (h *AuthHandler) DeleteClient(c echo.Context) error {
	return h.deleteByID(c, "Client")
}

func (h *AuthHandler) ChangeUserRole(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	role, ok := ParseRole(req.Role)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown role"})
	}

	user, err := h.service.ChangeUserRole(c.Request().Context(), id, role)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "User role changed successfully", "user": user})
}

func (h *AuthHandler) CreateAgent(c echo.Context) error {
	return h.provision(c, RoleAgent)
}

func (h *AuthHandler) CreateDoctor(c echo.Context) error {
	return h.provision(c, RoleDoctor)
}

func (h *AuthHandler) GetAllAgents(c echo.Context) error {
	agents, err := h.service.UsersByRole(c.Request().Context(), RoleAgent)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "All agents", "agents": agents})
}

func (h *AuthHandler) DeleteAgent(c echo.Context) error {
	return h.deleteByID(c, "User")
}

func (h *AuthHandler) GetAllDoctors(c echo.Context) error {
	doctors, err := h.service.UsersByRole(c.Request().Context(), RoleDoctor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "All doctors", "doctors": doctors})
}

func (h *AuthHandler) DeleteDoctor(c echo.Context) error {
	return h.deleteByID(c, "User")
}

func (h *AuthHandler) provision(c echo.Context, role Role) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	token, user, err := h.service.Provision(c.Request().Context(), req, role)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "User registered successfully",
		"access_token": token,
		"user":         Summarize(user),
	})
}

func (h *AuthHandler) deleteByID(c echo.Context, label string) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	user, err := h.service.DeleteUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": label + " not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": label + " deleted successfully", "user": Summarize(user)})
}

// callerID reads the authenticated user id the JWT middleware stored on the
// request context.
func callerID(c echo.Context) (primitive.ObjectID, error) {
	idHex, _ := c.Get("userId").(string)
	return primitive.ObjectIDFromHex(idHex)
}
