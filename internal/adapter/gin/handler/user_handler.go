package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-table-service/internal/usecase/user"
	pkgerrors "user-table-service/pkg/errors"
	"user-table-service/pkg/logger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Job      string `json:"job"`
}

// UpdateUserRequest represents the HTTP request body for replacing a user
type UpdateUserRequest struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Job      string `json:"job"`
}

// PatchUserRequest represents the HTTP request body for changing a user's age
type PatchUserRequest struct {
	Age int `json:"age"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Job      string `json:"job"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

const (
	errInvalidID   = "Invalid user ID"
	errInvalidBody = "Invalid request body"
)

// ListUsers handles GET /api
func (h *UserHandler) ListUsers(c *gin.Context) {
	query := c.Query("query")

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{Query: query})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(resp.Users))
}

// CreateUser handles POST /api. The response carries every user, the new one last.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		FullName: req.FullName,
		Age:      req.Age,
		Job:      req.Job,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponses(resp.Users))
}

// GetUser handles GET /api/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(*resp))
}

// PatchUser handles PATCH /api/:id
func (h *UserHandler) PatchUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req PatchUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.uc.PatchUser(c.Request.Context(), user.PatchUserRequest{ID: id, Age: req.Age})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(*resp))
}

// UpdateUser handles PUT /api/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:       id,
		FullName: req.FullName,
		Age:      req.Age,
		Job:      req.Job,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(*resp))
}

// DeleteUser handles DELETE /api/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(*resp))
}

func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidID})
		return 0, false
	}
	return id, true
}

func (h *UserHandler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("Invalid request body",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   errInvalidBody,
			Message: err.Error(),
		})
		return false
	}
	return true
}

// handleError converts usecase errors to HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var validationErr *pkgerrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(validationErr.HTTPStatus(), ErrorResponse{
			Error:   validationErr.Message,
			Message: strings.Join(validationErr.Details, ", "),
		})
		return
	}

	status := http.StatusInternalServerError
	var statusErr pkgerrors.HTTPStatuser
	if errors.As(err, &statusErr) {
		status = statusErr.HTTPStatus()
	}

	if status >= http.StatusInternalServerError {
		// Usecase already logged the cause with the request id
		c.JSON(status, ErrorResponse{Error: pkgerrors.ErrInternal.Message})
		return
	}
	c.JSON(status, ErrorResponse{Error: statusErr.Error()})
}

func toResponse(u user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Age:      u.Age,
		Job:      u.Job,
	}
}

func toResponses(users []user.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toResponse(u)
	}
	return out
}
