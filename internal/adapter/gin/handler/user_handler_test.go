package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	usecase "user-table-service/internal/usecase/user"
	pkgerrors "user-table-service/pkg/errors"
)

// MockUserUsecase is a mock implementation of user.Usecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, req usecase.ListUsersRequest) (*usecase.ListUsersResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ListUsersResponse), args.Error(1)
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) (*usecase.CreateUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateUserResponse), args.Error(1)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, req usecase.GetUserRequest) (*usecase.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.User), args.Error(1)
}

func (m *MockUserUsecase) PatchUser(ctx context.Context, req usecase.PatchUserRequest) (*usecase.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.User), args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, req usecase.UpdateUserRequest) (*usecase.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.User), args.Error(1)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, req usecase.DeleteUserRequest) (*usecase.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.User), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *UserHandler, *MockUserUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockUserUsecase)
	t.Cleanup(func() { mockUsecase.AssertExpectations(t) })

	handler := NewUserHandler(mockUsecase, zaptest.NewLogger(t))
	return gin.New(), handler, mockUsecase
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

var demo = []usecase.User{
	{ID: 1, FullName: "Pouria Navipour", Age: 18, Job: "Frontend developer"},
	{ID: 2, FullName: "John Doe", Age: 26, Job: "Backend developer"},
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/api", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, usecase.ListUsersRequest{}).
			Return(&usecase.ListUsersResponse{Users: demo}, nil)

		w := doJSON(r, http.MethodGet, "/api", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp []UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, UserResponse{ID: 2, FullName: "John Doe", Age: 26, Job: "Backend developer"}, resp[1])
	})

	t.Run("Query Is Forwarded", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/api", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, usecase.ListUsersRequest{Query: "doe"}).
			Return(&usecase.ListUsersResponse{Users: demo[1:]}, nil)

		w := doJSON(r, http.MethodGet, "/api?query=doe", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Empty Result Is An Array", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/api", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, usecase.ListUsersRequest{Query: "zzz"}).
			Return(&usecase.ListUsersResponse{}, nil)

		w := doJSON(r, http.MethodGet, "/api?query=zzz", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Usecase Error", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/api", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		w := doJSON(r, http.MethodGet, "/api", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeError(t, w).Error)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/api", handler.CreateUser)

		created := usecase.User{ID: 3, FullName: "Ada Lovelace", Age: 36, Job: "Analyst"}
		want := usecase.CreateUserRequest{FullName: "Ada Lovelace", Age: 36, Job: "Analyst"}
		mockUsecase.On("CreateUser", mock.Anything, want).
			Return(&usecase.CreateUserResponse{Created: created, Users: append(append([]usecase.User{}, demo...), created)}, nil)

		w := doJSON(r, http.MethodPost, "/api", `{"fullName":"Ada Lovelace","age":36,"job":"Analyst"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp []UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 3)
		assert.Equal(t, int64(3), resp[2].ID)
		assert.Equal(t, "Ada Lovelace", resp[2].FullName)
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, handler, _ := setupTest(t)
		r.POST("/api", handler.CreateUser)

		w := doJSON(r, http.MethodPost, "/api", "invalid json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeError(t, w).Error)
	})

	t.Run("Wrong Field Type", func(t *testing.T) {
		r, handler, _ := setupTest(t)
		r.POST("/api", handler.CreateUser)

		w := doJSON(r, http.MethodPost, "/api", `{"fullName":"A","age":"old","job":"B"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeError(t, w).Error)
	})

	t.Run("Fractional Age", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/api", handler.CreateUser)

		w := doJSON(r, http.MethodPost, "/api", `{"fullName":"A","age":20.5,"job":"B"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeError(t, w).Error)
		mockUsecase.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/api", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, usecase.CreateUserRequest{FullName: "Ada"}).
			Return(nil, pkgerrors.NewValidationError("", "Missing required fields", "age is required", "job is required"))

		w := doJSON(r, http.MethodPost, "/api", `{"fullName":"Ada"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, "Missing required fields", resp.Error)
		assert.Equal(t, "age is required, job is required", resp.Message)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/api/:id", handler.GetUser)

		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: 1}).Return(&demo[0], nil)

		w := doJSON(r, http.MethodGet, "/api/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"fullName":"Pouria Navipour","age":18,"job":"Frontend developer"}`, w.Body.String())
	})

	t.Run("Invalid ID", func(t *testing.T) {
		r, handler, _ := setupTest(t)
		r.GET("/api/:id", handler.GetUser)

		w := doJSON(r, http.MethodGet, "/api/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid user ID", decodeError(t, w).Error)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/api/:id", handler.GetUser)

		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: 99}).Return(nil, pkgerrors.ErrUserNotFound)

		w := doJSON(r, http.MethodGet, "/api/99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})
}

func TestHandleError_StoreFailures(t *testing.T) {
	t.Run("Internal Error Hides Cause", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/api/:id", handler.GetUser)

		cause := pkgerrors.NewInternalError("failed to get user", errors.New("database is locked"))
		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: 3}).Return(nil, cause)

		w := doJSON(r, http.MethodGet, "/api/3", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "locked")
	})

	t.Run("Wrapped Not Found Keeps Status", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.DELETE("/api/:id", handler.DeleteUser)

		wrapped := fmt.Errorf("delete 5: %w", pkgerrors.ErrUserNotFound)
		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: 5}).Return(nil, wrapped)

		w := doJSON(r, http.MethodDelete, "/api/5", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})
}

func TestPatchUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PATCH("/api/:id", handler.PatchUser)

		mockUsecase.On("PatchUser", mock.Anything, usecase.PatchUserRequest{ID: 1, Age: 19}).
			Return(&usecase.User{ID: 1, FullName: "Pouria Navipour", Age: 19, Job: "Frontend developer"}, nil)

		w := doJSON(r, http.MethodPatch, "/api/1", `{"age":19}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 19, resp.Age)
	})

	t.Run("Other Fields Are Ignored", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PATCH("/api/:id", handler.PatchUser)

		mockUsecase.On("PatchUser", mock.Anything, usecase.PatchUserRequest{ID: 2, Age: 30}).Return(&demo[1], nil)

		w := doJSON(r, http.MethodPatch, "/api/2", `{"age":30,"fullName":"Ignored"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PATCH("/api/:id", handler.PatchUser)

		mockUsecase.On("PatchUser", mock.Anything, usecase.PatchUserRequest{ID: 42, Age: 30}).Return(nil, pkgerrors.ErrUserNotFound)

		w := doJSON(r, http.MethodPatch, "/api/42", `{"age":30}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, handler, _ := setupTest(t)
		r.PATCH("/api/:id", handler.PatchUser)

		w := doJSON(r, http.MethodPatch, "/api/1", `{"age":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/api/:id", handler.UpdateUser)

		want := usecase.UpdateUserRequest{ID: 2, FullName: "John Smith", Age: 27, Job: "Tech lead"}
		mockUsecase.On("UpdateUser", mock.Anything, want).
			Return(&usecase.User{ID: 2, FullName: "John Smith", Age: 27, Job: "Tech lead"}, nil)

		w := doJSON(r, http.MethodPut, "/api/2", `{"fullName":"John Smith","age":27,"job":"Tech lead"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":2,"fullName":"John Smith","age":27,"job":"Tech lead"}`, w.Body.String())
	})

	t.Run("Invalid ID", func(t *testing.T) {
		r, handler, _ := setupTest(t)
		r.PUT("/api/:id", handler.UpdateUser)

		w := doJSON(r, http.MethodPut, "/api/abc", "{}")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/api/:id", handler.UpdateUser)

		mockUsecase.On("UpdateUser", mock.Anything, mock.Anything).Return(nil, pkgerrors.ErrUserNotFound)

		w := doJSON(r, http.MethodPut, "/api/42", `{"fullName":"X","age":1,"job":"Y"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.DELETE("/api/:id", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: 2}).Return(&demo[1], nil)

		w := doJSON(r, http.MethodDelete, "/api/2", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "John Doe", resp.FullName)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.DELETE("/api/:id", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: 7}).Return(nil, pkgerrors.ErrUserNotFound)

		w := doJSON(r, http.MethodDelete, "/api/7", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
