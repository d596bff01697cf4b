package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mka-platform/lms-api/internal/core/ports"
)

// UserHandler exposes the user listing, detail, update and delete endpoints
// consumed by the admin front-end.
type UserHandler struct {
	users     ports.UserService
	uploadDir string
}

func NewUserHandler(users ports.UserService, uploadDir string) *UserHandler {
	return &UserHandler{users: users, uploadDir: uploadDir}
}

// listResponse mirrors the envelope the admin front-end expects.
type listResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// List returns every user. During a store outage the fallback cache contents
// are served instead.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Success: true, Data: users})
}

// GetByID returns a single user.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /auth/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update keyed by id.
//
// @Summary      Update a user by id
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Router       /auth/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.UpdateByID(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user by id. During an outage the fallback cache is
// searched instead.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.users.Remove(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("user %d deleted", id)})
}

// GetByEmail returns the profile behind the given address.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Account email"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  errorResponse
// @Router       /users/{email} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.users.FindByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateByEmail applies a profile update keyed by email. The request is
// multipart: text fields plus an optional profilePic file, whose stored path
// ends up on the record.
//
// @Summary      Update a profile by email
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        email       path      string  true   "Account email"
// @Param        name        formData  string  false  "Display name"
// @Param        phone       formData  string  false  "Phone"
// @Param        location    formData  string  false  "Location"
// @Param        about       formData  string  false  "About"
// @Param        skills      formData  string  false  "Skills (JSON array or plain string)"
// @Param        profilePic  formData  file    false  "Profile picture"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /users/{email} [patch]
func (h *UserHandler) UpdateByEmail(c echo.Context) error {
	input := ports.UpdateInput{
		Name:     formField(c, "name"),
		Phone:    formField(c, "phone"),
		Location: formField(c, "location"),
		About:    formField(c, "about"),
	}

	// form values arrive as plain strings; re-encode so the core's skills
	// coercion sees the same JSON shape a direct API client would send
	if skills := formField(c, "skills"); skills != nil {
		encoded, err := json.Marshal(*skills)
		if err == nil {
			input.Skills = encoded
		}
	}

	file, err := c.FormFile("profilePic")
	if err == nil && file != nil {
		path, err := h.storeUpload(file)
		if err != nil {
			return fmt.Errorf("store profile picture: %w", err)
		}
		input.ProfilePic = &path
	}

	user, err := h.users.UpdateByEmail(c.Request().Context(), c.Param("email"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// storeUpload writes the uploaded file under the upload directory with a
// random name and returns the public path recorded on the user.
func (h *UserHandler) storeUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

// formField returns a pointer to the form value when the field was sent,
// nil otherwise, preserving the "absent means unchanged" patch semantics.
func formField(c echo.Context, name string) *string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
