package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ukmstimbara/inventaris-api/internal/middleware"
	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
	"github.com/ukmstimbara/inventaris-api/internal/services"
	"github.com/ukmstimbara/inventaris-api/internal/storage"
)

type UserHandler struct {
	userService *services.UserService
	storage     *storage.LocalStorage
}

func NewUserHandler(userService *services.UserService, storage *storage.LocalStorage) *UserHandler {
	return &UserHandler{
		userService: userService,
		storage:     storage,
	}
}

// @Summary List Users
// @Description Get a paginated list of users
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name, username, email or NIM"
// @Param role query string false "Filter by role"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["role"] = c.Query("role")

	users, total, err := h.userService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.UserResponse
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"users": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get User
// @Description Get a user by ID
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	user, err := h.userService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pengguna tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

type CreateUserRequest struct {
	Nama     string `json:"nama" binding:"required"`
	Username string `json:"username" binding:"required,min=3"`
	Gmail    string `json:"gmail" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	NIM      string `json:"nim"`
}

// @Summary Create User
// @Description Create a new user (admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User Data"
// @Success 201 {object} models.UserResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), middleware.GetUserID(c), middleware.GetUsername(c), services.CreateUserInput{
		Nama:     req.Nama,
		Username: req.Username,
		Gmail:    req.Gmail,
		Password: req.Password,
		Role:     req.Role,
		NIM:      req.NIM,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username sudah terdaftar"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user.ToResponse()})
}

type UpdateUserRequest struct {
	Nama  *string `json:"nama"`
	Gmail *string `json:"gmail" binding:"omitempty,email"`
	NIM   *string `json:"nim"`
}

// @Summary Update User
// @Description Update a user's profile (admin or the profile owner)
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Profile Fields"
// @Success 200 {object} models.UserResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), uint(id), services.UpdateProfileInput{
		Nama:  req.Nama,
		Gmail: req.Gmail,
		NIM:   req.NIM,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengguna tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

// @Summary Upload Profile Picture
// @Description Upload a profile photo for the current user
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Profile Photo"
// @Success 200 {object} models.UserResponse
// @Security BearerAuth
// @Router /users/profile_picture [post]
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File foto wajib diunggah"})
		return
	}
	defer file.Close()

	path, err := h.storage.UploadImage(file, header, storage.DirProfil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), services.UpdateProfileInput{
		ProfilePicture: &path,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// @Summary Change Password
// @Description Change the current user's password
// @Tags Users
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /users/change_password [patch]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Kata sandi berhasil diubah"})
}

// @Summary Toggle User Status
// @Description Activate or deactivate a user account (admin only)
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Security BearerAuth
// @Router /users/{id}/toggle_status [put]
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	user, err := h.userService.ToggleStatus(c.Request.Context(), middleware.GetUserID(c), middleware.GetUsername(c), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengguna tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

// @Summary Delete User
// @Description Delete a user account (admin only)
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	err := h.userService.Delete(c.Request.Context(), middleware.GetUserID(c), middleware.GetUsername(c), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengguna tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pengguna berhasil dihapus"})
}
