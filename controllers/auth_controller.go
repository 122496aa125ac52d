package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shophub/models"
	"shophub/repositories"
	"shophub/utils"
)

type AuthController struct {
	users *repositories.UserRepository
}

func NewAuthController() *AuthController {
	return &AuthController{users: repositories.NewUserRepository()}
}

// @Summary Register new user
// @Description Register a new customer account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	exists, err := ctrl.users.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to check email"})
		return
	}
	if exists {
		c.JSON(400, gin.H{"success": false, "message": "Email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	user := &models.User{
		Email:    req.Email,
		Password: hash,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     "customer",
	}

	if err := ctrl.users.Create(c.Request.Context(), user); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Registration successful",
		"data":    models.LoginResponse{Token: token, User: *user},
	})
}

// @Summary Login
// @Description Authenticate and receive a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	user, err := ctrl.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil || !utils.VerifyPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    models.LoginResponse{Token: token, User: *user},
	})
}

// @Summary Get profile
// @Description Get the authenticated user's profile
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	user, err := ctrl.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Profile retrieved", "data": user})
}

// @Summary Update profile
// @Description Update the authenticated user's profile
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.Response
// @Router /auth/profile [patch]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	user, err := ctrl.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if err := ctrl.users.UpdateProfile(c.Request.Context(), user); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Profile updated successfully", "data": user})
}
