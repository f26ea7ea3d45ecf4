package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wbonfim/DeliveryApp/internal/middleware"
	"github.com/wbonfim/DeliveryApp/internal/models"
)

type AuthHandler struct {
	authService AuthServiceInterface
}

func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the routes for authentication
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMiddleware.AuthRequired(), h.Me)
		authGroup.POST("/refresh", authMiddleware.AuthRequired(), h.Refresh)
	}
}

// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// @Summary Login user
// @Description Authenticate by username or email and return a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.Credentials true "Login request"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}

	token, user, err := h.authService.Login(c.Request.Context(), login, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, models.UserResponse{User: middleware.CurrentUser(c)})
}

// @Summary Refresh token
// @Tags auth
// @Produce json
// @Success 200 {object} models.TokenResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := h.authService.RefreshToken(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TokenResponse{Message: "Token refreshed", Token: token})
}
