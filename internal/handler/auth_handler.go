package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/service"
)

const refreshCookieName = "refreshToken"

// CookieOptions controls the refresh token cookie
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	cookie      CookieOptions
	clientURL   string
}

// NewAuthHandler creates a new auth handler. Activation redirects to clientURL.
func NewAuthHandler(authService service.AuthService, cookie CookieOptions, clientURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		clientURL:   clientURL,
	}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.cookie.Secure, true)
}

// Registration handles user registration
// @Summary Register a new user
// @Description Creates an inactive account, emails an activation link and opens a session
// @Tags user
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/registration [post]
func (h *AuthHandler) Registration(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		User:         dto.NewUserResponse(result.User),
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password. The access token is returned with a Bearer prefix.
// @Tags user
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	})
}

// Activate handles account activation links
// @Summary Activate account
// @Tags user
// @Param link path string true "Activation link identifier"
// @Success 302
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/activate/{link} [get]
func (h *AuthHandler) Activate(c *gin.Context) {
	if err := h.authService.Activate(c.Request.Context(), c.Param("link")); err != nil {
		writeError(c, err)
		return
	}

	c.Redirect(http.StatusFound, h.clientURL)
}

// Logout handles user logout
// @Summary Logout user
// @Description Deletes the session anchored by the refreshToken cookie and clears the cookie
// @Tags user
// @Produce json
// @Success 200 {object} dto.DeleteResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)
	accessToken, _ := bearerToken(c)

	deleted, err := h.authService.Logout(c.Request.Context(), refreshToken, accessToken)
	if err != nil {
		writeError(c, err)
		return
	}

	h.clearRefreshCookie(c)

	c.JSON(http.StatusOK, dto.DeleteResponse{DeletedCount: deleted})
}

// Refresh handles token refresh
// @Summary Refresh tokens
// @Description Exchanges the refreshToken cookie for a new token pair
// @Tags user
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /user/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)

	result, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setRefreshCookie(c, result.SessionToken)

	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		ID:           result.Identity.ID,
		Email:        result.Identity.Email,
		IsActivated:  result.Identity.IsActivated,
	})
}

// GetMe handles getting current user profile
// @Summary Get current user profile
// @Tags user
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), c.GetString(contextUserID))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
