package handlers

import (
	"errors"
	"net/http"
	"strings"

	"salestracker/internal/models"
	"salestracker/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Credentials and role"
// @Success      200   {object}  map[string]string  "username, role"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must not be blank"})
		return
	}
	role, err := models.ParseRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Register(c.Request.Context(), input.Username, input.Password, role)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			if h.log != nil {
				h.log.Infow("register_duplicate_username", "username", input.Username)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "register_failed", err,
			"username", input.Username)
		return
	}

	if h.log != nil {
		h.log.Infow("user_registered", "username", user.Username, "role", user.Role)
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username, "role": user.Role})
}

// @Summary      Log in and obtain a bearer token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  map[string]string  "access_token, token_type, role"
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, role, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("login_failed", "username", input.Username)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "login_error", err,
			"username", input.Username)
		return
	}

	if h.log != nil {
		h.log.Infow("login_succeeded", "username", input.Username)
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"role":         role,
	})
}

// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string  "username, role"
// @Failure      401  {object}  map[string]string
// @Router       /profile [get]
// @Security     BearerAuth
func (h *Handler) profile(c *gin.Context) {
	identity := currentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": identity.Username, "role": identity.Role})
}

// @Summary      Verify a bearer token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool  "valid"
// @Failure      401  {object}  map[string]string
// @Router       /api/verify-token [post]
// @Security     BearerAuth
func (h *Handler) verifyToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
		return
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	if _, err := h.services.ParseToken(parts[1]); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
