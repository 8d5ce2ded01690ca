package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/middleware"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/utils"
)

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

var landingRoutes = map[string]string{
	models.RoleCustomer: "/customer",
	models.RoleAdmin:    "/admin",
	models.RoleSecurity: "/security",
}

// POST /api/login: demo login, any credentials are accepted.
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" || role == "user" {
		role = models.RoleCustomer
	}
	landing, ok := landingRoutes[role]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	sess := h.Sessions.Create(email, role)
	token, err := utils.GenerateSessionToken(h.Config.JWTSecret, sess.ID, email, role, h.Config.SessionTTL)
	if err != nil {
		h.Sessions.Remove(sess.ID)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"role":     role,
		"email":    email,
		"redirect": landing,
	})
}

// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	h.Sessions.Remove(sess.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
