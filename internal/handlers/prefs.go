package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/middleware"
	"scanpay_back_end/internal/models"
)

// GET /api/profile
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.Prefs.Get(c.Request.Context(), middleware.CurrentSession(c).Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Profile)
}

// PATCH /api/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data"})
		return
	}
	profile, err := h.Prefs.UpdateProfile(c.Request.Context(), middleware.CurrentSession(c).Email, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	p, err := h.Prefs.Get(c.Request.Context(), middleware.CurrentSession(c).Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Settings)
}

// PATCH /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings"})
		return
	}
	settings, err := h.Prefs.UpdateSettings(c.Request.Context(), middleware.CurrentSession(c).Email, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// POST /api/settings/:key/toggle
func (h *Handler) ToggleSetting(c *gin.Context) {
	settings, err := h.Prefs.ToggleSetting(c.Request.Context(), middleware.CurrentSession(c).Email, c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
