package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updatePreferencesRequest struct {
	Dark   *bool   `json:"dark"`
	Search *string `json:"search"`
}

func getPreferencesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Preferences.Get())
}

func toggleThemeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Preferences.ToggleTheme(c.Request.Context()))
}

func updatePreferencesHandler(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid preferences payload")
		return
	}
	prefs := currentSession(c).Preferences
	if req.Dark != nil {
		prefs.SetDark(c.Request.Context(), *req.Dark)
	}
	if req.Search != nil {
		prefs.SetSearch(*req.Search)
	}
	c.JSON(http.StatusOK, prefs.Get())
}
