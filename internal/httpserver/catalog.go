package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"plantshop/internal/service/catalog"
)

type catalogResponse struct {
	catalog.View
	Applied bool `json:"applied"`
}

// listPlantsHandler is a stateless passthrough to the plants API.
func listPlantsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := intQuery(c, "page", 1)
		if !ok {
			badRequest(c, "page must be a positive integer")
			return
		}
		perPage, ok := intQuery(c, "per_page", svc.PerPage())
		if !ok {
			badRequest(c, "per_page must be a positive integer")
			return
		}
		result, err := svc.BrowsePage(c.Request.Context(), page, perPage, c.Query("q"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// catalogHandler loads a page into the session's catalog view. A q parameter
// replaces the stored search term; without one the stored term is reused.
func catalogHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := currentSession(c)
		page, ok := intQuery(c, "page", 1)
		if !ok {
			badRequest(c, "page must be a positive integer")
			return
		}

		search := state.Preferences.Get().Search
		if q, present := c.GetQuery("q"); present {
			search = state.Preferences.SetSearch(q).Search
		}

		view, applied, err := state.Browser.Load(c.Request.Context(), page, search)
		if err != nil {
			logger.Warn("catalog load failed",
				zap.String("session", state.ID),
				zap.Int("page", page),
				zap.String("search", search),
				zap.Error(err))
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, catalogResponse{View: view, Applied: applied})
	}
}
