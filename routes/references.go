package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"services-api-server/models"
	"services-api-server/types"
)

// getLocations returns the location reference table
func (h *Handlers) getLocations(c *gin.Context) {
	locations, err := h.Store.ListLocations(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to fetch locations: %v", err)
		fail(c, types.CodeFetchError, "Failed to fetch locations")
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	c.JSON(http.StatusOK, types.Success(locations))
}

// getCategories returns the service category reference table
func (h *Handlers) getCategories(c *gin.Context) {
	categories, err := h.Store.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to fetch categories: %v", err)
		fail(c, types.CodeFetchError, "Failed to fetch categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, types.Success(categories))
}
