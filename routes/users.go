package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"services-api-server/models"
	"services-api-server/types"
)

// currentUser pulls the authenticated user placed by the auth middleware
func currentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		fail(c, types.CodeUnauthorized, "Authentication required")
		return models.User{}, false
	}
	user, ok := value.(models.User)
	if !ok {
		fail(c, types.CodeUnauthorized, "Authentication required")
		return models.User{}, false
	}
	return user, true
}

// getCurrentUser returns the authenticated user's profile
func (h *Handlers) getCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, types.Success(user))
}

// updateCurrentUser applies the mutable profile fields
func (h *Handlers) updateCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, types.CodeValidationError, "Invalid profile payload", err.Error())
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if err := h.Store.UpdateUser(c.Request.Context(), &user); err != nil {
		log.Printf("❌ Profile update failed for user %d: %v", user.ID, err)
		fail(c, types.CodeUpdateError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, types.Success(user))
}

// searchWorkers lists verified workers, optionally filtered by category
// and location. Only clients browse workers.
func (h *Handlers) searchWorkers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !user.IsClient() {
		fail(c, types.CodeUnauthorized, "Only clients can browse workers")
		return
	}

	categoryID := queryUint(c, "category_id")
	locationID := queryUint(c, "location_id")

	workers, err := h.Store.SearchWorkers(c.Request.Context(), categoryID, locationID)
	if err != nil {
		log.Printf("❌ Worker search failed: %v", err)
		fail(c, types.CodeFetchError, "Failed to fetch workers")
		return
	}
	if workers == nil {
		workers = []models.User{}
	}

	c.JSON(http.StatusOK, types.Success(workers))
}

// queryUint parses an optional uint query parameter; 0 means absent
func queryUint(c *gin.Context, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}
