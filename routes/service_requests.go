package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"services-api-server/models"
	"services-api-server/types"
)

// pathID parses the :id path parameter
func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		fail(c, types.CodeValidationError, "Invalid service request ID")
		return 0, false
	}
	return uint(value), true
}

// createServiceRequest opens a new service request against a worker.
// Only clients create requests; they start out pending.
func (h *Handlers) createServiceRequest(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !user.IsClient() {
		fail(c, types.CodeUnauthorized, "Only clients can create service requests")
		return
	}

	var req models.ServiceRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, types.CodeValidationError, "Invalid service request payload", err.Error())
		return
	}

	request, err := h.Lifecycle.Create(c.Request.Context(), user.ID, req.WorkerID, req.Description)
	if err != nil {
		log.Printf("❌ Service request creation failed (client %d -> worker %d): %v", user.ID, req.WorkerID, err)
		failFromError(c, err, types.CodeCreateError)
		return
	}

	log.Printf("📋 Service request %d created: client %d -> worker %d", request.ID, user.ID, req.WorkerID)
	c.JSON(http.StatusCreated, types.Success(request))
}

// listServiceRequests returns the authenticated worker's inbox, newest first
func (h *Handlers) listServiceRequests(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !user.IsWorker() {
		fail(c, types.CodeUnauthorized, "Only workers can list incoming requests")
		return
	}

	requests, err := h.Lifecycle.ListForWorker(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("❌ Failed to list requests for worker %d: %v", user.ID, err)
		fail(c, types.CodeFetchError, "Failed to fetch service requests")
		return
	}
	if requests == nil {
		requests = []models.ServiceRequest{}
	}

	c.JSON(http.StatusOK, types.Success(requests))
}

// actionServiceRequest applies a lifecycle action to a request owned by
// the authenticated worker
func (h *Handlers) actionServiceRequest(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !user.IsWorker() {
		fail(c, types.CodeUnauthorized, "Only workers can act on service requests")
		return
	}

	requestID, ok := pathID(c)
	if !ok {
		return
	}

	var req models.ServiceRequestAction
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, types.CodeValidationError, "Invalid action payload", err.Error())
		return
	}

	request, err := h.Lifecycle.Transition(c.Request.Context(), requestID, user.ID, req.Action)
	if err != nil {
		log.Printf("⚠️ Action %q rejected on request %d (worker %d): %v", req.Action, requestID, user.ID, err)
		failFromError(c, err, types.CodeUpdateError)
		return
	}

	log.Printf("🔄 Request %d -> %s (worker %d)", request.ID, request.Status, user.ID)
	c.JSON(http.StatusOK, types.Success(request))
}

// rateWorker records a client's rating for a completed service request
func (h *Handlers) rateWorker(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !user.IsClient() {
		fail(c, types.CodeUnauthorized, "Only clients can rate services")
		return
	}

	requestID, ok := pathID(c)
	if !ok {
		return
	}

	var req models.ServiceRatingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, types.CodeValidationError, "Invalid rating payload", err.Error())
		return
	}

	summary, err := h.Rating.Rate(c.Request.Context(), requestID, user.ID, req.Rating)
	if err != nil {
		log.Printf("⚠️ Rating rejected on request %d (client %d): %v", requestID, user.ID, err)
		failFromError(c, err, types.CodeRatingError)
		return
	}

	log.Printf("⭐ Request %d rated %d by client %d", requestID, req.Rating, user.ID)
	c.JSON(http.StatusOK, types.Success(summary))
}
