package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"services-api-server/middleware"
	"services-api-server/services"
	"services-api-server/store"
	"services-api-server/types"
	ws "services-api-server/websocket"
)

// Handlers bundles the services the HTTP surface dispatches to
type Handlers struct {
	Store     store.Store
	Auth      *services.AuthService
	Lifecycle *services.LifecycleService
	Rating    *services.RatingService
	Chat      *ws.ChatHandler
}

// Register registers all API routes
func Register(router *gin.Engine, h *Handlers) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.Success(gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		}))
	})

	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register/client", h.registerClient)
			auth.POST("/register/worker", h.registerWorker)
			auth.POST("/login", h.login)
		}

		// Profile routes
		users := apiV1.Group("/users")
		users.Use(middleware.AuthMiddleware(h.Store))
		{
			users.GET("/me", h.getCurrentUser)
			users.PUT("/me", h.updateCurrentUser)
			users.GET("/workers", h.searchWorkers)
		}

		// Reference data routes
		references := apiV1.Group("/references")
		{
			references.GET("/locations", h.getLocations)
			references.GET("/categories", h.getCategories)
		}

		// Service request lifecycle + rating routes
		svc := apiV1.Group("/services")
		svc.Use(middleware.AuthMiddleware(h.Store))
		{
			svc.POST("/request", h.createServiceRequest)
			svc.GET("/requests", h.listServiceRequests)
			svc.POST("/request/:id/action", h.actionServiceRequest)
			svc.POST("/request/:id/rate", h.rateWorker)
		}

		// Chat channel; the admission protocol does its own token check
		apiV1.GET("/ws/services/:id/chat", h.Chat.ServeChat)
	}
}

// statusForCode maps envelope error codes to HTTP statuses
func statusForCode(code string) int {
	switch code {
	case types.CodeUnauthorized, types.CodeInvalidCredentials, types.CodeWorkerNotVerified:
		return http.StatusUnauthorized
	case types.CodeForbidden:
		return http.StatusForbidden
	case types.CodeNotFound:
		return http.StatusNotFound
	case types.CodeAlreadyRated, types.CodeUserExists:
		return http.StatusConflict
	case types.CodeInvalidAction, types.CodeInvalidTransition, types.CodeInvalidStatus,
		types.CodeInvalidReference, types.CodeValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes a failed envelope with the HTTP status implied by the code
func fail(c *gin.Context, code, message string, details ...string) {
	c.JSON(statusForCode(code), types.Failure(code, message, details...))
}

// failFromError translates a domain error into an envelope; unknown errors
// are reported under the infrastructure code with the underlying message.
func failFromError(c *gin.Context, err error, infraCode string) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		fail(c, types.CodeUnauthorized, "Caller role does not permit this operation")
	case errors.Is(err, services.ErrForbidden):
		fail(c, types.CodeForbidden, "Caller is not allowed to act on this resource")
	case errors.Is(err, services.ErrNotFound):
		fail(c, types.CodeNotFound, "Service request not found")
	case errors.Is(err, services.ErrInvalidAction):
		fail(c, types.CodeInvalidAction, "Invalid action")
	case errors.Is(err, services.ErrInvalidTransition):
		fail(c, types.CodeInvalidTransition, "Status transition not allowed")
	case errors.Is(err, services.ErrInvalidStatus):
		fail(c, types.CodeInvalidStatus, "Can only rate completed services")
	case errors.Is(err, services.ErrInvalidReference):
		fail(c, types.CodeInvalidReference, "Referenced entity does not exist")
	case errors.Is(err, services.ErrAlreadyRated):
		fail(c, types.CodeAlreadyRated, "Service already rated")
	case errors.Is(err, services.ErrUserExists):
		fail(c, types.CodeUserExists, "User with this email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, types.CodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, services.ErrWorkerNotVerified):
		fail(c, types.CodeWorkerNotVerified, "Worker account is pending verification")
	default:
		fail(c, infraCode, err.Error())
	}
}
