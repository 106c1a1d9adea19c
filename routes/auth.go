package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"services-api-server/models"
	"services-api-server/types"
)

// registerClient creates a new client account
func (h *Handlers) registerClient(c *gin.Context) {
	var req models.ClientRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, types.CodeValidationError, "Invalid registration payload", err.Error())
		return
	}

	user, err := h.Auth.RegisterClient(c.Request.Context(), req)
	if err != nil {
		log.Printf("❌ Client registration failed for %s: %v", req.Email, err)
		failFromError(c, err, types.CodeRegistrationError)
		return
	}

	log.Printf("✅ Client registered: %s (ID: %d)", user.Email, user.ID)
	c.JSON(http.StatusCreated, types.Success(user))
}

// registerWorker creates a new worker account; it stays unverified until
// an operator flips is_verified.
func (h *Handlers) registerWorker(c *gin.Context) {
	var req models.WorkerRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, types.CodeValidationError, "Invalid registration payload", err.Error())
		return
	}

	user, err := h.Auth.RegisterWorker(c.Request.Context(), req)
	if err != nil {
		log.Printf("❌ Worker registration failed for %s: %v", req.Email, err)
		failFromError(c, err, types.CodeRegistrationError)
		return
	}

	log.Printf("✅ Worker registered: %s (ID: %d)", user.Email, user.ID)
	c.JSON(http.StatusCreated, types.Success(user))
}

// login authenticates a user and issues a bearer token
func (h *Handlers) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, types.CodeValidationError, "Invalid login payload", err.Error())
		return
	}

	result, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("🔒 Login rejected for %s: %v", req.Email, err)
		failFromError(c, err, types.CodeLoginError)
		return
	}

	log.Printf("✅ Login: %s (role: %s)", result.User.Email, result.User.Role)
	c.JSON(http.StatusOK, types.Success(result))
}
