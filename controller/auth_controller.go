// controller/auth_controller.go
package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapictureday/sail/auth"
	sail_errors "github.com/sapictureday/sail/errors"
	"github.com/sapictureday/sail/model"
	"github.com/sapictureday/sail/util"
)

// UserLookup is the slice of the user DAO the login path needs.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthController struct {
	users    UserLookup
	sessions *auth.SessionManager
}

func NewAuthController(users UserLookup, sessions *auth.SessionManager) *AuthController {
	return &AuthController{users: users, sessions: sessions}
}

// RegisterRoutes registers the API routes
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/login", ac.Login)
	r.POST("/logout", ac.Logout)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid login data", err)
		return
	}

	user, err := ac.users.GetUserByEmail(c, req.Email)
	if err != nil {
		if errors.Is(err, sail_errors.ErrUserNotFound) {
			// Same response as a bad password; do not leak which emails exist.
			util.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials", sail_errors.ErrInvalidCredentials)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to log in", err)
		}
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		util.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials", sail_errors.ErrInvalidCredentials)
		return
	}

	carrier := auth.NewCarrier(c)
	if err := ac.sessions.Issue(c, carrier, *user); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "name": user.Name})
}

// Logout endpoint
func (ac *AuthController) Logout(c *gin.Context) {
	ac.sessions.Revoke(c, auth.NewCarrier(c))
	c.Status(http.StatusNoContent)
}
