package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/middleware"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// InterfaceAuthController defines the auth controller interface
type InterfaceAuthController interface {
	Login()
	VerifyLogin()
	ChangePassword()
	ForgotPassword()
	ResetPassword()
}

// AuthController handles login, MFA and password flows
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates a new auth controller
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"clerk01"`
	Password string `json:"password" binding:"required" example:"Secret@Pass1"`
}

// VerifyLoginRequest finishes an MFA login
type VerifyLoginRequest struct {
	MFAToken string `json:"mfa_token" binding:"required" example:"3f9c1a..."`
	Code     string `json:"code" binding:"required" example:"A1B2C3"`
}

// ChangePasswordRequest changes the current user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Username string `json:"username" binding:"required" example:"clerk01"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// HandleAuthFunc returns a gin handler for the auth controller
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "verifyLogin":
			controller.VerifyLogin()
		case "changePassword":
			controller.ChangePassword()
		case "forgotPassword":
			controller.ForgotPassword()
		case "resetPassword":
			controller.ResetPassword()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

func (c *AuthController) authService() services.InterfaceAuthService {
	return c.Container.GetService("auth").(services.InterfaceAuthService)
}

func (c *AuthController) auditService() services.InterfaceAuditService {
	return c.Container.GetService("audit").(services.InterfaceAuditService)
}

// 1. Login checks credentials and either returns a token or starts MFA
// @Summary      Log in
// @Description  Checks username and password. Admin accounts receive an emailed one-time code instead of an immediate token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "username and password are required")
		return
	}

	result, err := c.authService().Login(req.Username, req.Password, c.Ctx.ClientIP())
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	if result.MFARequired {
		response.Success(c.Ctx, gin.H{
			"mfa_required": true,
			"mfa_token":    result.MFAToken,
		})
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(result.User.ID, result.User.Username, result.User.Role)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	userID := result.User.ID
	c.auditService().LogAction(&userID, "login", "user", userID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)

	response.Success(c.Ctx, gin.H{
		"token":                token,
		"user":                 result.User,
		"must_change_password": result.User.MustChangePassword,
	})
}

// 2. VerifyLogin consumes the MFA code and returns a token
// @Summary      Verify login code
// @Description  Completes an admin login with the emailed one-time code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body VerifyLoginRequest true "MFA token and code"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login/verify [post]
func (c *AuthController) VerifyLogin() {
	var req VerifyLoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "mfa_token and code are required")
		return
	}

	user, err := c.authService().VerifyLoginOTP(req.MFAToken, req.Code)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	userID := user.ID
	c.auditService().LogAction(&userID, "login_mfa", "user", userID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)

	response.Success(c.Ctx, gin.H{
		"token":                token,
		"user":                 user,
		"must_change_password": user.MustChangePassword,
	})
}

// 3. ChangePassword updates the authenticated user's password
// @Summary      Change password
// @Description  Verifies the current password before setting a new one
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Current and new password"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/password/change [post]
// @Security     BearerAuth
func (c *AuthController) ChangePassword() {
	var req ChangePasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "current_password and new_password are required")
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	if err := c.authService().ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "change_password", "user", userID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)

	response.Success(c.Ctx, gin.H{"message": "password updated"})
}

// 4. ForgotPassword starts a password reset by username.
// The response is identical whether or not the account exists.
// @Summary      Request password reset
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "Username"
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/password/forgot [post]
func (c *AuthController) ForgotPassword() {
	var req ForgotPasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "username is required")
		return
	}

	if err := c.authService().RequestPasswordReset(req.Username); err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"message": "If the account exists, a reset code has been sent to its email address.",
	})
}

// 5. ResetPassword completes a reset with the emailed code
// @Summary      Reset password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Username, code and new password"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/password/reset [post]
func (c *AuthController) ResetPassword() {
	var req ResetPasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "username, code and new_password are required")
		return
	}

	if err := c.authService().ResetPassword(req.Username, req.Code, req.NewPassword); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "password has been reset"})
}
