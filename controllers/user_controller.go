package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/middleware"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// InterfaceUserController defines the user controller interface
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	CreateUser()
	UpdateUser()
	DeleteUser()
}

// UserController handles staff account endpoints
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController creates a new user controller
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateUserRequest carries the new account fields
type CreateUserRequest struct {
	Username string `json:"username" binding:"required" example:"mreyes"`
	Email    string `json:"email" binding:"required" example:"mreyes@example.com"`
	Password string `json:"password" binding:"required" example:"S3cure!Pass01"`
	Role     string `json:"role" example:"clerk"`
}

// UpdateUserRequest carries the editable account fields
type UpdateUserRequest struct {
	Email    string `json:"email" example:"mreyes@example.com"`
	Password string `json:"password" example:"S3cure!Pass02"`
	Role     string `json:"role" example:"admin"`
}

// HandleUserFunc returns a gin handler for the user controller
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

func (c *UserController) userService() services.InterfaceUserService {
	return c.Container.GetService("user").(services.InterfaceUserService)
}

func (c *UserController) auditService() services.InterfaceAuditService {
	return c.Container.GetService("audit").(services.InterfaceAuditService)
}

func (c *UserController) pathID() (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(c.Ctx, "invalid user id")
		return 0, false
	}
	return uint(id), true
}

// 1. GetUsers lists the staff accounts (admin)
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 20"
// @Success      200  {object}  map[string]interface{}
// @Router       /users [get]
// @Security     BearerAuth
func (c *UserController) GetUsers() {
	page, pageSize := parsePagination(c.Ctx, c.Container.GetConfig().DefaultPageSize)

	users, total, err := c.userService().GetAllUsers(page, pageSize)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"users":      users,
	})
}

// 2. GetUser loads one staff account (admin)
// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (c *UserController) GetUser() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	user, err := c.userService().GetUserByID(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, user)
}

// 3. CreateUser creates a staff account (admin)
// @Summary      Create a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "Account fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /users [post]
// @Security     BearerAuth
func (c *UserController) CreateUser() {
	var req CreateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "username, email and password are required")
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := c.userService().CreateUser(user); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "create_user", "user", user.ID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"username": user.Username, "role": user.Role})

	response.Success(c.Ctx, user)
}

// 4. UpdateUser edits a staff account (admin)
// @Summary      Update a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body UpdateUserRequest true "Account fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (c *UserController) UpdateUser() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Password != "" {
		updates["password"] = req.Password
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "nothing to update")
		return
	}

	actor := middleware.CurrentUserID(c.Ctx)
	user, err := c.userService().UpdateUser(actor, id, updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "update_user", "user", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)

	response.Success(c.Ctx, user)
}

// 5. DeleteUser removes a staff account (admin)
// @Summary      Delete a user
// @Tags         Users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (c *UserController) DeleteUser() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	actor := middleware.CurrentUserID(c.Ctx)
	if err := c.userService().DeleteUser(actor, id); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "delete_user", "user", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)

	response.Success(c.Ctx, gin.H{"message": "user deleted"})
}
