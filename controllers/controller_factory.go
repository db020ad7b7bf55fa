package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/code"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/middleware"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// BaseController is the interface shared by all controllers
type BaseController interface {
	GetContainer() *container.ServiceContainer
	GetContext() *gin.Context
}

// BaseControllerImpl is the base controller implementation
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer implements BaseController
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext implements BaseController
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ControllerFactory creates controllers bound to the service container
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory creates a new controller factory
func NewControllerFactory(container *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{
		Container: container,
	}
}

// ErrorResponse documents the error envelope for swagger
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// parsePagination reads the page/page_size query parameters with clamping
func parsePagination(c *gin.Context, defaultSize int) (int, int) {
	if defaultSize < 1 || defaultSize > 100 {
		defaultSize = 20
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultSize
	}
	return page, pageSize
}

// actorID returns the authenticated user's ID as a pointer for audit rows
func actorID(c *gin.Context) *uint {
	id := middleware.CurrentUserID(c)
	if id == 0 {
		return nil
	}
	return &id
}

// invalidateDashboard drops the cached dashboard aggregates after a
// write. Best effort, the cache is rebuilt on the next dashboard read.
func invalidateDashboard(sc *container.ServiceContainer) {
	cache, ok := sc.GetService("redis").(services.InterfaceRedisService)
	if !ok || cache == nil {
		return
	}
	if err := cache.InvalidateDashboard(); err != nil {
		config.Warning("failed to invalidate dashboard cache: %v", err)
	}
}

// handleServiceError maps service errors onto the response envelope
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTooManyAttempts):
		response.Fail(c, code.ErrTooManyRequests, nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Fail(c, code.ErrUserPasswordIncorrect, nil)
	case errors.Is(err, services.ErrInvalidOTP):
		response.Fail(c, code.ErrOTPInvalid, nil)
	case errors.Is(err, services.ErrWeakPassword):
		response.Fail(c, code.ErrPasswordPolicy, nil)
	case errors.Is(err, services.ErrUserExists):
		response.Fail(c, code.ErrUserAlreadyExist, nil)
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidRole):
		response.ParamError(c, err.Error())
	case errors.Is(err, services.ErrSelfModification):
		response.Fail(c, code.ErrSelfModification, nil)
	case errors.Is(err, services.ErrResidentNotFound):
		response.Fail(c, code.ErrResidentNotFound, nil)
	case errors.Is(err, services.ErrResidentArchived):
		response.Fail(c, code.ErrResidentArchived, nil)
	case errors.Is(err, services.ErrDuplicateResident),
		errors.Is(err, services.ErrDuplicateArchived):
		response.FailWithMessage(c, code.ErrResidentAlreadyExist, err.Error(), nil)
	case errors.Is(err, services.ErrBarangayIDTaken):
		response.Fail(c, code.ErrBarangayIDTaken, nil)
	case errors.Is(err, services.ErrInvalidBarangayID),
		errors.Is(err, services.ErrBirthDateInFuture),
		errors.Is(err, services.ErrInvalidGender),
		errors.Is(err, services.ErrInvalidMaritalStatus),
		errors.Is(err, services.ErrMissingRequiredName),
		errors.Is(err, services.ErrIssueDateInFuture),
		errors.Is(err, services.ErrIssueBeforeBirth),
		errors.Is(err, services.ErrInvalidTemplate):
		response.ParamError(c, err.Error())
	case errors.Is(err, services.ErrDocumentNotFound):
		response.Fail(c, code.ErrDocumentNotFound, nil)
	case errors.Is(err, services.ErrDocumentImmutable):
		response.Fail(c, code.ErrDocumentImmutable, nil)
	case errors.Is(err, services.ErrDocumentStatus),
		errors.Is(err, services.ErrDocumentArchived),
		errors.Is(err, services.ErrDocumentNotIssued):
		response.FailWithMessage(c, code.ErrDocumentStatus, err.Error(), nil)
	case errors.Is(err, services.ErrPhotoRequired):
		response.Fail(c, code.ErrPhotoRequired, nil)
	case errors.Is(err, services.ErrPDFGeneration):
		response.Fail(c, code.ErrPDFGeneration, nil)
	case errors.Is(err, services.ErrDocumentTypeNotFound):
		response.Fail(c, code.ErrDocumentTypeNotFound, nil)
	case errors.Is(err, services.ErrDocumentTypeExists):
		response.Fail(c, code.ErrDocumentTypeExists, nil)
	case errors.Is(err, services.ErrDocumentTypeInUse):
		response.Fail(c, code.ErrDocumentTypeInUse, nil)
	case errors.Is(err, services.ErrBackupNotFound),
		errors.Is(err, services.ErrUnsafePath):
		response.NotFound(c, "backup not found")
	default:
		response.Fail(c, code.ErrDatabase, nil)
	}
}
