package application

import (
	"net/http"
	"strconv"

	"tourbook/internal/domain"
	"tourbook/internal/pkg/response"
	"tourbook/internal/policy"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.SubmitApplication)
	rg.GET("/applications", h.ListApplications)
	rg.GET("/applications/:id", h.GetApplication)
	rg.DELETE("/applications/:id", h.DeleteApplication)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications/:id/approve", h.ApproveApplication)
	rg.POST("/applications/:id/reject", h.RejectApplication)
}

func actorFrom(c *gin.Context) policy.Actor {
	return policy.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) SubmitApplication(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "company_name and company_address are required")
		return
	}

	app, err := h.service.Submit(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		switch err {
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only clients can apply for a company account")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "company_name and company_address are required")
		case ErrDuplicate:
			response.Error(c, http.StatusConflict, "DUPLICATE_APPLICATION", "A pending application or owned company already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit application")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"application": app})
}

func (h *Handler) ListApplications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	apps, total, err := h.service.List(c.Request.Context(), actorFrom(c), c.Query("status"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list applications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"applications": apps, "total": total})
}

func (h *Handler) GetApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid application ID")
		return
	}

	app, err := h.service.GetByID(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Application not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not enough permissions to view this application")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get application")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"application": app})
}

func (h *Handler) ApproveApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid application ID")
		return
	}

	app, company, err := h.service.Approve(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		switch err {
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only admins can approve applications")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Application not found")
		case ErrInvalidState:
			response.Error(c, http.StatusConflict, "INVALID_STATE", "Application has already been reviewed")
		case ErrDuplicate:
			response.Error(c, http.StatusConflict, "DUPLICATE_COMPANY", "Applicant already owns a company or the name is taken")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to approve application")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"application": app, "company": company})
}

func (h *Handler) RejectApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid application ID")
		return
	}

	var req RejectApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "reason is required")
		return
	}

	app, err := h.service.Reject(c.Request.Context(), actorFrom(c), id, req.Reason)
	if err != nil {
		switch err {
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only admins can reject applications")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "reason is required")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Application not found")
		case ErrInvalidState:
			response.Error(c, http.StatusConflict, "INVALID_STATE", "Application has already been reviewed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reject application")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"application": app})
}

func (h *Handler) DeleteApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid application ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Application not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Approved applications can only be deleted by admins")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete application")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
