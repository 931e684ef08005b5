package catalog

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/tours", h.ListTours)
	rg.GET("/tours/:id", h.GetTour)
	rg.GET("/companies", h.ListCompanies)
	rg.GET("/companies/:id", h.GetCompany)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tours", h.CreateTour)
	rg.GET("/my/tours", h.ListMyTours)
	rg.PATCH("/tours/:id", h.UpdateTour)
	rg.POST("/tours/:id/deactivate", h.DeactivateTour)
	rg.DELETE("/tours/:id", h.DeleteTour)
	rg.PATCH("/companies/:id", h.UpdateCompany)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/companies/:id", h.DeleteCompany)
}

func actorFrom(c *gin.Context) policy.Actor {
	return policy.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func pagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

func (h *Handler) CreateTour(c *gin.Context) {
	var req CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "title, price and capacity are required")
		return
	}

	t, err := h.service.CreateTour(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		switch err {
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only company owners can create tours")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be positive and capacity within the allowed range")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create tour")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"tour": t})
}

func (h *Handler) ListTours(c *gin.Context) {
	limit, offset := pagination(c)
	tours, total, err := h.service.ListTours(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tours")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tours": tours, "total": total})
}

func (h *Handler) ListMyTours(c *gin.Context) {
	tours, err := h.service.ListMyTours(c.Request.Context(), actorFrom(c))
	if err != nil {
		if err == ErrForbidden {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own a company")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tours")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tours": tours})
}

func (h *Handler) GetTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
		return
	}

	t, err := h.service.GetTour(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get tour")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tour": t})
}

func (h *Handler) UpdateTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
		return
	}

	var req UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateTour(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not enough permissions to update this tour")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price must be positive and capacity within the allowed range")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update tour")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tour": t})
}

func (h *Handler) DeactivateTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
		return
	}

	if err := h.service.DeactivateTour(c.Request.Context(), actorFrom(c), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not enough permissions to deactivate this tour")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to deactivate tour")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}

func (h *Handler) DeleteTour(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tour ID")
		return
	}

	if err := h.service.DeleteTour(c.Request.Context(), actorFrom(c), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tour not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not enough permissions to delete this tour")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete tour")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListCompanies(c *gin.Context) {
	limit, offset := pagination(c)
	companies, total, err := h.service.ListCompanies(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list companies")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"companies": companies, "total": total})
}

func (h *Handler) GetCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	company, err := h.service.GetCompany(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Company not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get company")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"company": company})
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	company, err := h.service.UpdateCompany(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Company not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not enough permissions to update this company")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Company name cannot be empty")
		case ErrDuplicate:
			response.Error(c, http.StatusConflict, "DUPLICATE_NAME", "Company name already taken")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update company")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"company": company})
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	if err := h.service.DeleteCompany(c.Request.Context(), actorFrom(c), id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Company not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only admins can delete companies")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete company")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
