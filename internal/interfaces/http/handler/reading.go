package handler

import (
	billingapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReadingHandler handles meter reading endpoints
type ReadingHandler struct {
	BaseHandler
	readingService *billingapp.ReadingService
}

// NewReadingHandler creates a new ReadingHandler
func NewReadingHandler(readingService *billingapp.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

// ListReadingsQuery holds meter reading list filters
type ListReadingsQuery struct {
	dto.ListRequest
	RoomID    string `form:"room_id" binding:"omitempty,uuid"`
	ServiceID string `form:"service_id" binding:"omitempty,uuid"`
	Month     string `form:"month" binding:"omitempty,billmonth"`
	IsBilled  *bool  `form:"is_billed"`
}

// Record stores a meter reading for a room, service and month
func (h *ReadingHandler) Record(c *gin.Context) {
	var req billingapp.RecordReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reading, err := h.readingService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, reading)
}

// Get returns a meter reading by ID
func (h *ReadingHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid reading ID format")
		return
	}

	reading, err := h.readingService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reading)
}

// List returns a paginated list of meter readings
func (h *ReadingHandler) List(c *gin.Context) {
	var query ListReadingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := billing.ReadingFilter{Filter: toFilter(query.ListRequest)}
	if query.RoomID != "" {
		roomID, err := uuid.Parse(query.RoomID)
		if err != nil {
			h.BadRequest(c, "Invalid room ID format")
			return
		}
		filter.RoomID = &roomID
	}
	if query.ServiceID != "" {
		serviceID, err := uuid.Parse(query.ServiceID)
		if err != nil {
			h.BadRequest(c, "Invalid service ID format")
			return
		}
		filter.ServiceID = &serviceID
	}
	if query.Month != "" {
		month, err := valueobject.ParseBillingMonth(query.Month)
		if err != nil {
			h.BadRequest(c, "Invalid month format, expected MM-YYYY")
			return
		}
		filter.Month = &month
	}
	filter.IsBilled = query.IsBilled

	readings, total, err := h.readingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	query.Normalize()
	h.SuccessWithMeta(c, readings, total, query.Page, query.PageSize)
}

// Correct fixes the indexes of an unbilled reading
func (h *ReadingHandler) Correct(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid reading ID format")
		return
	}

	var req billingapp.CorrectReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reading, err := h.readingService.Correct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reading)
}

// Delete removes an unbilled reading
func (h *ReadingHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid reading ID format")
		return
	}

	if err := h.readingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
