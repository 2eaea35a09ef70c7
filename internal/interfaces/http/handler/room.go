package handler

import (
	propertyapp "github.com/baovietz98/smart-rental-capstone-sub001/internal/application/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/property"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	BaseHandler
	roomService *propertyapp.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService *propertyapp.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// ListRoomsQuery holds room list filters
type ListRoomsQuery struct {
	dto.ListRequest
	BuildingID string `form:"building_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=AVAILABLE RENTED MAINTENANCE"`
}

// Create registers a new room in a building
func (h *RoomHandler) Create(c *gin.Context) {
	var req propertyapp.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, room)
}

// Get returns a room by ID
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	room, err := h.roomService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// List returns a paginated list of rooms
func (h *RoomHandler) List(c *gin.Context) {
	var query ListRoomsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := property.RoomFilter{Filter: toFilter(query.ListRequest)}
	if query.BuildingID != "" {
		buildingID, err := uuid.Parse(query.BuildingID)
		if err != nil {
			h.BadRequest(c, "Invalid building ID format")
			return
		}
		filter.BuildingID = &buildingID
	}
	if query.Status != "" {
		status := property.RoomStatus(query.Status)
		filter.Status = &status
	}

	rooms, total, err := h.roomService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	query.Normalize()
	h.SuccessWithMeta(c, rooms, total, query.Page, query.PageSize)
}

// Update changes a room's details
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	var req propertyapp.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// StartMaintenance takes an available room out of service
func (h *RoomHandler) StartMaintenance(c *gin.Context) {
	h.setMaintenance(c, true)
}

// EndMaintenance returns a room from maintenance to available
func (h *RoomHandler) EndMaintenance(c *gin.Context) {
	h.setMaintenance(c, false)
}

func (h *RoomHandler) setMaintenance(c *gin.Context, maintenance bool) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	room, err := h.roomService.SetMaintenance(c.Request.Context(), id, maintenance)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// Delete removes a room without an active contract
func (h *RoomHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	if err := h.roomService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
