package seatmap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seatwise/internal/shared/utils/response"
)

type Controller interface {
	GetSeatMap(c *gin.Context)
	SaveSeatMap(c *gin.Context)
	ConvertSeatMap(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetSeatMap handles GET /api/v1/events/:eventId/seatmap
func (ctrl *controller) GetSeatMap(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	view, err := ctrl.service.GetView(c.Request.Context(), eventID)
	if err != nil {
		if _, ok := AsValidationError(err); ok {
			RespondValidationError(c, err)
			return
		}
		statusCode := http.StatusInternalServerError
		if err.Error() == "event not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", view, nil)
}

// SaveSeatMap handles PUT /api/v1/admin/events/:eventId/seatmap
func (ctrl *controller) SaveSeatMap(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}
	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	var payload Submission
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	doc, err := ctrl.service.SaveSubmission(c.Request.Context(), eventID, adminUUID, &payload)
	if err != nil {
		if _, ok := AsValidationError(err); ok {
			RespondValidationError(c, err)
			return
		}
		statusCode := http.StatusInternalServerError
		if err.Error() == "event not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map saved successfully", doc, nil)
}

// ConvertSeatMap handles POST /api/v1/admin/events/:eventId/seatmap/convert
func (ctrl *controller) ConvertSeatMap(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}
	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	doc, err := ctrl.service.ConvertLegacyGrid(c.Request.Context(), eventID, adminUUID)
	if err != nil {
		if _, ok := AsValidationError(err); ok {
			RespondValidationError(c, err)
			return
		}
		statusCode := http.StatusInternalServerError
		if err.Error() == "event not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map converted successfully", doc, nil)
}
