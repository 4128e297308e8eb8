package seatmap

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seatwise/internal/shared/utils/response"
)

// RespondValidationError translates a tagged seating failure into the HTTP
// envelope. Non-tagged errors fall back to a plain 500.
func RespondValidationError(c *gin.Context, err error) {
	verr, ok := AsValidationError(err)
	if !ok {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "error", statusForKind(verr.Kind), verr.Message, nil, gin.H{
		"kind":      string(verr.Kind),
		"retryable": verr.Retryable(),
	})
}

func statusForKind(kind ErrorKind) int {
	switch kind {
	case KindInvalidEvent:
		return http.StatusNotFound
	case KindSeatBooked, KindTypeMismatch:
		return http.StatusConflict
	case KindNoSeats, KindEmptyMap, KindEmptyTypes:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
