package handling

import (
	"encoding/json"
	"errors"
	"net/http"
	"orderdesk_server/lib"

	"github.com/MonkyMars/gecho"
)

// RespondError writes the HTTP response for a service-layer error, mapping the
// domain sentinels to their status codes. Anything unrecognized is logged and
// reported as a 500 with the fallback message.
func RespondError(w http.ResponseWriter, logger *gecho.Logger, err error, fallbackMsg string) {
	var validationErr *lib.ValidationError
	if errors.As(err, &validationErr) {
		gecho.BadRequest(w,
			gecho.WithMessage("error.request.validationFailed"),
			gecho.WithData(validationErr),
			gecho.Send(),
		)
		return
	}

	switch {
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w,
			gecho.WithMessage("error.order.notFound"),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrForbidden):
		gecho.Forbidden(w,
			gecho.WithMessage("error.order.locked"),
			gecho.WithData(map[string]string{"error": err.Error()}),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w,
			gecho.WithMessage("error.order.conflict"),
			gecho.WithData(map[string]string{"error": err.Error()}),
			gecho.Send(),
		)
	default:
		logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", fallbackMsg), gecho.WithCallerSkip(3))
		gecho.InternalServerError(w,
			gecho.WithMessage(fallbackMsg),
			gecho.Send(),
		)
	}
}

// Created writes a 201 response with the standard envelope shape.
func Created(w http.ResponseWriter, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"status":  http.StatusCreated,
		"message": message,
		"data":    data,
	})
}
