package handler

import (
	"errors"
	"net/http"

	alertDomain "container-tracker/internal/domain/alert"
	containerDomain "container-tracker/internal/domain/container"
	deviceDomain "container-tracker/internal/domain/device"
	telemetryDomain "container-tracker/internal/domain/telemetry"
	transferDomain "container-tracker/internal/domain/transfer"
	voyageDomain "container-tracker/internal/domain/voyage"
	"container-tracker/internal/middleware"
	appErrors "container-tracker/pkg/errors"
	"container-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, containerDomain.ErrNotFound),
		errors.Is(err, deviceDomain.ErrNotFound),
		errors.Is(err, voyageDomain.ErrNotFound),
		errors.Is(err, voyageDomain.ErrShipNotFound),
		errors.Is(err, alertDomain.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, transferDomain.ErrAlreadyActive),
		errors.Is(err, voyageDomain.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, transferDomain.ErrNoActive),
		errors.Is(err, containerDomain.ErrInvalidID),
		errors.Is(err, deviceDomain.ErrContainerMissing):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, telemetryDomain.ErrBatchTooLarge):
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}
		// Integrity violations (23xxx class, e.g. an unknown voyage id) are
		// the caller's payload problem, not a server fault.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "23" {
			utils.ErrorResponse(c, http.StatusBadRequest, "Request violates a data constraint")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

// accountID pulls the tenant scope set by the auth middleware; requests
// without one are rejected before reaching a service.
func accountID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Account scope missing")
		return uuid.Nil, false
	}
	return id, true
}
