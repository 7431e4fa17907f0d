// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vendastock/vendas-backend/internal/services"
	"github.com/vendastock/vendas-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a storage-level failure: logged and
// reported as a 500 without leaking internals.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrSaleNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrHasDependentSales):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		if ise, ok := services.IsInsufficientStock(err); ok {
			utils.BadRequestResponse(c, ise.Error(), gin.H{
				"disponivel": ise.Available,
				"solicitado": ise.Requested,
			})
			return
		}
		logrus.WithError(err).WithField("request_id", c.GetString("request_id")).
			Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}
