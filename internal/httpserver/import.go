package httpserver

import (
	"errors"
	"net/http"

	"github.com/PiruU/web-import-export/internal/domain"
	"github.com/gin-gonic/gin"
)

type importRequest struct {
	Customers string `json:"customers" binding:"required"`
	Purchases string `json:"purchases" binding:"required"`
}

func importHandler(imp ImportRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req importRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		nCustomers, nPurchases, err := imp.Run(c.Request.Context(), req.Customers, req.Purchases)
		if err != nil {
			c.JSON(importStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      0,
			"n_customers": nCustomers,
			"n_purchases": nPurchases,
		})
	}
}

// importStatus maps the import error taxonomy onto HTTP statuses: missing
// source file is not-found, rejected rows (parse or constraint) are
// bad-request, everything else is a store failure.
func importStatus(err error) int {
	var parseErr *domain.ParseError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConstraint):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
