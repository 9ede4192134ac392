package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/PiruU/web-import-export/internal/service/export"
	"github.com/gin-gonic/gin"
)

type exportRequest struct {
	TargetURL string  `json:"target_url" binding:"required"`
	Timeout   float64 `json:"timeout"`
}

func exportHandler(builder DocumentBuilder, forwarder export.Forwarder, defaultTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req exportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !validTargetURL(req.TargetURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_url must be an absolute http(s) URL"})
			return
		}

		timeout := defaultTimeout
		if req.Timeout > 0 {
			timeout = time.Duration(req.Timeout * float64(time.Second))
		}

		doc, err := builder.BuildDocument(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		targetStatus, err := forwarder.Forward(c.Request.Context(), req.TargetURL, timeout, doc)
		if err != nil {
			if errors.Is(err, export.ErrUpstream) {
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":        0,
			"customers":     len(doc.Customers),
			"purchases":     doc.PurchaseCount(),
			"target_status": targetStatus,
		})
	}
}

func validTargetURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
