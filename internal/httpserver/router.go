package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/PiruU/web-import-export/internal/domain"
	"github.com/PiruU/web-import-export/internal/service/export"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ImportRunner runs one import invocation over the two source files.
type ImportRunner interface {
	Run(ctx context.Context, customersPath, purchasesPath string) (int, int, error)
}

// DocumentBuilder assembles the nested export document.
type DocumentBuilder interface {
	BuildDocument(ctx context.Context) (domain.ExportDocument, error)
}

// Deps carries the services the handlers depend on.
type Deps struct {
	Importer             ImportRunner
	Export               DocumentBuilder
	Forwarder            export.Forwarder
	DefaultExportTimeout time.Duration
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.POST("/import_csv", importHandler(deps.Importer))
	api.POST("/export_customers", exportHandler(deps.Export, deps.Forwarder, deps.DefaultExportTimeout))
	api.POST("/receive_export", receiveExportHandler())

	return router
}
