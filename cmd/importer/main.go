package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/PiruU/web-import-export/internal/config"
	"github.com/PiruU/web-import-export/internal/db"
	"github.com/PiruU/web-import-export/internal/importer"
	customerrepo "github.com/PiruU/web-import-export/internal/repository/customer"
	purchaserepo "github.com/PiruU/web-import-export/internal/repository/purchase"
	"github.com/joho/godotenv"
)

func main() {
	var (
		customersPath string
		purchasesPath string
	)
	flag.StringVar(&customersPath, "customers", "", "Path to the customers CSV file")
	flag.StringVar(&purchasesPath, "purchases", "", "Path to the purchases CSV file")
	flag.Parse()

	if customersPath == "" || purchasesPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	imp := importer.New(pool, customerrepo.NewPostgres(logger), purchaserepo.NewPostgres(logger), logger)

	start := time.Now()
	nCustomers, nPurchases, err := imp.Run(ctx, customersPath, purchasesPath)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d customers and %d purchases in %s\n", nCustomers, nPurchases, time.Since(start).Truncate(time.Millisecond))
}
