package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/PiruU/web-import-export/internal/domain"
	"github.com/PiruU/web-import-export/internal/migrate"
	"github.com/PiruU/web-import-export/internal/repository/customer"
	"github.com/PiruU/web-import-export/internal/repository/purchase"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Importer reads the two source files and drives one import invocation:
// ensure schema, then upsert customers and purchases in a single
// transaction.
type Importer struct {
	pool      *pgxpool.Pool
	customers customer.Repository
	purchases purchase.Repository
	logger    *log.Logger
}

func New(pool *pgxpool.Pool, customers customer.Repository, purchases purchase.Repository, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Importer{
		pool:      pool,
		customers: customers,
		purchases: purchases,
		logger:    logger,
	}
}

// Run imports both files and returns the processed record counts. Both
// files are stat-checked and fully parsed before any store session opens;
// a failure at any point leaves the store untouched. Customers commit
// before purchases inside the same transaction so the foreign key holds.
func (i *Importer) Run(ctx context.Context, customersPath, purchasesPath string) (int, int, error) {
	for _, path := range []string{customersPath, purchasesPath} {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return 0, 0, fmt.Errorf("source file %s: %w", path, domain.ErrNotFound)
			}
			return 0, 0, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	customers, err := readCustomersFile(customersPath)
	if err != nil {
		return 0, 0, err
	}
	purchases, err := readPurchasesFile(purchasesPath)
	if err != nil {
		return 0, 0, err
	}

	if err := migrate.Apply(ctx, i.pool); err != nil {
		return 0, 0, fmt.Errorf("ensure schema: %w", err)
	}

	tx, err := i.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	nCustomers, err := i.customers.UpsertAll(ctx, tx, customers)
	if err != nil {
		return 0, 0, err
	}
	nPurchases, err := i.purchases.UpsertAll(ctx, tx, purchases)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("commit import tx: %w", err)
	}

	i.logger.Printf("import done customers=%d purchases=%d", nCustomers, nPurchases)
	return nCustomers, nPurchases, nil
}

func readCustomersFile(path string) ([]domain.Customer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCustomers(f)
}

func readPurchasesFile(path string) ([]domain.Purchase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPurchases(f)
}
