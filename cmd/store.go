package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/internal/model"
	"github.com/vecta-co/leadgen-cli/internal/store"
)

// initLedger opens the run-history ledger. Returns nil when the ledger is
// disabled or unavailable: run history is advisory and enrichment must not
// fail because of it.
func initLedger(ctx context.Context) store.Store {
	if cfg.Store.Path == "" {
		return nil
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		zap.L().Warn("run ledger unavailable", zap.Error(err))
		return nil
	}
	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("run ledger migration failed", zap.Error(err))
		st.Close() //nolint:errcheck
		return nil
	}
	return st
}

func closeLedger(st store.Store) {
	if st != nil {
		st.Close() //nolint:errcheck
	}
}

// loadCompanies parses a source or snapshot file into the lead collection.
func loadCompanies(path string) ([]model.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}

	var companies []model.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	return companies, nil
}
