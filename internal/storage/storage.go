package storage

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/khata-labs/ledger-server/internal/config"
	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
	"github.com/khata-labs/ledger-server/internal/storage/item"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

// Storage bundles the database handle and the read-side accessors. Reads go
// through the reader interfaces directly; every mutation goes through Write,
// which opens a transaction.
type Storage struct {
	DB             *sql.DB
	Counterparties counterparty.IReader
	Items          item.IReader
	Transactions   transaction.IReader

	bdb bob.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		return nil, err
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:             db,
		Counterparties: counterparty.NewReader(bdb),
		Items:          item.NewReader(bdb),
		Transactions:   transaction.NewReader(bdb),
		bdb:            bdb,
	}, nil
}
