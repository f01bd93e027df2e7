package storage

import (
	"github.com/mholloway/cadence/internal/storage/postgres"
	"github.com/mholloway/cadence/internal/storage/sqlite"
)

// New picks a backend for the given connection string: a postgres URL opens
// a server connection, anything else is treated as a sqlite file path.
func New(conn string) Provider {
	if IsPostgres(conn) {
		return postgres.NewStore(conn)
	}
	return sqlite.NewStore(conn)
}
