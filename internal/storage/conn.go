package storage

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholloway/cadence/internal/constants"
	"github.com/mholloway/cadence/internal/keyring"
	"github.com/mholloway/cadence/internal/logger"
)

// IsPostgres reports whether the connection string targets a postgres server.
func IsPostgres(conn string) bool {
	return strings.HasPrefix(conn, "postgres://") || strings.HasPrefix(conn, "postgresql://")
}

// HasEmbeddedCredentials reports whether a postgres connection string carries
// a password inline. Such strings should live in the system keyring, not in
// shell history or config files.
func HasEmbeddedCredentials(conn string) bool {
	if !IsPostgres(conn) {
		return false
	}
	u, err := url.Parse(conn)
	if err != nil || u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

// ResolveConnectionString determines where cadence data lives. Precedence:
// an explicit value (from a flag), the CADENCE_DB_CONNECTION environment
// variable, a connection string stored in the system keyring, and finally
// the default sqlite path.
func ResolveConnectionString(explicit string) string {
	if explicit != "" {
		return ExpandPath(explicit)
	}
	if env := os.Getenv(constants.EnvConnectionString); env != "" {
		return ExpandPath(env)
	}
	stored, err := keyring.GetConnectionString()
	if err == nil && stored != "" {
		return ExpandPath(stored)
	}
	if err != nil && err != keyring.ErrNotFound && err != keyring.ErrKeyringUnavailable {
		logger.Warn("failed to read connection string from keyring", "err", err)
	}
	return ExpandPath(constants.DefaultConfigPath)
}

// ExpandPath resolves a leading "~/" against the user's home directory.
// Postgres connection strings pass through untouched.
func ExpandPath(path string) string {
	if IsPostgres(path) || !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
