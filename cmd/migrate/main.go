// Command migrate runs the audit sink's schema migration against
// DATABASE_URL, without starting the HTTP server. Useful for provisioning
// the optional Postgres audit trail ahead of a deploy.
package main

import (
	"os"

	"github.com/bellapacxx/tombola-server/audit"
	"github.com/bellapacxx/tombola-server/utils/logger"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Error("DATABASE_URL is required to run migrations")
		os.Exit(1)
	}

	_ = audit.NewSink(dsn)
	logger.Info("audit schema migration completed")
}
