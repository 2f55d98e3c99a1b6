// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/commonshub/commonshub/internal/config"
)

// Create builds the Data Source Name from the configuration.
// For the SQLite engine the DSN is simply the database file path.
func Create(dbCfg *config.Config) string {
	if dbCfg.DB.GormEngine == config.EngineSQLite {
		return dbCfg.DB.Name
	}

	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}
