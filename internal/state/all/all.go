// Package all links every state backend into the binary.
package all

import (
	// Registers the "sqlserver" driver the mssql backend opens with.
	_ "github.com/microsoft/go-mssqldb"

	_ "paydesk/internal/state/mssql"
	_ "paydesk/internal/state/postgres"
	_ "paydesk/internal/state/sqlite"
)
