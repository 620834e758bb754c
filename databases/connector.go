package databases

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Marian1309/go-select-utils/databases/mysql"
	"github.com/Marian1309/go-select-utils/databases/postgres"
	"github.com/Marian1309/go-select-utils/databases/sqlite"
	"github.com/Marian1309/go-select-utils/schema"
)

// Connector is a database-specific backend: table metadata loading plus
// bound query execution. Every Connector satisfies selector.Executor.
type Connector interface {
	Ping(ctx context.Context) error
	ListTables(ctx context.Context) ([]string, error)
	Describe(ctx context.Context, table string) (*schema.Table, error)
	Query(ctx context.Context, query string, args ...any) ([]map[string]any, error)
	Get(ctx context.Context, dest any, query string, args ...any) error
	Placeholder() sq.PlaceholderFormat
	Close() error
}

func NewConnector(dbType, connectionString string) (Connector, error) {
	switch dbType {
	case "mysql":
		return mysql.NewConnector(connectionString)
	case "postgres":
		return postgres.NewConnector(connectionString)
	case "sqlite":
		return sqlite.NewConnector(connectionString)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}
