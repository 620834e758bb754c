package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Marian1309/go-select-utils/config"
	"github.com/Marian1309/go-select-utils/databases"
	"github.com/Marian1309/go-select-utils/mcp"
	"github.com/Marian1309/go-select-utils/selector"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("config error", "error", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	connStr, err := cfg.Database.GetConnectionString()
	if err != nil {
		slog.Error("connection string error", "error", err)
		return
	}

	conn, err := databases.NewConnector(cfg.Database.DBType, connStr)
	if err != nil {
		slog.Error("failed to create connector", "error", err)
		return
	}
	defer conn.Close()

	sel := selector.New(conn, selector.WithPlaceholderFormat(conn.Placeholder()))

	s := server.NewMCPServer(
		"go-select-utils",
		version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	mcp.RegisterTools(s, conn, sel)
	slog.Info("connected", "database", cfg.Database.DBType)

	if err := server.ServeStdio(s); err != nil {
		fmt.Printf("Server error: %v\n", err)
	}
}
