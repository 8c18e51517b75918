// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/distill"
	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/resummarize"
	"github.com/poiesic/distill/sources"
	"github.com/poiesic/distill/sources/gdrive"
	"github.com/poiesic/distill/sources/logseq"
)

func main() {
	app := &cli.App{
		Name:  "distill",
		Usage: "Content ingestion and summarization pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "catalog",
				Usage:  "List source items with their processing status",
				Action: catalogCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "drive-token",
						Usage: "Google Drive access token",
					},
					&cli.StringFlag{
						Name:  "graph",
						Usage: "Path to a Logseq JSON export",
					},
				),
			},
			{
				Name:   "process",
				Usage:  "Process one Google Drive file through the pipeline",
				Action: processCommand,
				Flags: append(append(dbFlags(), aiFlags()...),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "drive-token",
						Usage:    "Google Drive access token",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "item",
						Aliases:  []string{"i"},
						Usage:    "Drive file identifier",
						Required: true,
					},
				),
			},
			{
				Name:   "import-graph",
				Usage:  "Process a Logseq graph export through the pipeline",
				Action: importGraphCommand,
				Flags: append(append(dbFlags(), aiFlags()...),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "graph",
						Aliases:  []string{"g"},
						Usage:    "Path to a Logseq JSON export",
						Required: true,
					},
				),
			},
			{
				Name:   "status",
				Usage:  "Show processing records for an owner",
				Action: statusCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Source type (google_drive, logseq)",
						Value: string(core.SourceGoogleDrive),
					},
				),
			},
			{
				Name:   "resummarize",
				Usage:  "Retry all failed records for an owner",
				Action: resummarizeCommand,
				Flags: append(append(dbFlags(), aiFlags()...),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "drive-token",
						Usage: "Google Drive access token",
					},
					&cli.StringFlag{
						Name:  "graph",
						Usage: "Path to a Logseq JSON export",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for model calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "Chat service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "ai-model",
			Usage: "Chat model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "ai-token",
			Usage: "Chat service API token",
			Value: "none",
		},
		&cli.IntFlag{
			Name:  "max-document-chars",
			Usage: "Truncation ceiling for document corpora",
			Value: 10000,
		},
		&cli.IntFlag{
			Name:  "max-graph-chars",
			Usage: "Truncation ceiling for note-graph corpora",
			Value: 50000,
		},
	}
}

func openDatabase(c *cli.Context) (*distill.Database, error) {
	// Commands without AI flags fall back to defaults.
	var opts []ai.ConfigOption
	if v := c.String("ai-host"); v != "" {
		opts = append(opts, ai.WithHost(v))
	}
	if v := c.String("ai-token"); v != "" {
		opts = append(opts, ai.WithToken(v))
	}
	if v := c.String("ai-model"); v != "" {
		opts = append(opts, ai.WithModel(v))
	}
	if v := c.Int("max-document-chars"); v > 0 {
		opts = append(opts, ai.WithMaxDocumentChars(v))
	}
	if v := c.Int("max-graph-chars"); v > 0 {
		opts = append(opts, ai.WithMaxGraphChars(v))
	}

	aiConfig := ai.NewConfig(opts...)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := distill.NewDatabase(c.String("db"), distill.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// buildConnector selects a connector from the drive-token and graph
// flags. Exactly one must be supplied.
func buildConnector(ctx context.Context, c *cli.Context) (sources.Connector, error) {
	token := c.String("drive-token")
	graphPath := c.String("graph")

	switch {
	case token != "" && graphPath != "":
		return nil, fmt.Errorf("supply either --drive-token or --graph, not both")
	case token != "":
		return gdrive.New(ctx, token)
	case graphPath != "":
		return loadGraphConnector(graphPath)
	default:
		return nil, fmt.Errorf("one of --drive-token or --graph is required")
	}
}

func loadGraphConnector(path string) (sources.Connector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph export: %w", err)
	}
	return logseq.New(filepath.Base(path), data)
}

func catalogCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	conn, err := buildConnector(ctx, c)
	if err != nil {
		return err
	}

	pipeline, err := db.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	entries, err := pipeline.Catalog(ctx, c.String("owner"), conn)
	if err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No items found")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%-14s  %-44s  %s\n", entry.Status, entry.Item.Id, entry.Item.Name)
	}
	return nil
}

func processCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	conn, err := gdrive.New(ctx, c.String("drive-token"))
	if err != nil {
		return err
	}

	return runPipeline(ctx, db, c.String("owner"), conn, c.String("item"))
}

func importGraphCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	conn, err := loadGraphConnector(c.String("graph"))
	if err != nil {
		return err
	}

	items, err := conn.List(ctx)
	if err != nil {
		return err
	}

	return runPipeline(ctx, db, c.String("owner"), conn, items[0].Id)
}

// runPipeline submits one item, drains the pool, and prints the final
// record.
func runPipeline(ctx context.Context, db *distill.Database, owner string, conn sources.Connector, itemRef string) error {
	pipeline, err := db.NewPipeline()
	if err != nil {
		return err
	}

	record, err := pipeline.Process(ctx, owner, conn, itemRef)
	if err != nil {
		pipeline.Release()
		return fmt.Errorf("processing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Submitted record %d (%s)\n", record.Id, record.Status)

	// Wait for the background summarization to finish.
	pipeline.Release()

	final, err := db.LedgerRepository().FindRecord(ctx, owner, conn.Type(), record.ContentHash)
	if err != nil {
		return fmt.Errorf("failed to read final record: %w", err)
	}

	fmt.Printf("Status: %s\n", final.Status)
	if final.Status == core.StatusCompleted {
		fmt.Printf("Summary: %s\n", final.Summary)
		if len(final.Topics) > 0 {
			fmt.Printf("Topics: %s\n", strings.Join(final.Topics, ", "))
		}
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	source := core.SourceType(c.String("source"))
	if !source.Valid() {
		return fmt.Errorf("invalid source type %q", c.String("source"))
	}

	records, err := db.LedgerRepository().ListRecords(ctx, c.String("owner"), source)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No records found")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%-6d  %-14s  %-44s  %s\n",
			record.Id, record.Status, record.ItemPath, record.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func resummarizeCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	conn, err := buildConnector(ctx, c)
	if err != nil {
		return err
	}

	config := &resummarize.Config{
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	r := db.NewResummarizer(config, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Source: %s\n\n", conn.Type())

	result, err := r.Run(ctx, c.String("owner"), conn)
	if err != nil {
		return fmt.Errorf("resummarization failed: %w", err)
	}

	fmt.Printf("Recovered: %d\nSkipped: %d\nStill failed: %d\n",
		result.Recovered, result.Skipped, result.StillFailed)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
