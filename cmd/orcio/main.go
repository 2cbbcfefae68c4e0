package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skylarkdata/orcio/pkg/logger"
	"github.com/skylarkdata/orcio/pkg/metadata"
	"github.com/skylarkdata/orcio/pkg/schemadoc"
	"github.com/skylarkdata/orcio/pkg/writer"
)

var version = "0.1.0"

// PlanFlags contains the writer configuration for the plan command
type PlanFlags struct {
	SchemaPath       string
	Dialect          string
	Compression      string
	BufferSize       int
	StringStatsLimit int
	Timezone         string
	LogLevel         string
}

// DefaultPlanFlags returns sensible defaults for writer configuration
func DefaultPlanFlags() *PlanFlags {
	return &PlanFlags{
		Dialect:          "orc",
		Compression:      "zstd",
		BufferSize:       256 * 1024,
		StringStatsLimit: 64 * 1024,
		Timezone:         "UTC",
		LogLevel:         "info",
	}
}

func main() {
	root := &cobra.Command{
		Use:   "orcio",
		Short: "orcio - ORC/DWRF column writer toolkit",
		Long: `orcio builds per-column writer trees for the ORC and DWRF columnar formats.
The plan command validates a schema document against a dialect and prints the
writer tree that construction would produce.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("orcio %s\n", version)
		},
	})

	flags := DefaultPlanFlags()
	plan := &cobra.Command{
		Use:   "plan",
		Short: "Build and print the writer tree for a schema document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(flags)
		},
	}
	plan.Flags().StringVar(&flags.SchemaPath, "schema", "", "path to the JSON schema document (required)")
	plan.Flags().StringVar(&flags.Dialect, "dialect", flags.Dialect, "format dialect: orc or dwrf")
	plan.Flags().StringVar(&flags.Compression, "compression", flags.Compression, "compression kind: none, zlib, snappy, lz4, zstd")
	plan.Flags().IntVar(&flags.BufferSize, "buffer-size", flags.BufferSize, "per-column buffer size in bytes")
	plan.Flags().IntVar(&flags.StringStatsLimit, "string-stats-limit", flags.StringStatsLimit, "string statistics retention limit in bytes")
	plan.Flags().StringVar(&flags.Timezone, "timezone", flags.Timezone, "storage timezone for timestamp columns")
	plan.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level")
	_ = plan.MarkFlagRequired("schema")
	root.AddCommand(plan)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPlan(flags *PlanFlags) error {
	if err := logger.Init(logger.Config{Level: flags.LogLevel, Encoding: "console"}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	doc, err := os.ReadFile(flags.SchemaPath)
	if err != nil {
		return err
	}
	orcTypes, logical, err := schemadoc.Parse(doc)
	if err != nil {
		return err
	}

	dialect, err := writer.ParseEncoding(flags.Dialect)
	if err != nil {
		return err
	}
	compression, err := metadata.ParseCompressionKind(flags.Compression)
	if err != nil {
		return err
	}
	location, err := time.LoadLocation(flags.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", flags.Timezone, err)
	}

	opts := writer.Options{
		Compression:           compression,
		BufferSize:            flags.BufferSize,
		Encoding:              dialect,
		Timezone:              location,
		StringStatisticsLimit: flags.StringStatsLimit,
		MetadataSink:          metadata.NewFooterWriter(),
	}

	logger.Info("building writer tree",
		zap.String("schema", flags.SchemaPath),
		zap.String("dialect", dialect.String()),
		zap.String("compression", compression.String()),
		zap.Int("nodes", len(orcTypes)))

	tree, err := writer.CreateColumnWriter(0, orcTypes, logical, opts)
	if err != nil {
		logger.Error("construction failed", zap.Error(err))
		return err
	}

	fmt.Printf("schema: %s\n", logical)
	printTree(tree, orcTypes, 0)
	return nil
}

func printTree(w writer.ColumnWriter, orcTypes []metadata.OrcType, depth int) {
	node := orcTypes[w.Ordinal()]
	fmt.Printf("%s%d: %s [%s]\n", strings.Repeat("  ", depth), w.Ordinal(), w.Variant(), node.Kind)
	for _, child := range w.NestedWriters() {
		printTree(child, orcTypes, depth+1)
	}
}
