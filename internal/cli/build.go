package cli

import (
	"fmt"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/nonexistent9/venture-scout-bot-sub000/config"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/chunker"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/embedding"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/store"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/usecase"
)

var buildNoEmbed bool

var buildCmd = &cobra.Command{
	Use:   "build [sources-dir]",
	Short: "Build the knowledge snapshot from source documents",
	Long: `Walk a directory of Markdown essays and CSV quote tables, chunk and
tag them, optionally embed them, and write the snapshot JSON.

Examples:
  venture-kb build                # Sources in the root directory
  venture-kb build ./sources      # Explicit sources directory
  venture-kb build --no-embed     # Skip the embedding pass`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildNoEmbed, "no-embed", false, "skip the embedding pass even when configured")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	sourcesDir := rootDir
	if len(args) > 0 {
		sourcesDir = args[0]
	}

	var embedder port.Embedder
	var embedCache *store.EmbedCache
	if !buildNoEmbed {
		if client, ok := embedding.NewClientFromConfig(cfg.Embedding); ok {
			embedder = client

			if err := config.EnsureDataDir(rootDir); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			cache, err := store.OpenEmbedCache(config.EmbedCachePath(rootDir))
			if err != nil {
				log.Warn().Err(err).Msg("embedding cache unavailable, continuing without it")
			} else {
				embedCache = cache
				defer embedCache.Close()
			}
		} else if cfg.Embedding.Enabled {
			fmt.Printf("Embedding enabled but %s is not set, building keyword-only.\n", cfg.Embedding.APIKeyEnv)
		}
	}

	chk := chunker.NewWordChunker(cfg.Chunking.ChunkWords, cfg.Chunking.OverlapWords)
	builder := usecase.NewBuilder(cfg, chk, embedder, embedCache)
	builder.ShowProgress(true)

	outPath := cfg.SnapshotPath(rootDir)
	result, err := builder.Build(cmd.Context(), sourcesDir, outPath)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("Built %s\n", outPath)
	fmt.Printf("  Documents: %d (%d skipped)\n", result.Documents, result.Skipped)
	fmt.Printf("  Items:     %d\n", result.Items)
	if embedder != nil {
		fmt.Printf("  Embedded:  %d\n", result.Embedded)
	}
	for _, msg := range result.Errors {
		fmt.Printf("  Error:     %s\n", msg)
	}

	return nil
}
