package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/embedding"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/retriever"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/store"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/usecase"
)

var (
	queryText   string
	queryLimit  int
	queryMinSim float64
	queryAuthor string
	queryJSON   bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the knowledge base",
	Long: `Search knowledge items with blended relevance: cosine similarity over
embeddings when available, keyword overlap otherwise.

Examples:
  venture-kb query -q "founder mode"
  venture-kb query -q "wealth creation" --author "Naval Ravikant" --limit 5
  venture-kb query -q "startup hiring" --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 0, "number of results (default from config)")
	queryCmd.Flags().Float64Var(&queryMinSim, "min-similarity", 0, "minimum vector similarity (default from config)")
	queryCmd.Flags().StringVar(&queryAuthor, "author", "", "restrict results to one author")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

// newSession wires a search session over the configured snapshot. The
// embedder is optional; without it every search takes the keyword path.
func newSession() (*usecase.Session, error) {
	cfg := GetConfig()
	rootDir := GetRootDir()

	snapPath := cfg.SnapshotPath(rootDir)
	if _, err := os.Stat(snapPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no snapshot found at %s. Run 'venture-kb build' first", snapPath)
	}

	st := store.NewSnapshotStore(snapPath)

	var embedder port.Embedder
	if client, ok := embedding.NewClientFromConfig(cfg.Embedding); ok {
		embedder = client
	}

	return usecase.NewSession(st, retriever.NewRanker(st, embedder)), nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	session, err := newSession()
	if err != nil {
		return err
	}

	limit := cfg.Search.Limit
	if queryLimit > 0 {
		limit = queryLimit
	}
	minSim := cfg.Search.MinSimilarity
	if queryMinSim > 0 {
		minSim = queryMinSim
	}

	resp := session.Search(cmd.Context(), queryText, port.SearchOptions{
		Limit:         limit,
		MinSimilarity: minSim,
		Author:        queryAuthor,
	})

	if queryJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s (%.0fms)\n\n", resp.TotalFound, resp.Query, float64(resp.SearchTime.Microseconds())/1000)
	for i, r := range resp.Items {
		fmt.Printf("--- [%d] %s — %s (score: %.0f) ---\n", i+1, r.Item.Title, r.Item.Author, r.RelevanceScore)
		fmt.Printf("    id: %s\n", r.Item.ID)
		text := r.Item.Content
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}
	if resp.TotalFound > len(resp.Items) {
		fmt.Printf("%d more results. Re-run with --limit %d to see them.\n", resp.TotalFound-len(resp.Items), resp.TotalFound)
	}

	return nil
}
