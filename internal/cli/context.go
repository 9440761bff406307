package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var contextJSON bool

var contextCmd = &cobra.Command{
	Use:   "context <item-id>",
	Short: "Expand a knowledge item with its neighboring chunks",
	Long: `Resolve a knowledge item id and print its content stitched together
with the chunks immediately before and after it in the source document.

Examples:
  venture-kb context essay_founder-mode.md_2
  venture-kb context passage_navalmanack.csv:7_0 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().BoolVar(&contextJSON, "json", false, "output as JSON")
}

func runContext(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}

	passage, ok := session.FullTextWithContext(cmd.Context(), args[0])
	if !ok {
		return fmt.Errorf("no knowledge item with id %s", args[0])
	}

	if contextJSON {
		output, _ := json.MarshalIndent(passage, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("%s — %s (%s, chunk %d/%d)\n\n", passage.Item.Title, passage.Item.Author, passage.Item.Type, passage.Item.ChunkIndex+1, passage.Item.TotalChunks)
	fmt.Println(passage.FullText)

	return nil
}
