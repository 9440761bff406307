package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate counts for the knowledge snapshot",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}

	stats := session.Stats(cmd.Context())

	if statsJSON {
		output, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Knowledge items: %d (%d embedded)\n", stats.TotalItems, stats.Embedded)

	fmt.Println("\nBy author:")
	printCounts(stats.ByAuthor)
	fmt.Println("\nBy type:")
	printCounts(stats.ByType)
	fmt.Println("\nBy topic:")
	printCounts(stats.ByTopic)

	return nil
}

// printCounts prints a count map sorted by count descending, name
// ascending on ties.
func printCounts(counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Printf("  %-24s %d\n", name, counts[name])
	}
}
