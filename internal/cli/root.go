package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nonexistent9/venture-scout-bot-sub000/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "venture-kb",
	Short: "Venture knowledge base - build and search startup wisdom",
	Long: `venture-kb chunks essays and quote tables into a knowledge snapshot,
then searches it with blended vector and keyword relevance.

Example usage:
  venture-kb build                     # Build knowledge.json from ./sources
  venture-kb query -q "founder mode"   # Search the knowledge base
  venture-kb context essay_foo.md_2    # Expand a chunk with its neighbors`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./venturekb.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
