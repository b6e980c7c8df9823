package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finfacil/internal/config"
)

var (
	flagSeedReset bool
	flagSeedFile  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo goals, entries and notifications",
	Long:  "Load the demo fixture into an empty store. --reset replaces existing data.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&flagSeedReset, "reset", false, "Replace existing data")
	seedCmd.Flags().StringVarP(&flagSeedFile, "file", "f", "", "TOML fixture (defaults to SEED_FILE, then the built-in demo data)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, closeFn, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	path := flagSeedFile
	if path == "" {
		path = config.Get().SeedFile
	}
	now := time.Now().UTC()

	if flagSeedReset {
		if err := a.Seed(ctx, path, now); err != nil {
			return err
		}
	} else {
		seeded, err := a.SeedIfEmpty(ctx, path, now)
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Println("\n  Store already has data; use --reset to replace it.")
			return nil
		}
	}

	fmt.Printf("\n  Seeded %d goals, %d entries and %d notifications.\n",
		a.Goals.Len(), a.Entries.Len(), a.Notifications.Len())
	return nil
}
