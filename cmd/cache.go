package cmd

import (
	"fmt"

	"github.com/nutshell-tools/nutshell/internal/cache"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the download cache",
	Long: `Manage the local cache of downloaded papers.

The cache grows unboundedly by design; use "cache clear" to reclaim
the space.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE:  runCacheStats,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached papers",
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached papers",
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd, cacheListCmd, cacheClearCmd)
}

func openStore() (*cache.Store, error) {
	root, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.Open(root)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stat()
	if err != nil {
		return err
	}

	fmt.Printf("Cache: %s\n", store.Root())
	fmt.Printf("Papers: %d\n", stats.Entries)
	fmt.Printf("Size: %.1f MB\n", float64(stats.TotalSize)/(1024*1024))
	return nil
}

func runCacheList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Cache is empty")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.FetchedAt.Format("2006-01-02"), e.URL)
		fmt.Println(mutedStyle.Render("  " + e.Path))
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Clear()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Removed %d cached papers", removed)))
	return nil
}
