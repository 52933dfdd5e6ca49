package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sylph/internal/driver"
	"sylph/internal/manifest"
)

var warnColor = color.New(color.FgYellow)

var mangleCmd = &cobra.Command{
	Use:   "mangle <manifest.toml>",
	Short: "Mangle every entity of a symbol manifest",
	Long: `Mangle resolves a TOML symbol manifest and prints one line per
requested entity: the manifest label, a tab, and the linker name.
Results for an unchanged manifest are served from the on-disk cache.`,
	Args: cobra.ExactArgs(1),
	RunE: runMangle,
}

func init() {
	mangleCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = one per CPU)")
	mangleCmd.Flags().Bool("no-cache", false, "bypass the on-disk symbol cache")
	mangleCmd.Flags().Bool("timings", false, "print elapsed wall time to stderr")
}

func runMangle(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	colorValue, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	mode, err := readColorMode(colorValue)
	if err != nil {
		return err
	}
	applyColorMode(mode)

	data, err := os.ReadFile(args[0])
	if err != nil {
		cmd.SilenceUsage = true
		return err
	}

	// Кэш — ускорение, не обязательное условие: при любой проблеме
	// просто работаем без него.
	var cache *driver.Cache
	if !noCache {
		cache, err = driver.OpenCache("sylph")
		if err != nil {
			warnf(cmd, "symbol cache unavailable: %v", err)
			cache = nil
		}
	}
	key := driver.DigestOf(data)

	start := time.Now()

	if symbols, hit, err := cache.Get(key); err != nil {
		warnf(cmd, "symbol cache read failed: %v", err)
	} else if hit {
		printSymbols(cmd, symbols)
		reportTimings(cmd, timings, len(symbols), start)
		return nil
	}

	model, err := manifest.Parse(data)
	if err != nil {
		cmd.SilenceUsage = true
		return err
	}

	symbols, err := driver.Batch(cmd.Context(), model, jobs)
	if err != nil {
		cmd.SilenceUsage = true
		return err
	}

	if err := cache.Put(key, symbols); err != nil {
		warnf(cmd, "symbol cache write failed: %v", err)
	}

	printSymbols(cmd, symbols)
	reportTimings(cmd, timings, len(symbols), start)
	return nil
}

func reportTimings(cmd *cobra.Command, enabled bool, count int, start time.Time) {
	if !enabled {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "mangled %d symbols in %s\n", count, time.Since(start).Round(time.Microsecond))
}

func printSymbols(cmd *cobra.Command, symbols []driver.Symbol) {
	out := cmd.OutOrStdout()
	for _, s := range symbols {
		fmt.Fprintf(out, "%s\t%s\n", s.Label, s.Name)
	}
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), warnColor.Sprintf("warning: "+format, args...))
}
