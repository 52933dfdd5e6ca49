package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"sylph/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sylphsym",
	Short: "Sylph symbol mangler",
	Long:  `sylphsym turns symbol manifests into the linker names the sylph toolchain emits`,
}

// main initializes the CLI by setting the command version, registering subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(mangleCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
