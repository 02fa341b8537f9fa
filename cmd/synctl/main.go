package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"slash-sync-bot/internal/formatting"
	"slash-sync-bot/internal/manifest"
	"slash-sync-bot/internal/snapshot"

	"github.com/bwmarrin/discordgo"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "synctl",
	Short: "Offline tooling for the bot's command tree",
	Long:  `Inspect and validate command definitions without talking to Discord.`,
}

var diffCmd = &cobra.Command{
	Use:   "diff <old.json> <new.json>",
	Short: "Diff two exported command sets",
	Long: `Compare two JSON exports of application command definitions and print
the commands that would be added, removed or updated. Exits non-zero when
the sets differ, so it can gate a deployment.`,
	Args: cobra.ExactArgs(2),
	Run:  runDiff,
}

var checkCmd = &cobra.Command{
	Use:   "check <dir|file>...",
	Short: "Validate extension manifests",
	Run:   runCheck,
}

func main() {
	rootCmd.AddCommand(diffCmd, checkCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDiff(cmd *cobra.Command, args []string) {
	old, err := readCommandSet(args[0])
	if err != nil {
		exitError("%v", err)
	}
	current, err := readCommandSet(args[1])
	if err != nil {
		exitError("%v", err)
	}

	diff := snapshot.Compare(old, current)
	if !diff.SyncNeeded() {
		fmt.Printf("No changes (%d commands unchanged)\n", len(diff.Same))
		return
	}

	fmt.Println(formatting.DiffTable(diff))
	fmt.Printf("\n%d added, %d removed, %d updated, %d unchanged\n",
		len(diff.Added), len(diff.Removed), len(diff.Updated), len(diff.Same))
	os.Exit(1)
}

func runCheck(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	paths, err := collectManifests(args)
	if err != nil {
		exitError("%v", err)
	}
	if len(paths) == 0 {
		exitError("no manifest files found")
	}

	failed := 0
	for _, path := range paths {
		cmds, err := manifest.Load(path)
		if err != nil {
			red.Fprintf(os.Stderr, "FAIL  %s: %v\n", path, err)
			failed++
			continue
		}
		green.Printf("OK    %s (%d commands)\n", path, len(cmds))
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// readCommandSet loads a JSON array of application command definitions and
// snapshots it.
func readCommandSet(path string) ([]snapshot.CommandSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var defs []*discordgo.ApplicationCommand
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return snapshot.FromApplicationCommands(defs), nil
}

func collectManifests(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := filepath.Glob(filepath.Join(arg, "*.toml"))
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
			continue
		}
		paths = append(paths, arg)
	}
	return paths, nil
}

func exitError(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", a...)
	os.Exit(1)
}
