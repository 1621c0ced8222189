package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/photomatch/internal/cli"
	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/config"
	"github.com/Veraticus/photomatch/internal/prefs"
	"github.com/spf13/cobra"
)

var recentKeys = []string{prefs.KeyExcelPath, prefs.KeyPhotosDirs, prefs.KeyOutputDirs}

func recentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent [key]",
		Short: "Show recently used spreadsheets and folders",
		Long: fmt.Sprintf(`Show the paths remembered from previous renames, most recent first.

Keys: %s, %s, %s.`, prefs.KeyExcelPath, prefs.KeyPhotosDirs, prefs.KeyOutputDirs),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: recentKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			recent, err := prefs.Load(settings.PrefsPath)
			if err != nil {
				return err
			}

			keys := recentKeys
			if len(args) == 1 {
				if !isRecentKey(args[0]) {
					return common.NewUserError("Unknown key "+args[0], fmt.Errorf("%w: expected one of %v", common.ErrInvalidConfig, recentKeys))
				}
				keys = args[:1]
			}

			printRecent(cmd.OutOrStdout(), recent, keys)
			return nil
		},
	}
}

func isRecentKey(key string) bool {
	for _, k := range recentKeys {
		if k == key {
			return true
		}
	}
	return false
}

func printRecent(out io.Writer, recent *prefs.RecentPaths, keys []string) {
	for _, key := range keys {
		fmt.Fprintln(out, cli.BoldStyle.Render(cli.FolderIcon+" "+key))
		paths := recent.Get(key)
		if len(paths) == 0 {
			fmt.Fprintln(out, cli.SubtleStyle.Render("  (none)"))
			continue
		}
		for i, p := range paths {
			fmt.Fprintf(out, "  %d. %s\n", i+1, p)
		}
	}
}
