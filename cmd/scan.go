package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"cscan/config"
	"cscan/core"
	"cscan/logger"

	"github.com/spf13/cobra"
)

var (
	scanSave            bool
	scanJSON            bool
	scanCompileCommands string
	scanExtensions      []string
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan C sources for comments and #define directives",
	Long: `Scans the given files and directories for C comments and #define
directives. Directories recurse, filtered by the configured extensions.

By default the findings are printed; use --save to store them in the
database as a scan session (unchanged files are skipped via content hash).`,
	Run: func(cmd *cobra.Command, args []string) {
		paths := args
		if scanCompileCommands != "" {
			ccFiles, err := core.CompileCommandsFiles(scanCompileCommands)
			if err != nil {
				logger.Fatal("Failed to read compile commands '%s': %v", scanCompileCommands, err)
			}
			logger.Info("Loaded %d file entries from %s", len(ccFiles), scanCompileCommands)
			paths = append(paths, ccFiles...)
		}
		if len(paths) == 0 {
			fmt.Fprintln(os.Stderr, "Error: provide at least one path or --compile-commands.")
			os.Exit(1)
		}

		extensions := config.AppConfig.Scanner.Extensions
		if len(scanExtensions) > 0 {
			extensions = scanExtensions
		}
		extractor := core.NewCommentExtractor(extensions, config.AppConfig.Scanner.SkipDirs)

		result, err := extractor.ScanPaths(paths)
		if err != nil {
			logger.Fatal("Scan failed: %v", err)
		}

		if scanSave {
			rootPath := ""
			if len(args) == 1 {
				rootPath = args[0]
			}
			scan, err := core.SaveResult(result, rootPath)
			if err != nil {
				logger.Fatal("Failed to save scan results: %v", err)
			}
			fmt.Printf("Scan %s saved: %d files scanned, %d unchanged, %d comments stored.\n",
				scan.UUID, scan.FilesScanned, scan.FilesSkipped, scan.CommentsFound)
			if result.FailedFiles > 0 {
				fmt.Printf("%d files failed to scan (see scan log).\n", result.FailedFiles)
			}
			return
		}

		if scanJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				logger.Fatal("Failed to encode scan result: %v", err)
			}
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tLINES\tKIND\tDOC\tTEXT")
		for _, fr := range result.Files {
			for _, c := range fr.Comments {
				doc := ""
				if c.IsDoc {
					doc = "yes"
				}
				fmt.Fprintf(w, "%s\t%d-%d\t%s\t%s\t%s\n",
					c.Filename, c.StartLine, c.EndLine, c.Kind, doc, firstLineSnippet(c.Text, 80))
			}
		}
		w.Flush()

		fmt.Printf("\n%d files, %d comments, %d macro symbols", len(result.Files), result.TotalComments, result.TotalMacros)
		if result.FailedFiles > 0 {
			fmt.Printf(", %d files failed (see scan log)", result.FailedFiles)
		}
		fmt.Println()
	},
}

// firstLineSnippet flattens a comment to its first line, truncated for table
// output.
func firstLineSnippet(text string, max int) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx] + " ..."
	}
	if len(text) > max {
		text = text[:max-3] + "..."
	}
	return text
}

func init() {
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "store results in the database as a scan session")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print results as JSON instead of a table")
	scanCmd.Flags().StringVar(&scanCompileCommands, "compile-commands", "", "path to a compile_commands.json to take the file list from")
	scanCmd.Flags().StringSliceVar(&scanExtensions, "ext", nil, "file extensions to scan in directories (overrides config, e.g. --ext .c,.h)")
	rootCmd.AddCommand(scanCmd)
}
