package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"cscan/database"
	"cscan/logger"

	"github.com/spf13/cobra"
)

var filesListJSON bool

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Browse files recorded by previous scans",
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scanned files with their stored comment counts",
	Run: func(cmd *cobra.Command, args []string) {
		files, err := database.GetSourceFiles()
		if err != nil {
			logger.Fatal("Failed to list source files: %v", err)
		}

		if filesListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(files); err != nil {
				logger.Fatal("Failed to encode source files: %v", err)
			}
			return
		}

		if len(files) == 0 {
			fmt.Println("No files scanned yet. Run 'cscan scan --save' first.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPATH\tCOMMENTS\tSCANNED AT")
		for _, f := range files {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", f.ID, f.Path, f.CommentCount, f.ScannedAt.Format("2006-01-02 15:04:05"))
		}
		w.Flush()
	},
}

func init() {
	filesListCmd.Flags().BoolVar(&filesListJSON, "json", false, "print results as JSON")
	filesCmd.AddCommand(filesListCmd)
	rootCmd.AddCommand(filesCmd)
}
