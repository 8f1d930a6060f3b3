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

var (
	macrosListFileID int64
	macrosListPage   int
	macrosListLimit  int
	macrosListJSON   bool
)

var macrosCmd = &cobra.Command{
	Use:   "macros",
	Short: "Browse macro symbols derived from header #defines",
}

var macrosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored macro symbols",
	Run: func(cmd *cobra.Command, args []string) {
		macros, totalRecords, err := database.GetMacrosPaginated(macrosListFileID, macrosListPage, macrosListLimit)
		if err != nil {
			logger.Fatal("Failed to list macro symbols: %v", err)
		}

		if macrosListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(macros); err != nil {
				logger.Fatal("Failed to encode macro symbols: %v", err)
			}
			return
		}

		if len(macros) == 0 {
			fmt.Println("No macro symbols found matching the criteria.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tKIND\tFILE\tLINE")
		for _, m := range macros {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", m.ID, m.Name, m.Kind, m.Filename, m.LineNumber)
		}
		w.Flush()

		limit := macrosListLimit
		if limit <= 0 {
			limit = 50
		}
		totalPages := (totalRecords + int64(limit) - 1) / int64(limit)
		fmt.Printf("\nPage %d / %d (%d total macro symbols)\n", macrosListPage, totalPages, totalRecords)
	},
}

func init() {
	macrosListCmd.Flags().Int64Var(&macrosListFileID, "file-id", 0, "filter by file ID")
	macrosListCmd.Flags().IntVar(&macrosListPage, "page", 1, "page number")
	macrosListCmd.Flags().IntVar(&macrosListLimit, "limit", 50, "results per page")
	macrosListCmd.Flags().BoolVar(&macrosListJSON, "json", false, "print results as JSON")

	macrosCmd.AddCommand(macrosListCmd)
	rootCmd.AddCommand(macrosCmd)
}
