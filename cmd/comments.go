package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"cscan/database"
	"cscan/logger"
	"cscan/models"

	"github.com/spf13/cobra"
)

var (
	commentsListFile      string
	commentsListFileID    int64
	commentsListKind      string
	commentsListDocOnly   bool
	commentsListSearch    string
	commentsListPage      int
	commentsListLimit     int
	commentsListSortBy    string
	commentsListSortOrder string
	commentsListJSON      bool
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Browse comments stored by previous scans",
}

var commentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored comments with filters and pagination",
	Run: func(cmd *cobra.Command, args []string) {
		filters := models.CommentFilters{
			FileID:     commentsListFileID,
			Filename:   commentsListFile,
			Kind:       commentsListKind,
			DocOnly:    commentsListDocOnly,
			SearchText: commentsListSearch,
			Page:       commentsListPage,
			Limit:      commentsListLimit,
			SortBy:     commentsListSortBy,
			SortOrder:  commentsListSortOrder,
		}

		comments, totalRecords, err := database.GetCommentsPaginated(filters)
		if err != nil {
			logger.Fatal("Failed to list comments: %v", err)
		}

		if commentsListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(comments); err != nil {
				logger.Fatal("Failed to encode comments: %v", err)
			}
			return
		}

		if len(comments) == 0 {
			fmt.Println("No comments found matching the criteria.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFILE\tLINES\tKIND\tDOC\tTEXT")
		for _, c := range comments {
			doc := ""
			if c.IsDoc {
				doc = "yes"
			}
			fmt.Fprintf(w, "%d\t%s\t%d-%d\t%s\t%s\t%s\n",
				c.ID, c.Filename, c.StartLine, c.EndLine, c.Kind, doc, firstLineSnippet(c.Text, 70))
		}
		w.Flush()

		limit := filters.Limit
		if limit <= 0 {
			limit = 50
		}
		totalPages := (totalRecords + int64(limit) - 1) / int64(limit)
		fmt.Printf("\nPage %d / %d (%d total comments matching filters)\n", filters.Page, totalPages, totalRecords)
	},
}

var commentsShowCmd = &cobra.Command{
	Use:   "show <comment_id>",
	Short: "Show the full text of one stored comment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		commentID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid comment ID '%s'.\n", args[0])
			os.Exit(1)
		}

		comment, err := database.GetCommentByID(commentID)
		if err != nil {
			logger.Fatal("Failed to fetch comment %d: %v", commentID, err)
		}

		fmt.Printf("%s:%d-%d (%s", comment.Filename, comment.StartLine, comment.EndLine, comment.Kind)
		if comment.IsDoc {
			fmt.Print(", doc")
		}
		fmt.Println(")")
		fmt.Println(comment.Text)
	},
}

func init() {
	commentsListCmd.Flags().StringVar(&commentsListFile, "file", "", "filter by exact file path")
	commentsListCmd.Flags().Int64Var(&commentsListFileID, "file-id", 0, "filter by file ID")
	commentsListCmd.Flags().StringVar(&commentsListKind, "kind", "", "filter by kind: BLOCK, LINE or MACRO")
	commentsListCmd.Flags().BoolVar(&commentsListDocOnly, "doc-only", false, "only show doc comments (/** ... */)")
	commentsListCmd.Flags().StringVarP(&commentsListSearch, "search", "s", "", "filter by substring of the comment text")
	commentsListCmd.Flags().IntVar(&commentsListPage, "page", 1, "page number")
	commentsListCmd.Flags().IntVar(&commentsListLimit, "limit", 50, "results per page")
	commentsListCmd.Flags().StringVar(&commentsListSortBy, "sort-by", "", "sort column: id, file, start_line or kind")
	commentsListCmd.Flags().StringVar(&commentsListSortOrder, "sort-order", "asc", "sort order: asc or desc")
	commentsListCmd.Flags().BoolVar(&commentsListJSON, "json", false, "print results as JSON")

	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsShowCmd)
	rootCmd.AddCommand(commentsCmd)
}
