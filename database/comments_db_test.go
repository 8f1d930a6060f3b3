package database

import (
	"path/filepath"
	"testing"

	"cscan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() {
		if DB != nil {
			DB.Close()
		}
	})
}

func seedFileWithComments(t *testing.T, path string, comments []models.Comment, macros []models.MacroSymbol) int64 {
	t.Helper()
	scan, err := CreateScan("")
	require.NoError(t, err)
	fileID, changed, err := UpsertSourceFile(path, "hash-"+path, scan.ID)
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, ReplaceFileComments(fileID, comments, macros))
	return fileID
}

func TestUpsertSourceFileHashTracking(t *testing.T) {
	initTestDB(t)

	scan, err := CreateScan("/src")
	require.NoError(t, err)

	id1, changed, err := UpsertSourceFile("/src/a.c", "h1", scan.ID)
	require.NoError(t, err)
	assert.True(t, changed, "new file counts as changed")

	id2, changed, err := UpsertSourceFile("/src/a.c", "h1", scan.ID)
	require.NoError(t, err)
	assert.False(t, changed, "same hash is unchanged")
	assert.Equal(t, id1, id2)

	id3, changed, err := UpsertSourceFile("/src/a.c", "h2", scan.ID)
	require.NoError(t, err)
	assert.True(t, changed, "new hash counts as changed")
	assert.Equal(t, id1, id3)
}

func TestReplaceFileCommentsAndQueries(t *testing.T) {
	initTestDB(t)

	fileID := seedFileWithComments(t, "/src/util.h",
		[]models.Comment{
			{StartLine: 1, EndLine: 3, Kind: models.CommentKindBlock, IsDoc: true, Text: "/** util_max: doc */"},
			{StartLine: 5, EndLine: 5, Kind: models.CommentKindLine, Text: "// internal note"},
			{StartLine: 7, EndLine: 7, Kind: models.CommentKindMacro, Text: "#define UTIL_MAX(a, b) ..."},
		},
		[]models.MacroSymbol{
			{Name: "UTIL_MAX", Kind: models.MacroKindFunction, LineNumber: 7, OriginalText: "#define UTIL_MAX(a, b) ..."},
		})
	seedFileWithComments(t, "/src/impl.c",
		[]models.Comment{
			{StartLine: 2, EndLine: 2, Kind: models.CommentKindLine, Text: "// TODO revisit buffer sizing"},
		}, nil)

	all, total, err := GetCommentsPaginated(models.CommentFilters{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)
	assert.Equal(t, "/src/util.h", all[0].Filename)

	docs, total, err := GetCommentsPaginated(models.CommentFilters{DocOnly: true, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].IsDoc)

	byKind, total, err := GetCommentsPaginated(models.CommentFilters{Kind: "line", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byKind, 2)

	byFile, total, err := GetCommentsPaginated(models.CommentFilters{FileID: fileID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, byFile, 3)

	search, total, err := GetCommentsPaginated(models.CommentFilters{SearchText: "TODO", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, search, 1)
	assert.Equal(t, "/src/impl.c", search[0].Filename)

	paged, total, err := GetCommentsPaginated(models.CommentFilters{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, paged, 1)

	single, err := GetCommentByID(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Text, single.Text)

	_, err = GetCommentByID(99999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	macros, total, err := GetMacrosPaginated(0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, macros, 1)
	assert.Equal(t, "UTIL_MAX", macros[0].Name)
	assert.Equal(t, "/src/util.h", macros[0].Filename)
}

func TestReplaceFileCommentsReplacesOldRows(t *testing.T) {
	initTestDB(t)

	fileID := seedFileWithComments(t, "/src/a.c",
		[]models.Comment{{StartLine: 1, EndLine: 1, Kind: models.CommentKindLine, Text: "// old"}}, nil)

	require.NoError(t, ReplaceFileComments(fileID,
		[]models.Comment{{StartLine: 2, EndLine: 2, Kind: models.CommentKindLine, Text: "// new"}}, nil))

	comments, total, err := GetCommentsPaginated(models.CommentFilters{FileID: fileID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, comments, 1)
	assert.Equal(t, "// new", comments[0].Text)
}

func TestSourceFileListing(t *testing.T) {
	initTestDB(t)

	fileID := seedFileWithComments(t, "/src/a.c",
		[]models.Comment{
			{StartLine: 1, EndLine: 1, Kind: models.CommentKindLine, Text: "// one"},
			{StartLine: 2, EndLine: 2, Kind: models.CommentKindLine, Text: "// two"},
		}, nil)

	files, err := GetSourceFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "/src/a.c", files[0].Path)
	assert.Equal(t, int64(2), files[0].CommentCount)

	f, err := GetSourceFileByID(fileID)
	require.NoError(t, err)
	assert.Equal(t, "/src/a.c", f.Path)

	_, err = GetSourceFileByID(12345)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestScanLifecycle(t *testing.T) {
	initTestDB(t)

	scan, err := CreateScan("/src")
	require.NoError(t, err)
	require.NotZero(t, scan.ID)
	require.NoError(t, FinishScan(scan.ID, 3, 1, 7))

	scans, err := GetRecentScans(10)
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, scan.UUID, scans[0].UUID)
	assert.Equal(t, int64(3), scans[0].FilesScanned)
	assert.Equal(t, int64(1), scans[0].FilesSkipped)
	assert.Equal(t, int64(7), scans[0].CommentsFound)
	assert.True(t, scans[0].FinishedAt.Valid)
	assert.Equal(t, "/src", scans[0].RootPath.String)
}
