package core

import (
	"os"
	"path/filepath"
	"testing"

	"cscan/database"
	"cscan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0640))
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "main.c"), "int main(void) { return 0; }\n")
	writeFile(t, filepath.Join(dir, "src", "util.h"), "#pragma once\n")
	writeFile(t, filepath.Join(dir, "src", "notes.txt"), "not source\n")
	writeFile(t, filepath.Join(dir, ".git", "config.c"), "// should be skipped\n")
	writeFile(t, filepath.Join(dir, "build", "gen.c"), "// should be skipped\n")

	e := NewCommentExtractor([]string{".c", "h"}, []string{".git", "build"})
	files, err := e.CollectFiles([]string{dir})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "src", "main.c"),
		filepath.Join(dir, "src", "util.h"),
	}, files)
}

func TestCollectFilesExplicitFileBypassesExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	odd := filepath.Join(dir, "listing.inc")
	writeFile(t, odd, "/* include fragment */\n")

	e := NewCommentExtractor([]string{".c"}, nil)
	files, err := e.CollectFiles([]string{odd})
	require.NoError(t, err)
	assert.Equal(t, []string{odd}, files)
}

func TestCollectFilesMissingPath(t *testing.T) {
	e := NewCommentExtractor([]string{".c"}, nil)
	_, err := e.CollectFiles([]string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestScanFileHeaderGuardSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "util.h")
	writeFile(t, path, `#ifndef UTIL_H
#define UTIL_H

/** util_max: picks the larger value */
#define UTIL_MAX(a, b) ((a) > (b) ? (a) : (b))
#define UTIL_VERSION "1.0"

#endif
`)

	e := NewCommentExtractor([]string{".h"}, nil)
	fr, err := e.ScanFile(path)
	require.NoError(t, err)

	// The header guard #define UTIL_H must not survive.
	require.Len(t, fr.Comments, 3)
	assert.Equal(t, models.CommentKindBlock, fr.Comments[0].Kind)
	assert.True(t, fr.Comments[0].IsDoc)
	assert.Equal(t, "#define UTIL_MAX(a, b) ((a) > (b) ? (a) : (b))", fr.Comments[1].Text)
	assert.Equal(t, "#define UTIL_VERSION \"1.0\"", fr.Comments[2].Text)

	require.Len(t, fr.Macros, 2)
	assert.Equal(t, "UTIL_MAX", fr.Macros[0].Name)
	assert.Equal(t, models.MacroKindFunction, fr.Macros[0].Kind)
	assert.Equal(t, "UTIL_VERSION", fr.Macros[1].Name)
	assert.Equal(t, models.MacroKindConstant, fr.Macros[1].Kind)
}

func TestScanFilePragmaOnceKeepsFirstDefine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.h")
	writeFile(t, path, "#pragma once\n#define FLAG_ON 1\n")

	e := NewCommentExtractor([]string{".h"}, nil)
	fr, err := e.ScanFile(path)
	require.NoError(t, err)

	require.Len(t, fr.Comments, 1)
	assert.Equal(t, "#define FLAG_ON 1", fr.Comments[0].Text)
	require.Len(t, fr.Macros, 1)
	assert.Equal(t, "FLAG_ON", fr.Macros[0].Name)
}

func TestScanFileSourceFileYieldsNoMacroSymbols(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "impl.c")
	writeFile(t, path, "#define LOCAL_BUF 64\n/* body */\n")

	e := NewCommentExtractor([]string{".c"}, nil)
	fr, err := e.ScanFile(path)
	require.NoError(t, err)

	// The #define stays in the comment stream but produces no symbol.
	require.Len(t, fr.Comments, 2)
	assert.Equal(t, models.CommentKindMacro, fr.Comments[0].Kind)
	assert.Empty(t, fr.Macros)
	assert.NotEmpty(t, fr.Hash)
	assert.Equal(t, path, fr.Comments[0].Filename)
}

func TestMacroSymbolFromRaw(t *testing.T) {
	tests := []struct {
		text     string
		wantName string
		wantKind string
	}{
		{"#define MAX(a, b) ((a) > (b) ? (a) : (b))", "MAX", models.MacroKindFunction},
		{"#define VERSION \"1.0\"", "VERSION", models.MacroKindConstant},
		{"#define BARE", "BARE", models.MacroKindConstant},
		{"#  define SPACED 2", "SPACED", models.MacroKindConstant},
		{"#define WRAP (x)", "WRAP", models.MacroKindConstant}, // space before paren: not a function macro
	}
	for _, tt := range tests {
		sym := macroSymbolFromRaw(models.Comment{Kind: models.CommentKindMacro, Text: tt.text, StartLine: 3})
		require.NotNil(t, sym, tt.text)
		assert.Equal(t, tt.wantName, sym.Name, tt.text)
		assert.Equal(t, tt.wantKind, sym.Kind, tt.text)
		assert.Equal(t, 3, sym.LineNumber, tt.text)
	}

	assert.Nil(t, macroSymbolFromRaw(models.Comment{Kind: models.CommentKindMacro, Text: "#define"}))
}

func TestCompileCommandsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compile_commands.json")
	writeFile(t, path, `[
  {"directory": "/work/proj", "command": "cc -c main.c", "file": "main.c"},
  {"directory": "/work/proj", "command": "cc -c /work/proj/lib/util.c", "file": "/work/proj/lib/util.c"}
]`)

	files, err := CompileCommandsFiles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/work/proj/main.c", "/work/proj/lib/util.c"}, files)
}

func TestCompileCommandsFilesInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compile_commands.json")
	writeFile(t, path, "{not json")

	_, err := CompileCommandsFiles(path)
	assert.Error(t, err)
}

func TestScanPathsAndSaveResult(t *testing.T) {
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))

	srcDir := t.TempDir()
	writeFile(t, filepath.Join(srcDir, "a.c"), "/* alpha */\nint a;\n")
	writeFile(t, filepath.Join(srcDir, "b.c"), "// beta\nint b;\n")

	e := NewCommentExtractor([]string{".c"}, nil)
	res, err := e.ScanPaths([]string{srcDir})
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	assert.Equal(t, 2, res.TotalComments)
	assert.Zero(t, res.FailedFiles)

	scan, err := SaveResult(res, srcDir)
	require.NoError(t, err)
	assert.Equal(t, int64(2), scan.FilesScanned)
	assert.Equal(t, int64(0), scan.FilesSkipped)
	assert.Equal(t, int64(2), scan.CommentsFound)
	assert.NotEmpty(t, scan.UUID)

	// Second run over unchanged files skips everything but keeps the rows.
	res2, err := e.ScanPaths([]string{srcDir})
	require.NoError(t, err)
	scan2, err := SaveResult(res2, srcDir)
	require.NoError(t, err)
	assert.Equal(t, int64(0), scan2.FilesScanned)
	assert.Equal(t, int64(2), scan2.FilesSkipped)

	comments, total, err := database.GetCommentsPaginated(models.CommentFilters{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, comments, 2)
}
