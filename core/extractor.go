package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cscan/config"
	"cscan/database"
	"cscan/logger"
	"cscan/models"
	"cscan/scanner"

	"github.com/tidwall/gjson"
)

// FileResult holds everything extracted from a single file.
type FileResult struct {
	Path     string               `json:"path"`
	Hash     string               `json:"hash"`
	Comments []models.Comment     `json:"comments"`
	Macros   []models.MacroSymbol `json:"macros"`
}

// ExtractResult aggregates a full extractor run. Failed files are counted
// and logged rather than aborting the run.
type ExtractResult struct {
	Files         []FileResult `json:"files"`
	TotalComments int          `json:"total_comments"`
	TotalMacros   int          `json:"total_macros"`
	FailedFiles   int          `json:"failed_files"`
}

// CommentExtractor walks C sources and turns scanner output into comment and
// macro symbol records.
type CommentExtractor struct {
	extensions map[string]bool
	skipDirs   map[string]bool
}

func NewCommentExtractor(extensions, skipDirs []string) *CommentExtractor {
	e := &CommentExtractor{
		extensions: make(map[string]bool, len(extensions)),
		skipDirs:   make(map[string]bool, len(skipDirs)),
	}
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.extensions[strings.ToLower(ext)] = true
	}
	for _, d := range skipDirs {
		e.skipDirs[d] = true
	}
	return e
}

// NewCommentExtractorFromConfig builds an extractor from the loaded AppConfig.
func NewCommentExtractorFromConfig() *CommentExtractor {
	return NewCommentExtractor(config.AppConfig.Scanner.Extensions, config.AppConfig.Scanner.SkipDirs)
}

// CollectFiles expands the given paths into a deduplicated file list.
// Explicit files are taken as-is; directories recurse, filtered by the
// configured extensions and skip-dirs.
func (e *CommentExtractor) CollectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			if !seen[p] {
				seen[p] = true
				files = append(files, p)
			}
			continue
		}
		root := p
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && e.skipDirs[d.Name()] {
					logger.ScanDebug("Skipping directory %s", path)
					return filepath.SkipDir
				}
				return nil
			}
			if e.extensions[strings.ToLower(filepath.Ext(path))] && !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walking %s: %w", root, walkErr)
		}
	}
	return files, nil
}

// CompileCommandsFiles extracts the scannable file list from a
// compile_commands.json database. Relative paths are resolved against each
// entry's directory field.
func CompileCommandsFiles(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading compile commands %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("compile commands %s is not valid JSON", path)
	}

	var files []string
	gjson.ParseBytes(data).ForEach(func(_, entry gjson.Result) bool {
		file := entry.Get("file").String()
		if file == "" {
			return true
		}
		if !filepath.IsAbs(file) {
			if dir := entry.Get("directory").String(); dir != "" {
				file = filepath.Join(dir, file)
			}
		}
		files = append(files, file)
		return true
	})
	if len(files) == 0 {
		logger.Warn("Compile commands %s contained no file entries.", path)
	}
	return files, nil
}

// ScanFile scans one file. Header files get the original doc-tool treatment:
// the first #define is suppressed as a header guard unless a "#pragma once"
// line is present, and surviving #defines become macro symbols.
func (e *CommentExtractor) ScanFile(path string) (FileResult, error) {
	result := FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	result.Hash = hex.EncodeToString(sum[:])

	contents := scanner.DecodeContents(data)
	entries := scanner.ExtractComments(contents)
	for i := range entries {
		entries[i].Filename = path
	}

	header := strings.EqualFold(filepath.Ext(path), ".h")
	skipNextMacro := header && !hasPragmaOnce(contents)

	kept := []models.Comment{}
	macros := []models.MacroSymbol{}
	for _, entry := range entries {
		if entry.Kind != models.CommentKindMacro {
			kept = append(kept, entry)
			continue
		}
		if skipNextMacro {
			// Header guard #define, not a documentable symbol.
			skipNextMacro = false
			logger.ScanDebug("Skipping header guard candidate at %s:%d", path, entry.StartLine)
			continue
		}
		kept = append(kept, entry)
		if header {
			if sym := macroSymbolFromRaw(entry); sym != nil {
				macros = append(macros, *sym)
			}
		}
	}

	result.Comments = kept
	result.Macros = macros
	logger.ScanInfo("Scanned %s: %d comments, %d macro symbols", path, len(kept), len(macros))
	return result, nil
}

// ScanPaths collects and scans every file under the given paths. Individual
// file failures are logged and counted; they do not abort the run.
func (e *CommentExtractor) ScanPaths(paths []string) (*ExtractResult, error) {
	files, err := e.CollectFiles(paths)
	if err != nil {
		return nil, err
	}

	result := &ExtractResult{}
	for _, f := range files {
		fr, err := e.ScanFile(f)
		if err != nil {
			logger.ScanError("Failed to scan %s: %v", f, err)
			result.FailedFiles++
			continue
		}
		result.Files = append(result.Files, fr)
		result.TotalComments += len(fr.Comments)
		result.TotalMacros += len(fr.Macros)
	}
	return result, nil
}

// SaveResult persists an extractor run as a scan session. Files whose
// content hash is unchanged keep their stored comments and are counted as
// skipped.
func SaveResult(res *ExtractResult, rootPath string) (models.Scan, error) {
	scan, err := database.CreateScan(rootPath)
	if err != nil {
		return scan, err
	}

	var scanned, skipped, found int64
	for _, fr := range res.Files {
		fileID, changed, err := database.UpsertSourceFile(fr.Path, fr.Hash, scan.ID)
		if err != nil {
			return scan, fmt.Errorf("upserting %s: %w", fr.Path, err)
		}
		if !changed {
			skipped++
			logger.ScanDebug("Unchanged file %s, keeping stored comments.", fr.Path)
			continue
		}
		if err := database.ReplaceFileComments(fileID, fr.Comments, fr.Macros); err != nil {
			return scan, fmt.Errorf("storing comments for %s: %w", fr.Path, err)
		}
		scanned++
		found += int64(len(fr.Comments))
	}

	if err := database.FinishScan(scan.ID, scanned, skipped, found); err != nil {
		return scan, err
	}
	scan.FilesScanned = scanned
	scan.FilesSkipped = skipped
	scan.CommentsFound = found
	logger.Info("Scan %s finished: %d files scanned, %d skipped, %d comments.", scan.UUID, scanned, skipped, found)
	return scan, nil
}

// hasPragmaOnce reports whether any line of the file starts with
// "#pragma once".
func hasPragmaOnce(contents string) bool {
	for _, line := range strings.Split(contents, "\n") {
		if strings.HasPrefix(line, "#pragma once") {
			return true
		}
	}
	return false
}

// macroSymbolFromRaw derives a symbol from a raw #define: NAME(args...)
// becomes a function macro, anything else a constant.
func macroSymbolFromRaw(raw models.Comment) *models.MacroSymbol {
	body := strings.TrimSpace(raw.Text)
	body = strings.TrimSpace(strings.TrimPrefix(body, "#"))
	body = strings.TrimSpace(strings.TrimPrefix(body, "define"))
	body = strings.ReplaceAll(body, "\t", " ")
	if body == "" {
		return nil
	}

	split := strings.SplitN(body, "(", 2)
	name := split[0]
	if len(split) == 2 && !strings.Contains(name, " ") {
		return &models.MacroSymbol{
			Name:         strings.TrimSpace(name),
			Kind:         models.MacroKindFunction,
			LineNumber:   raw.StartLine,
			OriginalText: raw.Text,
		}
	}

	name = strings.SplitN(body, " ", 2)[0]
	return &models.MacroSymbol{
		Name:         strings.TrimSpace(name),
		Kind:         models.MacroKindConstant,
		LineNumber:   raw.StartLine,
		OriginalText: raw.Text,
	}
}
