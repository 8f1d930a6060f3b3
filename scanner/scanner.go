// Package scanner extracts comments and #define directives from C source
// files: a filename in, an ordered list of extracted entries out.
package scanner

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"cscan/models"

	"golang.org/x/text/encoding/charmap"
)

// GetComments reads the named file and returns every comment and #define
// directive in file order. The returned slice is never nil on success and is
// exactly what ExtractComments produced, untouched apart from the filename
// being filled in.
func GetComments(filename string) ([]models.Comment, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	comments := ExtractComments(DecodeContents(data))
	for i := range comments {
		comments[i].Filename = filename
	}
	return comments, nil
}

// DecodeContents converts raw file bytes to a string. Valid UTF-8 passes
// through untouched; anything else is decoded as Latin-1 so scanning never
// fails on legacy encodings.
func DecodeContents(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return string(decoded)
}

// ExtractComments scans C source contents and returns every block comment,
// line comment and #define directive in order of appearance. The result is
// always non-nil. Comment markers inside string and character literals are
// ignored. Line numbers are 1-based; a block comment left unterminated at
// EOF is emitted with the text collected so far.
func ExtractComments(contents string) []models.Comment {
	comments := []models.Comment{}
	line := 1
	atLineStart := true // Only whitespace seen since the start of the current line.
	i := 0
	n := len(contents)

	for i < n {
		c := contents[i]
		switch {
		case c == '\n':
			line++
			i++
			atLineStart = true

		case c == ' ' || c == '\t' || c == '\r':
			i++

		case c == '/' && i+1 < n && contents[i+1] == '*':
			startLine := line
			end := i + 2
			for end < n {
				if contents[end] == '*' && end+1 < n && contents[end+1] == '/' {
					end += 2
					break
				}
				if contents[end] == '\n' {
					line++
				}
				end++
			}
			text := contents[i:end]
			comments = append(comments, models.Comment{
				StartLine: startLine,
				EndLine:   line,
				Kind:      models.CommentKindBlock,
				IsDoc:     strings.HasPrefix(text, "/**"),
				Text:      text,
			})
			i = end
			atLineStart = false

		case c == '/' && i+1 < n && contents[i+1] == '/':
			startLine := line
			j := i + 2
			for j < n {
				if contents[j] == '\\' {
					// Backslash-newline continues the comment.
					if j+1 < n && contents[j+1] == '\n' {
						line++
						j += 2
						continue
					}
					if j+2 < n && contents[j+1] == '\r' && contents[j+2] == '\n' {
						line++
						j += 3
						continue
					}
				}
				if contents[j] == '\n' {
					break
				}
				j++
			}
			comments = append(comments, models.Comment{
				StartLine: startLine,
				EndLine:   line,
				Kind:      models.CommentKindLine,
				Text:      strings.TrimRight(contents[i:j], "\r"),
			})
			i = j
			atLineStart = false

		case c == '"' || c == '\'':
			quote := c
			i++
			for i < n {
				if contents[i] == '\\' {
					if i+1 < n && contents[i+1] == '\n' {
						line++
					}
					i += 2
					continue
				}
				if contents[i] == '\n' {
					// Unterminated literal; resume normal scanning at the newline.
					break
				}
				if contents[i] == quote {
					i++
					break
				}
				i++
			}
			atLineStart = false

		case c == '#' && atLineStart:
			if name, ok := directiveName(contents[i:]); ok && name == "define" {
				startLine := line
				j := i
				for j < n {
					if contents[j] == '\\' {
						if j+1 < n && contents[j+1] == '\n' {
							line++
							j += 2
							continue
						}
						if j+2 < n && contents[j+1] == '\r' && contents[j+2] == '\n' {
							line++
							j += 3
							continue
						}
					}
					if contents[j] == '\n' {
						break
					}
					j++
				}
				comments = append(comments, models.Comment{
					StartLine: startLine,
					EndLine:   line,
					Kind:      models.CommentKindMacro,
					Text:      strings.TrimRight(contents[i:j], "\r"),
				})
				i = j
			} else {
				i++
			}
			atLineStart = false

		default:
			i++
			atLineStart = false
		}
	}
	return comments
}

// directiveName returns the preprocessor directive name following a '#',
// tolerating whitespace between the hash and the name.
func directiveName(s string) (string, bool) {
	j := 1
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}
	k := j
	for k < len(s) && s[k] >= 'a' && s[k] <= 'z' {
		k++
	}
	if k == j {
		return "", false
	}
	return s[j:k], true
}
