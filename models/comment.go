package models

// Comment kinds emitted by the scanner.
const (
	CommentKindBlock = "BLOCK"
	CommentKindLine  = "LINE"
	CommentKindMacro = "MACRO"
)

// Comment represents a single entry extracted from a C source file: a block
// or line comment, or a captured #define directive. Text is the raw source
// text including delimiters.
type Comment struct {
	ID        int64  `json:"id,omitempty" format:"int64" readOnly:"true"`
	FileID    int64  `json:"file_id,omitempty" format:"int64" readOnly:"true"` // Set once the comment is stored.
	Filename  string `json:"filename,omitempty"`                               // Path of the file the comment was found in.
	StartLine int    `json:"start_line"`                                       // 1-based line the entry starts on.
	EndLine   int    `json:"end_line"`                                         // 1-based line the entry ends on.
	Kind      string `json:"kind" enum:"BLOCK,LINE,MACRO"`
	IsDoc     bool   `json:"is_doc"` // True for block comments opening with /** (gtk-doc style).
	Text      string `json:"text"`
}
