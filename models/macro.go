package models

// Macro symbol kinds, inferred from the shape of the #define.
const (
	MacroKindFunction = "function_macro"
	MacroKindConstant = "constant"
)

// MacroSymbol is a symbol derived from a #define directive found in a header:
// NAME(args...) becomes a function macro, anything else a constant.
type MacroSymbol struct {
	ID           int64  `json:"id,omitempty" format:"int64" readOnly:"true"`
	FileID       int64  `json:"file_id,omitempty" format:"int64" readOnly:"true"`
	Filename     string `json:"filename,omitempty"`
	Name         string `json:"name"`
	Kind         string `json:"kind" enum:"function_macro,constant"`
	LineNumber   int    `json:"line_number"`
	OriginalText string `json:"original_text"`
}
