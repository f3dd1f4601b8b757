package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fstrify/internal/ast"
	"fstrify/internal/source"
)

// ASTNodeOutput is one node of the JSON AST dump.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// FormatASTPretty prints the statement tree of a parsed file in a
// box-drawing layout. Expressions render inline in source-like form.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}

	fmt.Fprintf(w, "File (span: %s)\n", formatSpan(file.Span, fs))
	writeStmtList(w, builder, file.Body, fs, "")
	return nil
}

// FormatASTJSON сериализует дерево файла в JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}

	var children []ASTNodeOutput
	for _, stmtID := range file.Body {
		children = append(children, stmtJSON(builder, fs, stmtID))
	}

	output := ASTNodeOutput{
		Type:     "File",
		Span:     file.Span,
		Children: children,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// writeStmtList печатает список операторов с ветками дерева.
func writeStmtList(w io.Writer, b *ast.Builder, stmts []ast.StmtID, fs *source.FileSet, prefix string) {
	for i, id := range stmts {
		branch, childPrefix := "├─ ", prefix+"│  "
		if i == len(stmts)-1 {
			branch, childPrefix = "└─ ", prefix+"   "
		}
		fmt.Fprintf(w, "%s%sStmt[%d]: ", prefix, branch, i)
		writeStmtPretty(w, b, id, fs, childPrefix)
	}
}
