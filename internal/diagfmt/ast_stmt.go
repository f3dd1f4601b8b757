package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fstrify/internal/ast"
	"fstrify/internal/source"
)

// stmtKindName returns the display name of a statement kind.
func stmtKindName(kind ast.StmtKind) string {
	switch kind {
	case ast.StmtExpr:
		return "Expr"
	case ast.StmtAssign:
		return "Assign"
	case ast.StmtAugAssign:
		return "AugAssign"
	case ast.StmtAnnAssign:
		return "AnnAssign"
	case ast.StmtReturn:
		return "Return"
	case ast.StmtPass:
		return "Pass"
	case ast.StmtBreak:
		return "Break"
	case ast.StmtContinue:
		return "Continue"
	case ast.StmtDel:
		return "Del"
	case ast.StmtImport:
		return "Import"
	case ast.StmtImportFrom:
		return "ImportFrom"
	case ast.StmtGlobal:
		return "Global"
	case ast.StmtNonlocal:
		return "Nonlocal"
	case ast.StmtAssert:
		return "Assert"
	case ast.StmtRaise:
		return "Raise"
	case ast.StmtIf:
		return "If"
	case ast.StmtWhile:
		return "While"
	case ast.StmtFor:
		return "For"
	case ast.StmtWith:
		return "With"
	case ast.StmtTry:
		return "Try"
	case ast.StmtFuncDef:
		return "FuncDef"
	case ast.StmtClassDef:
		return "ClassDef"
	case ast.StmtMatch:
		return "Match"
	default:
		return fmt.Sprintf("Unknown(%d)", kind)
	}
}

// prettyField — одно поле оператора в дереве: либо строка, либо
// вложенный блок операторов.
type prettyField struct {
	label  string
	inline string
	stmts  []ast.StmtID
}

func writeStmtPretty(w io.Writer, b *ast.Builder, id ast.StmtID, fs *source.FileSet, prefix string) {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		fmt.Fprintln(w, "nil stmt")
		return
	}

	fmt.Fprintf(w, "%s (span: %s)\n", stmtKindName(stmt.Kind), formatSpan(stmt.Span, fs))
	writeFields(w, b, fs, prefix, stmtFields(b, fs, id, stmt))
}

func writeFields(w io.Writer, b *ast.Builder, fs *source.FileSet, prefix string, fields []prettyField) {
	for i, f := range fields {
		branch, childPrefix := "├─ ", prefix+"│  "
		if i == len(fields)-1 {
			branch, childPrefix = "└─ ", prefix+"   "
		}
		if f.stmts == nil {
			fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, f.label, f.inline)
			continue
		}
		fmt.Fprintf(w, "%s%s%s:\n", prefix, branch, f.label)
		writeStmtList(w, b, f.stmts, fs, childPrefix)
	}
}

// stmtFields раскладывает оператор на поля для печати.
func stmtFields(b *ast.Builder, fs *source.FileSet, id ast.StmtID, stmt *ast.Stmt) []prettyField {
	var fields []prettyField
	add := func(f prettyField) { fields = append(fields, f) }
	expr := func(eid ast.ExprID) string { return formatExprInline(b, fs, eid) }

	switch stmt.Kind {
	case ast.StmtExpr:
		if data, ok := b.Stmts.ExprStmt(id); ok {
			add(prettyField{label: "Value", inline: expr(data.Value)})
		}

	case ast.StmtAssign:
		if data, ok := b.Stmts.Assign(id); ok {
			add(prettyField{label: "Targets", inline: formatExprList(b, fs, data.Targets, 1)})
			add(prettyField{label: "Value", inline: expr(data.Value)})
		}

	case ast.StmtAugAssign:
		if data, ok := b.Stmts.AugAssign(id); ok {
			add(prettyField{label: "Target", inline: expr(data.Target)})
			add(prettyField{label: "Op", inline: data.Op.String() + "="})
			add(prettyField{label: "Value", inline: expr(data.Value)})
		}

	case ast.StmtAnnAssign:
		if data, ok := b.Stmts.AnnAssign(id); ok {
			add(prettyField{label: "Target", inline: expr(data.Target)})
			add(prettyField{label: "Annotation", inline: expr(data.Annotation)})
			if data.Value.IsValid() {
				add(prettyField{label: "Value", inline: expr(data.Value)})
			}
		}

	case ast.StmtReturn:
		if data, ok := b.Stmts.Return(id); ok && data.Value.IsValid() {
			add(prettyField{label: "Value", inline: expr(data.Value)})
		}

	case ast.StmtDel:
		if data, ok := b.Stmts.Del(id); ok {
			add(prettyField{label: "Targets", inline: formatExprList(b, fs, data.Targets, 1)})
		}

	case ast.StmtImport:
		if data, ok := b.Stmts.Import(id); ok {
			add(prettyField{label: "Names", inline: formatImportAliases(b, data.Names)})
		}

	case ast.StmtImportFrom:
		if data, ok := b.Stmts.ImportFrom(id); ok {
			add(prettyField{label: "Module", inline: formatImportFromModule(b, data)})
			if data.Wildcard {
				add(prettyField{label: "Names", inline: "*"})
			} else {
				add(prettyField{label: "Names", inline: formatImportAliases(b, data.Names)})
			}
		}

	case ast.StmtGlobal:
		if data, ok := b.Stmts.Global(id); ok {
			add(prettyField{label: "Names", inline: formatNameList(b, data.Names)})
		}

	case ast.StmtNonlocal:
		if data, ok := b.Stmts.Nonlocal(id); ok {
			add(prettyField{label: "Names", inline: formatNameList(b, data.Names)})
		}

	case ast.StmtAssert:
		if data, ok := b.Stmts.Assert(id); ok {
			add(prettyField{label: "Cond", inline: expr(data.Cond)})
			if data.Msg.IsValid() {
				add(prettyField{label: "Msg", inline: expr(data.Msg)})
			}
		}

	case ast.StmtRaise:
		if data, ok := b.Stmts.Raise(id); ok {
			if data.Exc.IsValid() {
				add(prettyField{label: "Exc", inline: expr(data.Exc)})
			}
			if data.From.IsValid() {
				add(prettyField{label: "From", inline: expr(data.From)})
			}
		}

	case ast.StmtIf:
		if data, ok := b.Stmts.If(id); ok {
			add(prettyField{label: "Cond", inline: expr(data.Cond)})
			add(prettyField{label: "Then", stmts: data.Then})
			if len(data.Else) > 0 {
				add(prettyField{label: "Else", stmts: data.Else})
			}
		}

	case ast.StmtWhile:
		if data, ok := b.Stmts.While(id); ok {
			add(prettyField{label: "Cond", inline: expr(data.Cond)})
			add(prettyField{label: "Body", stmts: data.Body})
			if len(data.Else) > 0 {
				add(prettyField{label: "Else", stmts: data.Else})
			}
		}

	case ast.StmtFor:
		if data, ok := b.Stmts.For(id); ok {
			if data.IsAsync {
				add(prettyField{label: "Async", inline: "true"})
			}
			add(prettyField{label: "Target", inline: expr(data.Target)})
			add(prettyField{label: "Iter", inline: expr(data.Iter)})
			add(prettyField{label: "Body", stmts: data.Body})
			if len(data.Else) > 0 {
				add(prettyField{label: "Else", stmts: data.Else})
			}
		}

	case ast.StmtWith:
		if data, ok := b.Stmts.With(id); ok {
			if data.IsAsync {
				add(prettyField{label: "Async", inline: "true"})
			}
			add(prettyField{label: "Items", inline: formatWithItems(b, fs, data.Items)})
			add(prettyField{label: "Body", stmts: data.Body})
		}

	case ast.StmtTry:
		if data, ok := b.Stmts.Try(id); ok {
			add(prettyField{label: "Body", stmts: data.Body})
			for _, handler := range data.Handlers {
				add(prettyField{label: exceptLabel(b, fs, handler, data.Star), stmts: handler.Body})
			}
			if len(data.Else) > 0 {
				add(prettyField{label: "Else", stmts: data.Else})
			}
			if len(data.Finally) > 0 {
				add(prettyField{label: "Finally", stmts: data.Finally})
			}
		}

	case ast.StmtFuncDef:
		if data, ok := b.Stmts.FuncDef(id); ok {
			if data.IsAsync {
				add(prettyField{label: "Async", inline: "true"})
			}
			add(prettyField{label: "Name", inline: b.Strings.MustLookup(data.Name)})
			add(prettyField{label: "Params", inline: "(" + formatParams(b, fs, data.Params) + ")"})
			if data.Returns.IsValid() {
				add(prettyField{label: "Returns", inline: expr(data.Returns)})
			}
			for _, deco := range data.Decorators {
				add(prettyField{label: "Decorator", inline: "@" + expr(deco)})
			}
			add(prettyField{label: "Body", stmts: data.Body})
		}

	case ast.StmtClassDef:
		if data, ok := b.Stmts.ClassDef(id); ok {
			add(prettyField{label: "Name", inline: b.Strings.MustLookup(data.Name)})
			if len(data.Bases) > 0 {
				add(prettyField{label: "Bases", inline: "(" + formatCallArgs(b, fs, data.Bases, 1) + ")"})
			}
			for _, deco := range data.Decorators {
				add(prettyField{label: "Decorator", inline: "@" + expr(deco)})
			}
			add(prettyField{label: "Body", stmts: data.Body})
		}

	case ast.StmtMatch:
		if data, ok := b.Stmts.Match(id); ok {
			add(prettyField{label: "Subject", inline: expr(data.Subject)})
			for _, matchCase := range data.Cases {
				add(prettyField{label: caseLabel(b, fs, matchCase), stmts: matchCase.Body})
			}
		}
	}

	return fields
}

func exceptLabel(b *ast.Builder, fs *source.FileSet, h ast.ExceptHandler, star bool) string {
	label := "Except"
	if star {
		label = "Except*"
	}
	if h.Type.IsValid() {
		label += " " + formatExprInline(b, fs, h.Type)
	}
	if h.Name != source.NoStringID {
		label += " as " + b.Strings.MustLookup(h.Name)
	}
	return label
}

func caseLabel(b *ast.Builder, fs *source.FileSet, c ast.MatchCase) string {
	label := "Case " + formatExprInline(b, fs, c.Pattern)
	if c.Guard.IsValid() {
		label += " if " + formatExprInline(b, fs, c.Guard)
	}
	return label
}

func formatImportAliases(b *ast.Builder, names []ast.ImportAlias) string {
	parts := make([]string, len(names))
	for i, alias := range names {
		text := b.Strings.MustLookup(alias.Path)
		if alias.Asname != source.NoStringID {
			text += " as " + b.Strings.MustLookup(alias.Asname)
		}
		parts[i] = text
	}
	return strings.Join(parts, ", ")
}

func formatImportFromModule(b *ast.Builder, data *ast.StmtImportFromData) string {
	module := strings.Repeat(".", data.Dots)
	if data.Module != source.NoStringID {
		module += b.Strings.MustLookup(data.Module)
	}
	return module
}

func formatNameList(b *ast.Builder, names []source.StringID) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = b.Strings.MustLookup(name)
	}
	return strings.Join(parts, ", ")
}

func formatWithItems(b *ast.Builder, fs *source.FileSet, items []ast.WithItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		text := formatExprInline(b, fs, item.Context)
		if item.Target.IsValid() {
			text += " as " + formatExprInline(b, fs, item.Target)
		}
		parts[i] = text
	}
	return strings.Join(parts, ", ")
}

// stmtJSON строит JSON-узел оператора; вложенные блоки лежат в fields.
func stmtJSON(b *ast.Builder, fs *source.FileSet, id ast.StmtID) ASTNodeOutput {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return ASTNodeOutput{Type: "Stmt", Kind: "<invalid>"}
	}

	node := ASTNodeOutput{
		Type: "Stmt",
		Kind: stmtKindName(stmt.Kind),
		Span: stmt.Span,
	}
	field := func(key string, value any) {
		if node.Fields == nil {
			node.Fields = make(map[string]any)
		}
		node.Fields[key] = value
	}
	exprField := func(key string, eid ast.ExprID) {
		if eid.IsValid() {
			field(key, exprJSON(b, fs, eid))
		}
	}
	exprsField := func(key string, ids []ast.ExprID) {
		nodes := make([]ASTNodeOutput, len(ids))
		for i, eid := range ids {
			nodes[i] = exprJSON(b, fs, eid)
		}
		field(key, nodes)
	}
	stmtsField := func(key string, stmts []ast.StmtID) {
		if len(stmts) == 0 {
			return
		}
		nodes := make([]ASTNodeOutput, len(stmts))
		for i, sid := range stmts {
			nodes[i] = stmtJSON(b, fs, sid)
		}
		field(key, nodes)
	}
	stmtNodes := func(stmts []ast.StmtID) []ASTNodeOutput {
		nodes := make([]ASTNodeOutput, len(stmts))
		for i, sid := range stmts {
			nodes[i] = stmtJSON(b, fs, sid)
		}
		return nodes
	}

	switch stmt.Kind {
	case ast.StmtExpr:
		if data, ok := b.Stmts.ExprStmt(id); ok {
			exprField("value", data.Value)
		}
	case ast.StmtAssign:
		if data, ok := b.Stmts.Assign(id); ok {
			exprsField("targets", data.Targets)
			exprField("value", data.Value)
		}
	case ast.StmtAugAssign:
		if data, ok := b.Stmts.AugAssign(id); ok {
			field("op", data.Op.String())
			exprField("target", data.Target)
			exprField("value", data.Value)
		}
	case ast.StmtAnnAssign:
		if data, ok := b.Stmts.AnnAssign(id); ok {
			exprField("target", data.Target)
			exprField("annotation", data.Annotation)
			exprField("value", data.Value)
		}
	case ast.StmtReturn:
		if data, ok := b.Stmts.Return(id); ok {
			exprField("value", data.Value)
		}
	case ast.StmtDel:
		if data, ok := b.Stmts.Del(id); ok {
			exprsField("targets", data.Targets)
		}
	case ast.StmtImport:
		if data, ok := b.Stmts.Import(id); ok {
			field("names", formatImportAliases(b, data.Names))
		}
	case ast.StmtImportFrom:
		if data, ok := b.Stmts.ImportFrom(id); ok {
			field("module", formatImportFromModule(b, data))
			if data.Wildcard {
				field("wildcard", true)
			} else {
				field("names", formatImportAliases(b, data.Names))
			}
		}
	case ast.StmtGlobal:
		if data, ok := b.Stmts.Global(id); ok {
			field("names", formatNameList(b, data.Names))
		}
	case ast.StmtNonlocal:
		if data, ok := b.Stmts.Nonlocal(id); ok {
			field("names", formatNameList(b, data.Names))
		}
	case ast.StmtAssert:
		if data, ok := b.Stmts.Assert(id); ok {
			exprField("cond", data.Cond)
			exprField("msg", data.Msg)
		}
	case ast.StmtRaise:
		if data, ok := b.Stmts.Raise(id); ok {
			exprField("exc", data.Exc)
			exprField("from", data.From)
		}
	case ast.StmtIf:
		if data, ok := b.Stmts.If(id); ok {
			exprField("cond", data.Cond)
			stmtsField("then", data.Then)
			stmtsField("else", data.Else)
		}
	case ast.StmtWhile:
		if data, ok := b.Stmts.While(id); ok {
			exprField("cond", data.Cond)
			stmtsField("body", data.Body)
			stmtsField("else", data.Else)
		}
	case ast.StmtFor:
		if data, ok := b.Stmts.For(id); ok {
			if data.IsAsync {
				field("async", true)
			}
			exprField("target", data.Target)
			exprField("iter", data.Iter)
			stmtsField("body", data.Body)
			stmtsField("else", data.Else)
		}
	case ast.StmtWith:
		if data, ok := b.Stmts.With(id); ok {
			if data.IsAsync {
				field("async", true)
			}
			field("items", formatWithItems(b, fs, data.Items))
			stmtsField("body", data.Body)
		}
	case ast.StmtTry:
		if data, ok := b.Stmts.Try(id); ok {
			if data.Star {
				field("star", true)
			}
			stmtsField("body", data.Body)
			if len(data.Handlers) > 0 {
				handlers := make([]map[string]any, len(data.Handlers))
				for i, handler := range data.Handlers {
					entry := map[string]any{"body": stmtNodes(handler.Body)}
					if handler.Type.IsValid() {
						entry["type"] = exprJSON(b, fs, handler.Type)
					}
					if handler.Name != source.NoStringID {
						entry["name"] = b.Strings.MustLookup(handler.Name)
					}
					handlers[i] = entry
				}
				field("handlers", handlers)
			}
			stmtsField("else", data.Else)
			stmtsField("finally", data.Finally)
		}
	case ast.StmtFuncDef:
		if data, ok := b.Stmts.FuncDef(id); ok {
			if data.IsAsync {
				field("async", true)
			}
			field("name", b.Strings.MustLookup(data.Name))
			field("params", formatParams(b, fs, data.Params))
			exprField("returns", data.Returns)
			if len(data.Decorators) > 0 {
				exprsField("decorators", data.Decorators)
			}
			stmtsField("body", data.Body)
		}
	case ast.StmtClassDef:
		if data, ok := b.Stmts.ClassDef(id); ok {
			field("name", b.Strings.MustLookup(data.Name))
			if len(data.Bases) > 0 {
				field("bases", formatCallArgs(b, fs, data.Bases, 0))
			}
			if len(data.Decorators) > 0 {
				exprsField("decorators", data.Decorators)
			}
			stmtsField("body", data.Body)
		}
	case ast.StmtMatch:
		if data, ok := b.Stmts.Match(id); ok {
			exprField("subject", data.Subject)
			if len(data.Cases) > 0 {
				cases := make([]map[string]any, len(data.Cases))
				for i, matchCase := range data.Cases {
					entry := map[string]any{
						"pattern": exprJSON(b, fs, matchCase.Pattern),
						"body":    stmtNodes(matchCase.Body),
					}
					if matchCase.Guard.IsValid() {
						entry["guard"] = exprJSON(b, fs, matchCase.Guard)
					}
					cases[i] = entry
				}
				field("cases", cases)
			}
		}
	}

	return node
}
