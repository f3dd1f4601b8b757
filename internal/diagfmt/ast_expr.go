package diagfmt

import (
	"fmt"
	"strings"

	"fstrify/internal/ast"
	"fstrify/internal/source"
)

const exprInlineMaxDepth = 32

// exprKindName returns the display name of an expression kind.
func exprKindName(kind ast.ExprKind) string {
	switch kind {
	case ast.ExprName:
		return "Name"
	case ast.ExprNum:
		return "Num"
	case ast.ExprStr:
		return "Str"
	case ast.ExprConst:
		return "Const"
	case ast.ExprGroup:
		return "Group"
	case ast.ExprTuple:
		return "Tuple"
	case ast.ExprList:
		return "List"
	case ast.ExprSet:
		return "Set"
	case ast.ExprDict:
		return "Dict"
	case ast.ExprComp:
		return "Comp"
	case ast.ExprStarred:
		return "Starred"
	case ast.ExprUnary:
		return "Unary"
	case ast.ExprBinary:
		return "Binary"
	case ast.ExprBoolOp:
		return "BoolOp"
	case ast.ExprCompare:
		return "Compare"
	case ast.ExprLambda:
		return "Lambda"
	case ast.ExprIfElse:
		return "IfElse"
	case ast.ExprCall:
		return "Call"
	case ast.ExprAttr:
		return "Attr"
	case ast.ExprSubscript:
		return "Subscript"
	case ast.ExprSlice:
		return "Slice"
	case ast.ExprAwait:
		return "Await"
	case ast.ExprYield:
		return "Yield"
	case ast.ExprNamed:
		return "Named"
	case ast.ExprAs:
		return "As"
	default:
		return fmt.Sprintf("Unknown(%d)", kind)
	}
}

func compKindName(kind ast.CompKind) string {
	switch kind {
	case ast.CompList:
		return "list"
	case ast.CompSet:
		return "set"
	case ast.CompDict:
		return "dict"
	default:
		return "generator"
	}
}

// formatExprInline produces a compact source-like rendering of the
// expression. Nested operators are parenthesized so grouping stays
// visible. fs supplies literal text; with a nil fs string literals
// render as <str>.
func formatExprInline(b *ast.Builder, fs *source.FileSet, id ast.ExprID) string {
	return formatExprInlineDepth(b, fs, id, 0)
}

func formatExprInlineDepth(b *ast.Builder, fs *source.FileSet, id ast.ExprID, depth int) string {
	if !id.IsValid() {
		return "<none>"
	}
	if depth >= exprInlineMaxDepth {
		return "..."
	}

	expr := b.Exprs.Get(id)
	if expr == nil {
		return "<invalid>"
	}

	switch expr.Kind {
	case ast.ExprName:
		data, ok := b.Exprs.Name(id)
		if !ok {
			return "<invalid-name>"
		}
		return b.Strings.MustLookup(data.Ident)

	case ast.ExprNum:
		data, ok := b.Exprs.Num(id)
		if !ok {
			return "<invalid-num>"
		}
		return b.Strings.MustLookup(data.Text)

	case ast.ExprStr:
		data, ok := b.Exprs.Str(id)
		if !ok {
			return "<invalid-str>"
		}
		return strLiteralText(fs, data.Parts)

	case ast.ExprConst:
		data, ok := b.Exprs.Const(id)
		if !ok {
			return "<invalid-const>"
		}
		return data.Kind.String()

	case ast.ExprGroup:
		data, ok := b.Exprs.Group(id)
		if !ok {
			return "<invalid-group>"
		}
		return "(" + formatExprInlineDepth(b, fs, data.Inner, depth+1) + ")"

	case ast.ExprTuple:
		data, ok := b.Exprs.Tuple(id)
		if !ok {
			return "<invalid-tuple>"
		}
		if len(data.Elements) == 1 {
			return "(" + formatExprInlineDepth(b, fs, data.Elements[0], depth+1) + ",)"
		}
		return "(" + formatExprList(b, fs, data.Elements, depth+1) + ")"

	case ast.ExprList:
		data, ok := b.Exprs.List(id)
		if !ok {
			return "<invalid-list>"
		}
		return "[" + formatExprList(b, fs, data.Elements, depth+1) + "]"

	case ast.ExprSet:
		data, ok := b.Exprs.Set(id)
		if !ok {
			return "<invalid-set>"
		}
		return "{" + formatExprList(b, fs, data.Elements, depth+1) + "}"

	case ast.ExprDict:
		data, ok := b.Exprs.Dict(id)
		if !ok {
			return "<invalid-dict>"
		}
		parts := make([]string, len(data.Entries))
		for i, entry := range data.Entries {
			if !entry.Key.IsValid() {
				parts[i] = "**" + formatExprInlineDepth(b, fs, entry.Value, depth+1)
				continue
			}
			parts[i] = formatExprInlineDepth(b, fs, entry.Key, depth+1) +
				": " + formatExprInlineDepth(b, fs, entry.Value, depth+1)
		}
		return "{" + strings.Join(parts, ", ") + "}"

	case ast.ExprComp:
		data, ok := b.Exprs.Comp(id)
		if !ok {
			return "<invalid-comp>"
		}
		var open, closer string
		switch data.Kind {
		case ast.CompList:
			open, closer = "[", "]"
		case ast.CompGenerator:
			open, closer = "(", ")"
		default:
			open, closer = "{", "}"
		}
		var sb strings.Builder
		sb.WriteString(open)
		if data.Kind == ast.CompDict {
			sb.WriteString(formatExprInlineDepth(b, fs, data.Key, depth+1))
			sb.WriteString(": ")
		}
		sb.WriteString(formatExprInlineDepth(b, fs, data.Value, depth+1))
		for _, clause := range data.Clauses {
			if clause.IsAsync {
				sb.WriteString(" async")
			}
			sb.WriteString(" for ")
			sb.WriteString(formatExprInlineDepth(b, fs, clause.Target, depth+1))
			sb.WriteString(" in ")
			sb.WriteString(formatExprInlineDepth(b, fs, clause.Iter, depth+1))
			for _, cond := range clause.Ifs {
				sb.WriteString(" if ")
				sb.WriteString(formatExprInlineDepth(b, fs, cond, depth+1))
			}
		}
		sb.WriteString(closer)
		return sb.String()

	case ast.ExprStarred:
		data, ok := b.Exprs.Starred(id)
		if !ok {
			return "<invalid-starred>"
		}
		return "*" + formatExprInlineDepth(b, fs, data.Value, depth+1)

	case ast.ExprUnary:
		data, ok := b.Exprs.Unary(id)
		if !ok {
			return "<invalid-unary>"
		}
		op := data.Op.String()
		if data.Op == ast.UnaryNot {
			op += " "
		}
		return op + formatExprInlineDepth(b, fs, data.Operand, depth+1)

	case ast.ExprBinary:
		data, ok := b.Exprs.Binary(id)
		if !ok {
			return "<invalid-binary>"
		}
		return "(" + formatExprInlineDepth(b, fs, data.Left, depth+1) +
			" " + data.Op.String() + " " +
			formatExprInlineDepth(b, fs, data.Right, depth+1) + ")"

	case ast.ExprBoolOp:
		data, ok := b.Exprs.BoolOp(id)
		if !ok {
			return "<invalid-boolop>"
		}
		parts := make([]string, len(data.Values))
		for i, value := range data.Values {
			parts[i] = formatExprInlineDepth(b, fs, value, depth+1)
		}
		return "(" + strings.Join(parts, " "+data.Op.String()+" ") + ")"

	case ast.ExprCompare:
		data, ok := b.Exprs.Compare(id)
		if !ok {
			return "<invalid-compare>"
		}
		var sb strings.Builder
		sb.WriteString("(")
		sb.WriteString(formatExprInlineDepth(b, fs, data.Left, depth+1))
		for i, op := range data.Ops {
			sb.WriteString(" " + op.String() + " ")
			if i < len(data.Comparators) {
				sb.WriteString(formatExprInlineDepth(b, fs, data.Comparators[i], depth+1))
			}
		}
		sb.WriteString(")")
		return sb.String()

	case ast.ExprLambda:
		data, ok := b.Exprs.Lambda(id)
		if !ok {
			return "<invalid-lambda>"
		}
		head := "lambda"
		if len(data.Params) > 0 {
			head += " " + formatParams(b, fs, data.Params)
		}
		return head + ": " + formatExprInlineDepth(b, fs, data.Body, depth+1)

	case ast.ExprIfElse:
		data, ok := b.Exprs.IfElse(id)
		if !ok {
			return "<invalid-ifelse>"
		}
		return "(" + formatExprInlineDepth(b, fs, data.Body, depth+1) +
			" if " + formatExprInlineDepth(b, fs, data.Cond, depth+1) +
			" else " + formatExprInlineDepth(b, fs, data.OrElse, depth+1) + ")"

	case ast.ExprCall:
		data, ok := b.Exprs.Call(id)
		if !ok {
			return "<invalid-call>"
		}
		return formatExprInlineDepth(b, fs, data.Func, depth+1) +
			"(" + formatCallArgs(b, fs, data.Args, depth+1) + ")"

	case ast.ExprAttr:
		data, ok := b.Exprs.Attr(id)
		if !ok {
			return "<invalid-attr>"
		}
		return formatExprInlineDepth(b, fs, data.Value, depth+1) + "." + b.Strings.MustLookup(data.Attr)

	case ast.ExprSubscript:
		data, ok := b.Exprs.Subscript(id)
		if !ok {
			return "<invalid-subscript>"
		}
		return formatExprInlineDepth(b, fs, data.Value, depth+1) +
			"[" + formatExprInlineDepth(b, fs, data.Index, depth+1) + "]"

	case ast.ExprSlice:
		data, ok := b.Exprs.Slice(id)
		if !ok {
			return "<invalid-slice>"
		}
		var sb strings.Builder
		if data.Lower.IsValid() {
			sb.WriteString(formatExprInlineDepth(b, fs, data.Lower, depth+1))
		}
		sb.WriteString(":")
		if data.Upper.IsValid() {
			sb.WriteString(formatExprInlineDepth(b, fs, data.Upper, depth+1))
		}
		if data.Step.IsValid() {
			sb.WriteString(":")
			sb.WriteString(formatExprInlineDepth(b, fs, data.Step, depth+1))
		}
		return sb.String()

	case ast.ExprAwait:
		data, ok := b.Exprs.Await(id)
		if !ok {
			return "<invalid-await>"
		}
		return "await " + formatExprInlineDepth(b, fs, data.Value, depth+1)

	case ast.ExprYield:
		data, ok := b.Exprs.Yield(id)
		if !ok {
			return "<invalid-yield>"
		}
		if data.IsFrom {
			return "(yield from " + formatExprInlineDepth(b, fs, data.Value, depth+1) + ")"
		}
		if !data.Value.IsValid() {
			return "(yield)"
		}
		return "(yield " + formatExprInlineDepth(b, fs, data.Value, depth+1) + ")"

	case ast.ExprNamed:
		data, ok := b.Exprs.Named(id)
		if !ok {
			return "<invalid-named>"
		}
		return "(" + formatExprInlineDepth(b, fs, data.Target, depth+1) +
			" := " + formatExprInlineDepth(b, fs, data.Value, depth+1) + ")"

	case ast.ExprAs:
		data, ok := b.Exprs.As(id)
		if !ok {
			return "<invalid-as>"
		}
		return formatExprInlineDepth(b, fs, data.Value, depth+1) + " as " + b.Strings.MustLookup(data.Name)

	default:
		return "<unknown>"
	}
}

// strLiteralText отдаёт литерал как написан в исходнике; части
// неявной конкатенации разделяются пробелом.
func strLiteralText(fs *source.FileSet, parts []source.Span) string {
	if fs == nil || len(parts) == 0 {
		return "<str>"
	}
	file := fs.Get(parts[0].File)
	texts := make([]string, len(parts))
	for i, part := range parts {
		texts[i] = part.Text(file.Content)
	}
	return strings.Join(texts, " ")
}

func formatExprList(b *ast.Builder, fs *source.FileSet, ids []ast.ExprID, depth int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = formatExprInlineDepth(b, fs, id, depth)
	}
	return strings.Join(parts, ", ")
}

func formatCallArgs(b *ast.Builder, fs *source.FileSet, args []ast.CallArg, depth int) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		var sb strings.Builder
		switch arg.Star {
		case ast.StarSingle:
			sb.WriteString("*")
		case ast.StarDouble:
			sb.WriteString("**")
		}
		if arg.Name != source.NoStringID {
			sb.WriteString(b.Strings.MustLookup(arg.Name))
			sb.WriteString("=")
		}
		sb.WriteString(formatExprInlineDepth(b, fs, arg.Value, depth))
		parts[i] = sb.String()
	}
	return strings.Join(parts, ", ")
}

func formatParams(b *ast.Builder, fs *source.FileSet, params []ast.Param) string {
	parts := make([]string, len(params))
	for i, param := range params {
		parts[i] = formatParam(b, fs, param)
	}
	return strings.Join(parts, ", ")
}

func formatParam(b *ast.Builder, fs *source.FileSet, p ast.Param) string {
	switch p.Kind {
	case ast.ParamStarMarker:
		return "*"
	case ast.ParamSlashMarker:
		return "/"
	}
	var sb strings.Builder
	switch p.Kind {
	case ast.ParamStarArgs:
		sb.WriteString("*")
	case ast.ParamDoubleStar:
		sb.WriteString("**")
	}
	sb.WriteString(b.Strings.MustLookup(p.Name))
	if p.Annotation.IsValid() {
		sb.WriteString(": ")
		sb.WriteString(formatExprInline(b, fs, p.Annotation))
	}
	if p.Default.IsValid() {
		if p.Annotation.IsValid() {
			sb.WriteString(" = ")
		} else {
			sb.WriteString("=")
		}
		sb.WriteString(formatExprInline(b, fs, p.Default))
	}
	return sb.String()
}

// exprJSON строит JSON-узел выражения с полной рекурсией по детям.
func exprJSON(b *ast.Builder, fs *source.FileSet, id ast.ExprID) ASTNodeOutput {
	if !id.IsValid() {
		return ASTNodeOutput{Type: "Expr", Kind: "<none>"}
	}
	expr := b.Exprs.Get(id)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "<invalid>"}
	}

	node := ASTNodeOutput{
		Type: "Expr",
		Kind: exprKindName(expr.Kind),
		Span: expr.Span,
		Text: formatExprInline(b, fs, id),
	}

	addChild := func(child ast.ExprID) {
		if child.IsValid() {
			node.Children = append(node.Children, exprJSON(b, fs, child))
		}
	}
	addChildren := func(ids []ast.ExprID) {
		for _, child := range ids {
			addChild(child)
		}
	}
	field := func(key string, value any) {
		if node.Fields == nil {
			node.Fields = make(map[string]any)
		}
		node.Fields[key] = value
	}

	switch expr.Kind {
	case ast.ExprName:
		if data, ok := b.Exprs.Name(id); ok {
			field("name", b.Strings.MustLookup(data.Ident))
		}
	case ast.ExprNum:
		if data, ok := b.Exprs.Num(id); ok {
			field("value", b.Strings.MustLookup(data.Text))
		}
	case ast.ExprStr:
		if data, ok := b.Exprs.Str(id); ok {
			field("parts", len(data.Parts))
		}
	case ast.ExprConst:
		if data, ok := b.Exprs.Const(id); ok {
			field("value", data.Kind.String())
		}
	case ast.ExprGroup:
		if data, ok := b.Exprs.Group(id); ok {
			addChild(data.Inner)
		}
	case ast.ExprTuple:
		if data, ok := b.Exprs.Tuple(id); ok {
			addChildren(data.Elements)
		}
	case ast.ExprList:
		if data, ok := b.Exprs.List(id); ok {
			addChildren(data.Elements)
		}
	case ast.ExprSet:
		if data, ok := b.Exprs.Set(id); ok {
			addChildren(data.Elements)
		}
	case ast.ExprDict:
		if data, ok := b.Exprs.Dict(id); ok {
			for _, entry := range data.Entries {
				addChild(entry.Key)
				addChild(entry.Value)
			}
		}
	case ast.ExprComp:
		if data, ok := b.Exprs.Comp(id); ok {
			field("flavor", compKindName(data.Kind))
			addChild(data.Key)
			addChild(data.Value)
			for _, clause := range data.Clauses {
				addChild(clause.Target)
				addChild(clause.Iter)
				addChildren(clause.Ifs)
			}
		}
	case ast.ExprStarred:
		if data, ok := b.Exprs.Starred(id); ok {
			addChild(data.Value)
		}
	case ast.ExprUnary:
		if data, ok := b.Exprs.Unary(id); ok {
			field("op", data.Op.String())
			addChild(data.Operand)
		}
	case ast.ExprBinary:
		if data, ok := b.Exprs.Binary(id); ok {
			field("op", data.Op.String())
			addChild(data.Left)
			addChild(data.Right)
		}
	case ast.ExprBoolOp:
		if data, ok := b.Exprs.BoolOp(id); ok {
			field("op", data.Op.String())
			addChildren(data.Values)
		}
	case ast.ExprCompare:
		if data, ok := b.Exprs.Compare(id); ok {
			ops := make([]string, len(data.Ops))
			for i, op := range data.Ops {
				ops[i] = op.String()
			}
			field("ops", ops)
			addChild(data.Left)
			addChildren(data.Comparators)
		}
	case ast.ExprLambda:
		if data, ok := b.Exprs.Lambda(id); ok {
			field("params", formatParams(b, fs, data.Params))
			addChild(data.Body)
		}
	case ast.ExprIfElse:
		if data, ok := b.Exprs.IfElse(id); ok {
			addChild(data.Body)
			addChild(data.Cond)
			addChild(data.OrElse)
		}
	case ast.ExprCall:
		if data, ok := b.Exprs.Call(id); ok {
			addChild(data.Func)
			for _, arg := range data.Args {
				addChild(arg.Value)
			}
		}
	case ast.ExprAttr:
		if data, ok := b.Exprs.Attr(id); ok {
			field("attr", b.Strings.MustLookup(data.Attr))
			addChild(data.Value)
		}
	case ast.ExprSubscript:
		if data, ok := b.Exprs.Subscript(id); ok {
			addChild(data.Value)
			addChild(data.Index)
		}
	case ast.ExprSlice:
		if data, ok := b.Exprs.Slice(id); ok {
			addChild(data.Lower)
			addChild(data.Upper)
			addChild(data.Step)
		}
	case ast.ExprAwait:
		if data, ok := b.Exprs.Await(id); ok {
			addChild(data.Value)
		}
	case ast.ExprYield:
		if data, ok := b.Exprs.Yield(id); ok {
			field("from", data.IsFrom)
			addChild(data.Value)
		}
	case ast.ExprNamed:
		if data, ok := b.Exprs.Named(id); ok {
			addChild(data.Target)
			addChild(data.Value)
		}
	case ast.ExprAs:
		if data, ok := b.Exprs.As(id); ok {
			field("name", b.Strings.MustLookup(data.Name))
			addChild(data.Value)
		}
	}

	return node
}
