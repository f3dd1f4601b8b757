package rewrite

import (
	"fmt"
	"strings"

	"fstrify/internal/ast"
	"fstrify/internal/diag"
	"fstrify/internal/pyfmt"
	"fstrify/internal/pystr"
	"fstrify/internal/source"
)

// analyzeSite решает судьбу одного сайта: собирает литерал, спецификаторы
// и аргументы, применяет политику конвертации и строит замену.
func analyzeSite(fs *source.FileSet, b *ast.Builder, file *source.File, span source.Span, bin *ast.ExprBinaryData) Site {
	litSpan := b.Exprs.Get(bin.Left).Span
	litStart, litEnd := fs.Resolve(litSpan)
	_, exprEnd := fs.Resolve(span)
	site := Site{Span: span, LitSpan: litSpan, Line: litStart.Line, EndLine: exprEnd.Line}

	skip := func(code diag.Code, reason string) Site {
		site.Skip = code
		site.Reason = reason
		return site
	}

	strData, ok := b.Exprs.Str(bin.Left)
	if !ok || len(strData.Parts) != 1 {
		return skip(diag.RwrSkipLiteral, "implicitly concatenated literal parts")
	}
	if litStart.Line != litEnd.Line {
		return skip(diag.RwrSkipMultiline, "string literal spans multiple lines")
	}

	lit, ok := pystr.Classify(litSpan.Text(file.Content))
	if !ok {
		return skip(diag.RwrSkipLiteral, "unrecognized string literal")
	}
	if lit.Bytes {
		return skip(diag.RwrSkipLiteral, "bytes literal")
	}
	if lit.FString {
		return skip(diag.RwrSkipLiteral, "already an f-string")
	}
	cooked, ok := pystr.Cook(lit)
	if !ok {
		return skip(diag.RwrSkipLiteral, "escape sequence cannot be decoded statically")
	}

	segs := pyfmt.Scan(cooked)
	for _, seg := range segs {
		if seg.Spec == nil {
			continue
		}
		if code, reason := checkSpec(seg.Spec); code != 0 {
			return skip(code, reason)
		}
	}

	args, code, reason := collectArgs(b, bin.Right)
	if code != 0 {
		return skip(code, reason)
	}
	if want := pyfmt.ArgCount(segs); len(args) != want {
		return skip(diag.RwrSkipArity, fmt.Sprintf("%d specifiers, %d arguments", want, len(args)))
	}

	texts := make([]string, len(args))
	for i, argID := range args {
		argSpan := b.Exprs.Get(argID).Span
		argStart, argEnd := fs.Resolve(argSpan)
		if argStart.Line != argEnd.Line {
			return skip(diag.RwrSkipMultiline, "argument spans multiple lines")
		}
		text := argSpan.Text(file.Content)
		if code, reason := checkArgText(text); code != 0 {
			return skip(code, reason)
		}
		texts[i] = text
	}

	site.Replacement = buildFString(segs, texts)
	return site
}

// checkSpec применяет политику к одному спецификатору; ноль — конвертируем.
func checkSpec(sp *pyfmt.Spec) (diag.Code, string) {
	if sp.HasKey {
		return diag.RwrSkipMappingKey, fmt.Sprintf("mapping key %q", sp.Key)
	}
	if sp.Flags != "" {
		return diag.RwrSkipFlags, fmt.Sprintf("conversion flags %q", sp.Flags)
	}
	if sp.Width == "*" || sp.Precision == "*" {
		return diag.RwrSkipStarWidth, "width or precision supplied as an argument"
	}
	switch sp.Verb {
	case 's', 'r':
		// %-форматирование сначала приводит к строке, потом выравнивает;
		// формат-спека в f-строке выравнивала бы иначе
		if sp.Width != "" || sp.HasPrecision {
			return diag.RwrSkipBadSpec, fmt.Sprintf("width or precision on %%%c", sp.Verb)
		}
	case 'd':
		if sp.HasPrecision {
			return diag.RwrSkipBadSpec, "precision on %d has no f-string equivalent"
		}
	case 'e', 'E', 'f', 'F', 'g', 'G':
		// ширина и точность переносятся в формат-спеку как есть
	case '%':
		return diag.RwrSkipBadSpec, "modifiers on a literal %"
	default:
		return diag.RwrSkipVerb, fmt.Sprintf("conversion type %%%c", sp.Verb)
	}
	return 0, ""
}

// collectArgs разбирает правый операнд: кортеж поставляет элементы по
// порядку, любое другое выражение — единственный аргумент. Скобки вокруг
// одиночного аргумента снимаются, кроме yield — ему они нужны и внутри
// f-строки.
func collectArgs(b *ast.Builder, right ast.ExprID) ([]ast.ExprID, diag.Code, string) {
	target := unwrapGroups(b, right)
	tuple, ok := b.Exprs.Tuple(target)
	if !ok {
		return []ast.ExprID{target}, 0, ""
	}
	args := make([]ast.ExprID, 0, len(tuple.Elements))
	for _, element := range tuple.Elements {
		if expr := b.Exprs.Get(element); expr != nil && expr.Kind == ast.ExprStarred {
			return nil, diag.RwrSkipStarredArg, "starred element makes the arity unknown"
		}
		args = append(args, element)
	}
	return args, 0, ""
}

func unwrapGroups(b *ast.Builder, id ast.ExprID) ast.ExprID {
	for {
		group, ok := b.Exprs.Group(id)
		if !ok {
			return id
		}
		if inner := b.Exprs.Get(group.Inner); inner != nil && inner.Kind == ast.ExprYield {
			return id
		}
		id = group.Inner
	}
}

// checkArgText проверяет, что текст аргумента можно вложить в одинарные
// кавычки f-строки: кавычка или обратный слеш сломали бы литерал, '#'
// начал бы комментарий, двоеточие вне скобок — формат-спеку.
func checkArgText(text string) (diag.Code, string) {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			return diag.RwrSkipArgText, "backslash in argument"
		case '\'':
			return diag.RwrSkipArgText, "single quote in argument"
		case '#':
			return diag.RwrSkipArgText, "'#' in argument"
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return diag.RwrSkipArgText, "':' outside brackets in argument"
			}
		}
	}
	return 0, ""
}

// buildFString собирает f-литерал: литеральные куски перекодируются под
// одинарные кавычки с удвоением фигурных скобок, спецификаторы становятся
// полями подстановки.
func buildFString(segs []pyfmt.Segment, args []string) string {
	var out strings.Builder
	out.WriteString("f'")
	next := 0
	for _, seg := range segs {
		if seg.Spec == nil {
			out.WriteString(escapeLiteral(seg.Lit))
			continue
		}
		arg := args[next]
		next++
		out.WriteByte('{')
		if strings.HasPrefix(arg, "{") {
			// '{{' f-строка прочла бы как экранированную скобку
			out.WriteByte(' ')
		}
		out.WriteString(arg)
		out.WriteString(fieldSuffix(seg.Spec))
		out.WriteByte('}')
	}
	out.WriteByte('\'')
	return out.String()
}

// fieldSuffix возвращает хвост поля подстановки для спецификатора.
func fieldSuffix(sp *pyfmt.Spec) string {
	switch sp.Verb {
	case 'r':
		return "!r"
	case 's':
		return ""
	case 'd':
		if sp.Width != "" {
			return ":" + sp.Width + "d"
		}
		return ""
	default:
		// e/f/g-семейство: рендеринг без формат-спеки не совпал бы
		var b strings.Builder
		b.WriteByte(':')
		b.WriteString(sp.Width)
		if sp.HasPrecision {
			b.WriteByte('.')
			b.WriteString(sp.Precision)
		}
		b.WriteByte(sp.Verb)
		return b.String()
	}
}

func escapeLiteral(s string) string {
	escaped := pystr.Encode(s)
	escaped = strings.ReplaceAll(escaped, "{", "{{")
	return strings.ReplaceAll(escaped, "}", "}}")
}
