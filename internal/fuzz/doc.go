// Package fuzztests houses Go fuzz harnesses that exercise the fstrify
// pipeline (source -> lexer -> parser -> rewrite). Its goal is to smoke test
// robustness and guard against panics or allocator explosions on arbitrary
// inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер/переписчик.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/ast, internal/rewrite, internal/testkit.

package fuzztests
