package token

import "fstrify/internal/source"

// TriviaKind classifies non-token source text carried on the next token.
type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces or tabs inside a logical line.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a physical newline that did not end a logical line:
	// blank lines, newlines inside open brackets.
	TriviaNewline
	// TriviaComment is a '#' comment up to (not including) the newline.
	TriviaComment
	// TriviaContinuation is a backslash-newline pair joining physical lines.
	TriviaContinuation
)

var triviaNames = [...]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaComment:      "Comment",
	TriviaContinuation: "Continuation",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "TriviaKind(?)"
}

// Trivia is one piece of non-token text. Text is the exact source slice.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
