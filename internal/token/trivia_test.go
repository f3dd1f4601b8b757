package token_test

import (
	"testing"

	"fstrify/internal/source"
	"fstrify/internal/token"
)

func TestCommentTriviaShape(t *testing.T) {
	tv := token.Trivia{
		Kind: token.TriviaComment,
		Span: source.Span{Start: 0, End: 14},
		Text: "# legacy style",
	}
	tok := token.Token{
		Kind:    token.Ident,
		Span:    source.Span{Start: 15, End: 23},
		Text:    "greeting",
		Leading: []token.Trivia{tv},
	}
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaComment {
		t.Fatalf("comment trivia must be present and structured")
	}
	if tok.Leading[0].Text != "# legacy style" {
		t.Fatalf("trivia text must be the exact source slice")
	}
}

func TestTriviaKindString(t *testing.T) {
	cases := map[token.TriviaKind]string{
		token.TriviaSpace:        "Space",
		token.TriviaNewline:      "Newline",
		token.TriviaComment:      "Comment",
		token.TriviaContinuation: "Continuation",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("TriviaKind.String() = %q, want %q", got, want)
		}
	}
}
