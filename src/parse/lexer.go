package parse

import (
	"unicode"
	"unicode/utf8"
)

// lexer splits a type string into tokens. It never fails, anything that is not
// an identifier or a known punctuation rune becomes a tokenOther so that the
// parser can still hand back the original text verbatim.
type lexer struct {
	src    string
	offset int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (lex *lexer) peek() rune {
	if lex.offset >= len(lex.src) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(lex.src[lex.offset:])
	return ch
}

func (lex *lexer) next() rune {
	if lex.offset >= len(lex.src) {
		return 0
	}
	ch, size := utf8.DecodeRuneInString(lex.src[lex.offset:])
	lex.offset += size
	return ch
}

func (lex *lexer) skipWhitespace() {
	for lex.offset < len(lex.src) && unicode.IsSpace(lex.peek()) {
		lex.next()
	}
}

func (lex *lexer) Next() *token {
	lex.skipWhitespace()
	start := lex.offset
	if start >= len(lex.src) {
		return &token{Kind: tokenEOS, Start: start, End: start}
	}
	ch := lex.next()
	if kind, ok := punctuation[ch]; ok {
		return &token{Kind: kind, StringVal: string(ch), Start: start, End: lex.offset}
	} else if isIdentStart(ch) {
		return lex.parseIdentifier(start)
	}
	return &token{Kind: tokenOther, StringVal: string(ch), Start: start, End: lex.offset}
}

func (lex *lexer) parseIdentifier(start int) *token {
	for isIdentPart(lex.peek()) && lex.offset < len(lex.src) {
		lex.next()
	}
	return &token{
		Kind:      tokenIdentifier,
		StringVal: lex.src[start:lex.offset],
		Start:     start,
		End:       lex.offset,
	}
}

// tokenize lexes the whole string, the final token is always tokenEOS.
func tokenize(src string) []*token {
	lex := newLexer(src)
	tokens := []*token{}
	for {
		tk := lex.Next()
		tokens = append(tokens, tk)
		if tk.Kind == tokenEOS {
			return tokens
		}
	}
}

func isIdentStart(ch rune) bool { return unicode.IsLetter(ch) || ch == '_' }
func isIdentPart(ch rune) bool  { return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' }
