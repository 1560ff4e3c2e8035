package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextToken(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src   string
		token *token
	}{
		{"foobar", &token{Kind: tokenIdentifier, StringVal: "foobar", Start: 0, End: 6}},
		{"  _foo_bar42 ", &token{Kind: tokenIdentifier, StringVal: "_foo_bar42", Start: 2, End: 12}},
		{"<", &token{Kind: tokenLt, StringVal: "<", Start: 0, End: 1}},
		{" >", &token{Kind: tokenGt, StringVal: ">", Start: 1, End: 2}},
		{".", &token{Kind: tokenPeriod, StringVal: ".", Start: 0, End: 1}},
		{",", &token{Kind: tokenComma, StringVal: ",", Start: 0, End: 1}},
		{"[", &token{Kind: tokenOpenBracket, StringVal: "[", Start: 0, End: 1}},
		{"]", &token{Kind: tokenCloseBracket, StringVal: "]", Start: 0, End: 1}},
		{"(", &token{Kind: tokenOpenParen, StringVal: "(", Start: 0, End: 1}},
		{")", &token{Kind: tokenCloseParen, StringVal: ")", Start: 0, End: 1}},
		{"9lives", &token{Kind: tokenOther, StringVal: "9", Start: 0, End: 1}},
		{"é", &token{Kind: tokenIdentifier, StringVal: "é", Start: 0, End: 2}},
		{"   ", &token{Kind: tokenEOS, Start: 3, End: 3}},
	}

	for _, test := range tests {
		assert.Equal(t, test.token, newLexer(test.src).Next(), test.src)
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()
	tokens := tokenize("series MyLib.map<string, float[]>")
	kinds := []tokenType{}
	for _, tk := range tokens {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []tokenType{
		tokenIdentifier, tokenIdentifier, tokenPeriod, tokenIdentifier, tokenLt,
		tokenIdentifier, tokenComma, tokenIdentifier, tokenOpenBracket, tokenCloseBracket,
		tokenGt, tokenEOS,
	}, kinds)
}

func TestClosing(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src      string
		expected int
	}{
		{"<a>", 2},
		{"<a[]>", 4},
		{"<f(a)>", 5},
		{"<a]", -1},
		{"<a)", -1},
		{"<f(a>)>", -1},
		{"<a", -1},
	}
	for _, test := range tests {
		p := &parser{src: test.src, tokens: tokenize(test.src)}
		assert.Equal(t, test.expected, p.closing(0, len(p.tokens)-1), test.src)
	}
}
