package parse

type (
	tokenType string
	// token spans src[Start:End] of the type string it was lexed from.
	token struct {
		Kind      tokenType
		StringVal string
		Start     int
		End       int
	}
)

const (
	tokenPeriod       tokenType = "."
	tokenComma        tokenType = ","
	tokenLt           tokenType = "<"
	tokenGt           tokenType = ">"
	tokenOpenBracket  tokenType = "["
	tokenCloseBracket tokenType = "]"
	tokenOpenParen    tokenType = "("
	tokenCloseParen   tokenType = ")"
	tokenIdentifier   tokenType = "identifier"
	tokenOther        tokenType = "other"
	tokenEOS          tokenType = "<EOS>"
)

var punctuation = map[rune]tokenType{
	'.': tokenPeriod,
	',': tokenComma,
	'<': tokenLt,
	'>': tokenGt,
	'[': tokenOpenBracket,
	']': tokenCloseBracket,
	'(': tokenOpenParen,
	')': tokenCloseParen,
}

// closers pairs every opening bracket with the token that closes it.
var closers = map[tokenType]tokenType{
	tokenLt:          tokenGt,
	tokenOpenBracket: tokenCloseBracket,
	tokenOpenParen:   tokenCloseParen,
}

func (tk *token) opens() bool {
	return tk.Kind == tokenLt || tk.Kind == tokenOpenBracket || tk.Kind == tokenOpenParen
}

func (tk *token) closes() bool {
	return tk.Kind == tokenGt || tk.Kind == tokenCloseBracket || tk.Kind == tokenCloseParen
}
