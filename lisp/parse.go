package lisp

import (
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseFile slurps in the entire file and returns its expressions.
func ParseFile(filename string) ([]SExpression, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Multiparse(string(b))
}

// Multiparse reads every expression in program.
func Multiparse(program string) ([]SExpression, error) {
	tokens, err := tokenize(program)
	if err != nil {
		return nil, err
	}
	list := []SExpression{}
	for len(tokens) > 0 {
		e, rest, err := readFromTokens(tokens)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		tokens = rest
	}
	return list, nil
}

type token struct {
	text string
	// str marks string literals, so that "(" is not a paren
	str bool
}

var readerMacros = map[string]*Symbol{
	"'":  symQuote,
	"`":  symQuasiquote,
	",":  symUnquote,
	",@": symUnquoteSplicing,
}

func tokenize(program string) ([]token, error) {
	tokens := []token{}
	for {
		t, rest, ok, err := nextToken(program)
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, t)
		program = rest
	}
}

// skipSpace drops whitespace, ; line comments and #| |# block comments.
func skipSpace(program string) (string, error) {
	for {
		program = strings.TrimLeftFunc(program, unicode.IsSpace)
		switch {
		case strings.HasPrefix(program, ";"):
			_, rest, found := strings.Cut(program, "\n")
			if !found {
				return "", nil
			}
			program = rest
		case strings.HasPrefix(program, "#|"):
			_, rest, found := strings.Cut(program, "|#")
			if !found {
				return "", incompletef("missing matching comment end |#")
			}
			program = rest
		default:
			return program, nil
		}
	}
}

func nextToken(program string) (token, string, bool, error) {
	program, err := skipSpace(program)
	if err != nil {
		return token{}, "", false, err
	}
	if program == "" {
		return token{}, "", false, nil
	}
	r, size := utf8.DecodeRuneInString(program)
	switch {
	case r == '"':
		return readStringLiteral(program[size:])
	case r == ',' && strings.HasPrefix(program[size:], "@"):
		return token{text: ",@"}, program[size+1:], true, nil
	case strings.ContainsRune("()[]'`,", r):
		return token{text: string(r)}, program[size:], true, nil
	}
	var tok []byte
	for len(program) > 0 {
		r, size := utf8.DecodeRuneInString(program)
		if unicode.IsSpace(r) || strings.ContainsRune("()[]'`,\";", r) {
			break
		}
		program = program[size:]
		tok = utf8.AppendRune(tok, r)
	}
	return token{text: string(tok)}, program, true, nil
}

// readStringLiteral reads up to the closing quote; the opening one is consumed.
func readStringLiteral(program string) (token, string, bool, error) {
	var s []byte
	for len(program) > 0 {
		r, size := utf8.DecodeRuneInString(program)
		program = program[size:]
		if r == '"' {
			return token{text: string(s), str: true}, program, true, nil
		}
		if r == '\\' && len(program) > 0 {
			next, n := utf8.DecodeRuneInString(program)
			program = program[n:]
			switch next {
			case 'n':
				r = '\n'
			case 't':
				r = '\t'
			default:
				r = next
			}
		}
		s = utf8.AppendRune(s, r)
	}
	return token{}, "", false, incompletef(`unclosed string quote '"'`)
}

func readFromTokens(tokens []token) (SExpression, []token, error) {
	if len(tokens) == 0 {
		return nil, nil, incompletef("unexpected end of input")
	}
	t := tokens[0]
	tokens = tokens[1:]
	if t.str {
		return String(t.text), tokens, nil
	}
	switch t.text {
	case "(", "[":
		return readList(tokens, t.text)
	case ")", "]", ".":
		return nil, nil, syntaxErrorf("unexpected '%s'", t.text)
	case "'", "`", ",", ",@":
		e, rest, err := readFromTokens(tokens)
		if err != nil {
			return nil, nil, err
		}
		return NewList(readerMacros[t.text], e), rest, nil
	}
	return atom(t.text), tokens, nil
}

// readList reads the elements after an opening bracket, including an
// optional dotted tail.
func readList(tokens []token, open string) (SExpression, []token, error) {
	closer := ")"
	if open == "[" {
		closer = "]"
	}
	list := []SExpression{}
	for {
		if len(tokens) == 0 {
			return nil, nil, incompletef("missing '%s'", closer)
		}
		next := tokens[0]
		if !next.str && (next.text == ")" || next.text == "]") {
			if next.text != closer {
				return nil, nil, syntaxErrorf("unexpected '%s', expected '%s'", next.text, closer)
			}
			return FromSlice(list, Empty), tokens[1:], nil
		}
		if !next.str && next.text == "." {
			if len(list) == 0 {
				return nil, nil, syntaxErrorf("unexpected '.' at the start of a list")
			}
			tail, rest, err := readFromTokens(tokens[1:])
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 {
				return nil, nil, incompletef("missing '%s'", closer)
			}
			if rest[0].str || rest[0].text != closer {
				return nil, nil, syntaxErrorf("expected '%s' after dotted tail %s", closer, tail)
			}
			return FromSlice(list, tail), rest[1:], nil
		}
		e, rest, err := readFromTokens(tokens)
		if err != nil {
			return nil, nil, err
		}
		list = append(list, e)
		tokens = rest
	}
}

func atom(token string) SExpression {
	if n, ok := parseNumber(token); ok {
		return Number(n)
	}
	return NewSymbol(token)
}

// parseNumber accepts decimal literals only: no inf, nan or hex floats.
func parseNumber(s string) (float64, bool) {
	if !looksNumeric(s) || strings.ContainsAny(s, "xX") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

// looksNumeric keeps symbols such as inf, nan, + and - away from ParseFloat.
func looksNumeric(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
	}
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}
