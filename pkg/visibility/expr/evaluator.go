// Package expr implements the built-in condition language for field
// visibility rules. The grammar is small on purpose:
//
//	condition := or
//	or        := and { "||" and }
//	and       := unary { "&&" unary }
//	unary     := "!" unary | primary
//	primary   := "(" or ")" | reference [ ("==" | "!=") literal ]
//	literal   := quoted string | number | true | false | null | bare word
//
// A bare reference is truthy when its value is present and non-zero. A
// reference is a dotted path into Context.Values; the "extras." prefix
// switches the lookup to Context.Extras. Comparisons coerce the looked-up
// value to the literal's type, so "count == 3" matches the string "3" as
// well as the number.
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-viewdef/pkg/visibility"
)

const extrasPrefix = "extras."

// Condition is a parsed visibility rule, reusable across evaluations.
type Condition struct {
	root node
}

// Parse compiles a condition string. An empty or blank condition parses to
// one that is always true.
func Parse(condition string) (*Condition, error) {
	text := strings.TrimSpace(condition)
	if text == "" {
		return &Condition{root: alwaysTrue}, nil
	}

	p := &parser{scan: scanner{src: []rune(text)}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, fmt.Errorf("expr: unexpected %q after condition", p.tok.text)
	}
	return &Condition{root: root}, nil
}

// Eval evaluates the condition against ctx.
func (c *Condition) Eval(ctx visibility.Context) (bool, error) {
	if c == nil || c.root == nil {
		return true, nil
	}
	return c.root(ctx)
}

// Evaluator satisfies visibility.Evaluator by parsing conditions on demand.
// The zero value is ready to use.
type Evaluator struct{}

// New returns the built-in condition evaluator.
func New() *Evaluator { return &Evaluator{} }

// Eval parses and evaluates one condition. Parse failures carry the field
// path so diagnosable messages reach the caller.
func (e *Evaluator) Eval(fieldPath, condition string, ctx visibility.Context) (bool, error) {
	parsed, err := Parse(condition)
	if err != nil {
		if fieldPath != "" {
			return false, fmt.Errorf("field %q: %w", fieldPath, err)
		}
		return false, err
	}
	return parsed.Eval(ctx)
}

// node evaluates one subtree of a parsed condition.
type node func(visibility.Context) (bool, error)

func alwaysTrue(visibility.Context) (bool, error) { return true, nil }

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenWord
	tokenString
	tokenEq
	tokenNeq
	tokenAnd
	tokenOr
	tokenNot
	tokenOpen
	tokenClose
)

type token struct {
	kind tokenKind
	text string
}

// scanner produces tokens one at a time. Words cover references, numbers
// and keywords; the parser decides which they are from position.
type scanner struct {
	src []rune
	pos int
}

func (s *scanner) next() (token, error) {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return token{kind: tokenEOF}, nil
	}

	switch r := s.src[s.pos]; r {
	case '(':
		s.pos++
		return token{kind: tokenOpen, text: "("}, nil
	case ')':
		s.pos++
		return token{kind: tokenClose, text: ")"}, nil
	case '=':
		if !s.pair('=') {
			return token{}, errors.New(`expr: single "=" is not an operator, use "=="`)
		}
		return token{kind: tokenEq, text: "=="}, nil
	case '&':
		if !s.pair('&') {
			return token{}, errors.New(`expr: single "&" is not an operator, use "&&"`)
		}
		return token{kind: tokenAnd, text: "&&"}, nil
	case '|':
		if !s.pair('|') {
			return token{}, errors.New(`expr: single "|" is not an operator, use "||"`)
		}
		return token{kind: tokenOr, text: "||"}, nil
	case '!':
		s.pos++
		if s.pos < len(s.src) && s.src[s.pos] == '=' {
			s.pos++
			return token{kind: tokenNeq, text: "!="}, nil
		}
		return token{kind: tokenNot, text: "!"}, nil
	case '"', '\'':
		return s.scanString(r)
	default:
		return s.scanWord()
	}
}

// pair consumes a two-rune operator whose runes are identical.
func (s *scanner) pair(r rune) bool {
	if s.pos+1 >= len(s.src) || s.src[s.pos+1] != r {
		s.pos++
		return false
	}
	s.pos += 2
	return true
}

func (s *scanner) scanString(quote rune) (token, error) {
	var b strings.Builder
	escaped := false
	for i := s.pos + 1; i < len(s.src); i++ {
		r := s.src[i]
		switch {
		case escaped:
			b.WriteRune(unescape(r))
			escaped = false
		case r == '\\':
			escaped = true
		case r == quote:
			s.pos = i + 1
			return token{kind: tokenString, text: b.String()}, nil
		default:
			b.WriteRune(r)
		}
	}
	return token{}, errors.New("expr: unterminated string literal")
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return r
	}
}

func (s *scanner) scanWord() (token, error) {
	start := s.pos
	for s.pos < len(s.src) && !isDelimiter(s.src[s.pos]) {
		s.pos++
	}
	return token{kind: tokenWord, text: string(s.src[start:s.pos])}, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDelimiter(r rune) bool {
	return isSpace(r) || r == '(' || r == ')' || r == '=' || r == '!' || r == '&' || r == '|' || r == '"' || r == '\''
}

// parser holds one token of lookahead over the scanner.
type parser struct {
	scan scanner
	tok  token
}

func (p *parser) advance() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) accept(kind tokenKind) (bool, error) {
	if p.tok.kind != kind {
		return false, nil
	}
	return true, p.advance()
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		ok, err := p.accept(tokenOr)
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs, rhs := left, right
		left = func(ctx visibility.Context) (bool, error) {
			v, err := lhs(ctx)
			if err != nil || v {
				return v, err
			}
			return rhs(ctx)
		}
	}
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		ok, err := p.accept(tokenAnd)
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs, rhs := left, right
		left = func(ctx visibility.Context) (bool, error) {
			v, err := lhs(ctx)
			if err != nil || !v {
				return v, err
			}
			return rhs(ctx)
		}
	}
}

func (p *parser) parseUnary() (node, error) {
	ok, err := p.accept(tokenNot)
	if err != nil {
		return nil, err
	}
	if ok {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return func(ctx visibility.Context) (bool, error) {
			v, err := inner(ctx)
			return !v, err
		}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	ok, err := p.accept(tokenOpen)
	if err != nil {
		return nil, err
	}
	if ok {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closed, err := p.accept(tokenClose)
		if err != nil {
			return nil, err
		}
		if !closed {
			return nil, errors.New(`expr: missing ")"`)
		}
		return inner, nil
	}

	if p.tok.kind != tokenWord {
		if p.tok.kind == tokenEOF {
			return nil, errors.New("expr: condition ends where a reference is expected")
		}
		return nil, fmt.Errorf("expr: expected a reference, found %q", p.tok.text)
	}
	ref := p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch p.tok.kind {
	case tokenEq, tokenNeq:
		negate := p.tok.kind == tokenNeq
		if err := p.advance(); err != nil {
			return nil, err
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return compareNode(ref, lit, negate), nil
	default:
		return func(ctx visibility.Context) (bool, error) {
			value, ok := lookup(ctx, ref)
			return ok && truthy(value), nil
		}, nil
	}
}

// literal is the right-hand side of a comparison.
type literal struct {
	isNull   bool
	isBool   bool
	isNumber bool
	boolVal  bool
	numVal   float64
	strVal   string
}

func (p *parser) parseLiteral() (literal, error) {
	tok := p.tok
	switch tok.kind {
	case tokenString:
		return literal{strVal: tok.text}, p.advance()
	case tokenWord:
		if err := p.advance(); err != nil {
			return literal{}, err
		}
		switch strings.ToLower(tok.text) {
		case "true":
			return literal{isBool: true, boolVal: true}, nil
		case "false":
			return literal{isBool: true}, nil
		case "null", "nil":
			return literal{isNull: true}, nil
		}
		if n, err := strconv.ParseFloat(tok.text, 64); err == nil {
			return literal{isNumber: true, numVal: n}, nil
		}
		// Bare words compare as strings, which keeps unquoted
		// conditions like status == active usable.
		return literal{strVal: tok.text}, nil
	case tokenEOF:
		return literal{}, errors.New("expr: comparison is missing its right-hand side")
	default:
		return literal{}, fmt.Errorf("expr: expected a literal, found %q", tok.text)
	}
}

func compareNode(ref string, lit literal, negate bool) node {
	return func(ctx visibility.Context) (bool, error) {
		value, present := lookup(ctx, ref)
		equal := lit.matches(value, present)
		if negate {
			return !equal, nil
		}
		return equal, nil
	}
}

func (l literal) matches(value any, present bool) bool {
	switch {
	case l.isNull:
		return !present || value == nil
	case l.isBool:
		return asBool(value) == l.boolVal
	case l.isNumber:
		n, ok := asNumber(value)
		return ok && n == l.numVal
	default:
		return present && asString(value) == l.strVal
	}
}

// lookup resolves a dotted reference. The whole reference is tried as one
// key first, so flat value maps with dotted keys keep working.
func lookup(ctx visibility.Context, ref string) (any, bool) {
	values := ctx.Values
	if rest, ok := strings.CutPrefix(ref, extrasPrefix); ok {
		values = ctx.Extras
		ref = rest
	}
	if len(values) == 0 || ref == "" {
		return nil, false
	}
	if value, ok := values[ref]; ok {
		return value, true
	}

	var current any = values
	for _, part := range strings.Split(ref, ".") {
		step, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = step[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func asBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return strings.TrimSpace(v) != ""
	default:
		return truthy(value)
	}
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
