package minify

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	cssparse "github.com/tdewolff/parse/v2/css"
	jsparse "github.com/tdewolff/parse/v2/js"
)

// Token-level compaction for dialects the tdewolff parsers reject: typed
// scripts and preprocessor stylesheets. Only comments and insignificant
// whitespace are removed; every other token is copied verbatim.

// regexpKeywords are the keywords after which a slash starts a regular
// expression literal rather than a division.
var regexpKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

type scriptCompactor struct {
	b       strings.Builder
	prev    string // Last emitted token.
	space   bool   // Whitespace or a comment was dropped since prev.
	newline bool   // A line break was dropped since prev.
}

// compactScript removes comments and insignificant whitespace from a script
// in any ECMAScript dialect, type annotations included. Line breaks that may
// end a statement are kept as a single newline.
func compactScript(src string) (string, error) {
	var s scriptCompactor
	rest := src
	for {
		n, err := s.lex(rest)
		if err == nil {
			break
		}
		// Decorators are not ECMAScript tokens; copy the sigil and resume.
		if n < len(rest) && rest[n] == '@' {
			s.emit("@")
			rest = rest[n+1:]
			continue
		}
		return "", err
	}
	return strings.TrimSpace(s.b.String()), nil
}

// lex consumes src and returns the number of bytes it got through.
func (s *scriptCompactor) lex(src string) (int, error) {
	l := jsparse.NewLexer(parse.NewInputString(src))
	offset := 0
	for {
		tt, data := l.Next()
		switch tt {
		case jsparse.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return offset, err
			}
			return offset, nil
		case jsparse.WhitespaceToken, jsparse.CommentToken:
			s.space = true
		case jsparse.LineTerminatorToken, jsparse.CommentLineTerminatorToken:
			s.space, s.newline = true, true
		case jsparse.DivToken, jsparse.DivEqToken:
			if s.regexpAllowed() {
				if tt, data = l.RegExp(); tt == jsparse.ErrorToken {
					err := l.Err()
					if err == nil || errors.Is(err, io.EOF) {
						err = io.ErrUnexpectedEOF
					}
					return offset, err
				}
			}
			s.emit(string(data))
		default:
			s.emit(string(data))
		}
		offset += len(data)
	}
}

func (s *scriptCompactor) emit(tok string) {
	if s.prev != "" && s.space {
		switch {
		case s.newline && endsStatement(s.prev) && startsStatement(tok):
			s.b.WriteByte('\n')
		case needsSpace(s.prev, tok):
			s.b.WriteByte(' ')
		}
	}
	s.b.WriteString(tok)
	s.prev, s.space, s.newline = tok, false, false
}

func (s *scriptCompactor) regexpAllowed() bool {
	if s.prev == "" || regexpKeywords[s.prev] {
		return true
	}
	if s.prev == "++" || s.prev == "--" {
		return false
	}
	c := s.prev[len(s.prev)-1]
	return !isIdentByte(c) && !strings.ContainsRune(")]'\"`", rune(c))
}

// needsSpace reports whether prev and next would fuse into different tokens
// if written back to back.
func needsSpace(prev, next string) bool {
	a, b := prev[len(prev)-1], next[0]
	switch {
	case isIdentByte(a) && isIdentByte(b):
		return true
	case (a == '+' || a == '-') && a == b:
		return true
	case a == '/' && (b == '/' || b == '*'):
		return true
	case a == '<' && b == '!':
		return true
	case a >= '0' && a <= '9' && b == '.':
		return true
	}
	return false
}

func endsStatement(tok string) bool {
	if tok == "++" || tok == "--" {
		return true
	}
	c := tok[len(tok)-1]
	return isIdentByte(c) || strings.ContainsRune(")]}'\"`", rune(c))
}

func startsStatement(tok string) bool {
	c := tok[0]
	return isIdentByte(c) || strings.ContainsRune("([{'\"`+-!~/#@", rune(c))
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '\\' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// compactStylesheet removes comments, including // line comments, and
// collapses whitespace in a preprocessor stylesheet. Whitespace is dropped
// around braces, semicolons and commas and after colons; elsewhere it is
// kept as one space since it may be a descendant combinator.
func compactStylesheet(src string) (string, error) {
	l := cssparse.NewLexer(parse.NewInputString(src))

	var (
		b         strings.Builder
		prev      cssparse.TokenType
		started   bool
		space     bool
		inComment bool
		slash     bool // Previous token was an unemitted '/'.
	)
	write := func(tt cssparse.TokenType, data string) {
		if started && space && !tightAfter(prev) && !tightBefore(tt) {
			b.WriteByte(' ')
		}
		b.WriteString(data)
		prev, started, space = tt, true, false
	}

	for {
		tt, data := l.Next()
		if tt == cssparse.ErrorToken {
			if err := l.Err(); err != io.EOF {
				return "", err
			}
			break
		}

		if inComment {
			if tt == cssparse.WhitespaceToken && strings.ContainsAny(string(data), "\n\f") {
				inComment, space = false, true
			}
			continue
		}

		isSlash := tt == cssparse.DelimToken && string(data) == "/"
		if slash {
			slash = false
			if isSlash {
				inComment = true
				continue
			}
			write(cssparse.DelimToken, "/")
		}

		switch {
		case isSlash:
			slash = true
		case tt == cssparse.WhitespaceToken:
			space = true
		case tt == cssparse.CommentToken:
		default:
			write(tt, string(data))
		}
	}
	if slash {
		write(cssparse.DelimToken, "/")
	}
	return b.String(), nil
}

func tightAfter(tt cssparse.TokenType) bool {
	switch tt {
	case cssparse.LeftBraceToken, cssparse.RightBraceToken, cssparse.SemicolonToken,
		cssparse.CommaToken, cssparse.ColonToken:
		return true
	}
	return false
}

func tightBefore(tt cssparse.TokenType) bool {
	switch tt {
	case cssparse.LeftBraceToken, cssparse.RightBraceToken, cssparse.SemicolonToken, cssparse.CommaToken:
		return true
	}
	return false
}
