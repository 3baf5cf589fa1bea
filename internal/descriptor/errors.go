package descriptor

import "fmt"

// SyntaxError reports malformed connect-string text. Pos is the byte offset
// of the offending token in the original input; Token is the offending
// substring (may be empty when the input ends unexpectedly).
type SyntaxError struct {
	Pos   int
	Token string
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("connect string syntax error at position %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("connect string syntax error at position %d near %q: %s", e.Pos, e.Token, e.Msg)
}

func syntaxErrf(pos int, token, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Token: token, Msg: fmt.Sprintf(format, args...)}
}
