// Package descriptor parses the three concrete connect-string syntaxes used
// by Oracle clients: the verbose nested name-value descriptor form
// ((DESCRIPTION=...)), the compact Easy Connect form
// (proto://host:port/service?params), and the credential DSN form
// (user/password@connect_string). It produces neutral structures; mapping
// recognized keys onto typed connection parameters happens in the parent
// package.
package descriptor

import (
	"strings"
)

// maxNestingDepth caps descriptor nesting. Descriptor text can come from
// untrusted configuration, so nesting is bounded rather than limited only by
// available stack.
const maxNestingDepth = 64

// Node is one (KEY=...) group in a full connect descriptor. A node is either
// a leaf holding a Value or a group holding Children, never both. Keys are
// stored uppercased; descriptor keys are case-insensitive.
type Node struct {
	Key      string
	Value    string
	Children []*Node
}

// IsLeaf reports whether the node carries a plain value rather than nested
// groups.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Child returns the last child with the given key (case-insensitive), or nil.
// Later occurrences of a repeated key override earlier ones within the same
// scope, so lookups return the last match.
func (n *Node) Child(key string) *Node {
	key = strings.ToUpper(key)
	var found *Node
	for _, c := range n.Children {
		if c.Key == key {
			found = c
		}
	}
	return found
}

// ---------------------------------------------------------------------------
// Full connect descriptor parser
// ---------------------------------------------------------------------------

// ParseDescriptor parses nested name-value descriptor text such as
//
//	(DESCRIPTION=(ADDRESS=(PROTOCOL=tcp)(HOST=x)(PORT=1521))
//	  (CONNECT_DATA=(SERVICE_NAME=orcl)))
//
// into a list of top-level nodes. The walk is iterative with an explicit
// stack; unbalanced parentheses, stray text outside groups, and nesting
// deeper than maxNestingDepth all fail with *SyntaxError.
func ParseDescriptor(input string) ([]*Node, error) {
	var (
		roots []*Node
		stack []*Node
	)
	i, n := 0, len(input)

	attach := func(node *Node) {
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
	}

	for i < n {
		c := input[i]
		if isSpace(c) {
			i++
			continue
		}

		switch c {
		case '(':
			if len(stack) >= maxNestingDepth {
				return nil, syntaxErrf(i, "(", "descriptor nested deeper than %d levels", maxNestingDepth)
			}
			i++
			key, err := readKey(input, &i)
			if err != nil {
				return nil, err
			}
			node := &Node{Key: strings.ToUpper(key)}
			attach(node)
			stack = append(stack, node)

			// A leaf value follows unless the next non-space byte opens a
			// nested group.
			j := skipSpace(input, i)
			if j >= n {
				return nil, syntaxErrf(j, "", "unterminated group %q", node.Key)
			}
			if input[j] != '(' {
				i = j
				value, err := readValue(input, &i)
				if err != nil {
					return nil, err
				}
				node.Value = value
				// readValue stops at the closing paren of this group.
				if i >= n || input[i] != ')' {
					return nil, syntaxErrf(i, "", "unterminated group %q", node.Key)
				}
				i++
				stack = stack[:len(stack)-1]
			}

		case ')':
			if len(stack) == 0 {
				return nil, syntaxErrf(i, ")", "unbalanced closing parenthesis")
			}
			stack = stack[:len(stack)-1]
			i++

		default:
			end := i
			for end < n && !isSpace(input[end]) && input[end] != '(' && input[end] != ')' {
				end++
			}
			return nil, syntaxErrf(i, input[i:end], "text outside a (KEY=value) group")
		}
	}

	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return nil, syntaxErrf(n, "", "%d unclosed group(s), innermost is %q", len(stack), open.Key)
	}
	if len(roots) == 0 {
		return nil, syntaxErrf(0, "", "empty descriptor")
	}
	return roots, nil
}

// readKey consumes the key of a group up to the '=' separator.
func readKey(input string, i *int) (string, error) {
	start := *i
	n := len(input)
	for *i < n {
		switch input[*i] {
		case '=':
			key := strings.TrimSpace(input[start:*i])
			if key == "" {
				return "", syntaxErrf(start, "=", "empty key")
			}
			*i++
			return key, nil
		case '(', ')':
			return "", syntaxErrf(*i, string(input[*i]), "expected '=' after key %q", strings.TrimSpace(input[start:*i]))
		}
		*i++
	}
	return "", syntaxErrf(start, strings.TrimSpace(input[start:]), "key without '='")
}

// readValue consumes a leaf value up to (but not including) the group's
// closing paren. Double-quoted values may contain parentheses, '=' and
// whitespace; unquoted values stop at the first paren.
func readValue(input string, i *int) (string, error) {
	n := len(input)
	if *i < n && input[*i] == '"' {
		start := *i
		*i++
		vstart := *i
		for *i < n && input[*i] != '"' {
			*i++
		}
		if *i >= n {
			return "", syntaxErrf(start, "\"", "unterminated quoted value")
		}
		value := input[vstart:*i]
		*i++ // closing quote
		*i = skipSpace(input, *i)
		return value, nil
	}

	start := *i
	for *i < n {
		switch input[*i] {
		case ')':
			return strings.TrimSpace(input[start:*i]), nil
		case '(':
			return "", syntaxErrf(*i, "(", "unexpected '(' inside value")
		}
		*i++
	}
	return strings.TrimSpace(input[start:]), nil
}

func skipSpace(input string, i int) int {
	for i < len(input) && isSpace(input[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
