// Package tnsnames resolves connect aliases against tnsnames.ora files. An
// alias file maps short names to connect descriptor text:
//
//	ORCL = (DESCRIPTION=(ADDRESS=(PROTOCOL=tcp)(HOST=db1)(PORT=1521))
//	         (CONNECT_DATA=(SERVICE_NAME=orclpdb)))
//
// Entries may span multiple physical lines while parenthesis nesting is
// unbalanced. '#' starts a comment; blank lines are skipped. Lookup is
// case-insensitive and single-level: a descriptor that itself looks like an
// alias name is never re-resolved.
package tnsnames

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileName is the alias file searched for in each configuration directory.
const FileName = "tnsnames.ora"

// ErrAliasNotFound is returned when an alias file was found but none of the
// searched files define the alias.
var ErrAliasNotFound = errors.New("alias not found in tnsnames.ora")

// ErrNoConfigFile is returned when none of the configured directories contain
// an alias file at all. Callers typically fall back to treating the candidate
// as a literal host in that case.
var ErrNoConfigFile = errors.New("no tnsnames.ora file found")

// ConfigError reports an alias file that exists but cannot be read or parsed.
type ConfigError struct {
	Path string
	Line int
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Entry is one alias mapping from an alias file.
type Entry struct {
	Name       string
	Descriptor string
}

// Resolver looks up aliases in the first tnsnames.ora found under each of
// Dirs, in order. A nil Logger means slog.Default().
type Resolver struct {
	Dirs   []string
	Logger *slog.Logger
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Lookup returns the descriptor text mapped to alias. The search visits each
// directory's alias file in order and returns the first file that defines the
// alias. ErrNoConfigFile means no file existed anywhere; ErrAliasNotFound
// (wrapped with the alias name and searched paths) means files existed but
// none define the alias; *ConfigError means a file was found but is
// unreadable or malformed.
func (r *Resolver) Lookup(alias string) (string, error) {
	want := strings.ToUpper(strings.TrimSpace(alias))
	var searched []string

	for _, dir := range r.Dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, FileName)
		entries, err := parseFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", err
		}
		searched = append(searched, path)
		if text, ok := entries[want]; ok {
			r.logger().Debug("resolved connect alias", "alias", alias, "file", path)
			return text, nil
		}
	}

	if len(searched) == 0 {
		return "", fmt.Errorf("alias %q: %w (searched %s)", alias, ErrNoConfigFile, strings.Join(r.Dirs, ", "))
	}
	return "", fmt.Errorf("alias %q: %w (searched %s)", alias, ErrAliasNotFound, strings.Join(searched, ", "))
}

// Entries lists every alias defined in the first alias file found, sorted by
// name. Used by tooling that wants to show what is available.
func (r *Resolver) Entries() ([]Entry, error) {
	for _, dir := range r.Dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, FileName)
		byName, err := parseFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		entries := make([]Entry, 0, len(byName))
		for name, text := range byName {
			entries = append(entries, Entry{Name: name, Descriptor: text})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		return entries, nil
	}
	return nil, ErrNoConfigFile
}

// parseFile reads one alias file into an uppercased name → descriptor map.
// Returns os.ErrNotExist (wrapped) when the file does not exist.
func parseFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, &ConfigError{Path: path, Msg: err.Error()}
	}
	defer f.Close()

	entries := make(map[string]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Entry header: NAME = descriptor_text
		eq := strings.IndexByte(line, '=')
		if eq < 0 || strings.ContainsAny(line[:eq], "()") {
			return nil, &ConfigError{Path: path, Line: lineNo, Msg: fmt.Sprintf("expected ALIAS = descriptor, got %q", strings.TrimSpace(line))}
		}
		names := strings.TrimSpace(line[:eq])
		if names == "" {
			return nil, &ConfigError{Path: path, Line: lineNo, Msg: "entry with empty alias name"}
		}

		text := strings.TrimSpace(line[eq+1:])
		depth := parenDepth(text)
		startLine := lineNo

		// Descriptors continue on following lines while nesting is open, or
		// when the header line carries nothing after the '='.
		for (depth > 0 || text == "") && scanner.Scan() {
			lineNo++
			cont := strings.TrimSpace(stripComment(scanner.Text()))
			if cont == "" {
				continue
			}
			text += cont
			depth += parenDepth(cont)
		}
		if depth > 0 {
			return nil, &ConfigError{Path: path, Line: startLine, Msg: fmt.Sprintf("entry %q has unbalanced parentheses", names)}
		}
		if depth < 0 {
			return nil, &ConfigError{Path: path, Line: lineNo, Msg: fmt.Sprintf("entry %q closes more groups than it opens", names)}
		}
		if text == "" {
			return nil, &ConfigError{Path: path, Line: startLine, Msg: fmt.Sprintf("entry %q has no descriptor text", names)}
		}

		// One entry may declare several comma-separated alias names.
		for _, name := range strings.Split(names, ",") {
			name = strings.ToUpper(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if _, dup := entries[name]; !dup {
				entries[name] = text
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConfigError{Path: path, Msg: err.Error()}
	}
	return entries, nil
}

// stripComment removes a '#' comment, honoring double quotes so quoted
// descriptor values may contain '#'.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

// parenDepth returns opens minus closes, skipping parens inside quotes.
func parenDepth(s string) int {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
			}
		}
	}
	return depth
}
