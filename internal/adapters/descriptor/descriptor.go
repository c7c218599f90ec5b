// Package descriptor reads and writes the line-oriented dependency descriptor format.
//
// Each non-blank, non-comment line declares one package and its direct dependencies:
//
//	app@1.0 -> lib@2.1, util@0.3
//	lib@2.1 ->
package descriptor

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// arrow separates a package from its dependencies. A line that ends in leafArrow after
	// trimming declares a package without dependencies.
	arrow     = " -> "
	leafArrow = " ->"
	comment   = "#"
)

// Parse reads a descriptor into a graph. Dependency lists keep their declaration order
// and packages keep the order of their lines.
func Parse(r io.Reader) (*domain.Graph, error) {
	g := domain.NewGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, comment) {
			continue
		}

		id, deps, err := parseLine(text)
		if err != nil {
			return nil, zerr.With(err, "line", lineNo)
		}
		if err := g.Add(id, deps...); err != nil {
			err = zerr.With(domain.Mark(domain.ErrParsing), "identity", id.String())
			return nil, zerr.With(err, "line", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.MarkCause(domain.ErrParsing, err)
	}

	return g, nil
}

// ParseFile parses the descriptor at path. A missing file is an empty graph.
func ParseFile(path string) (*domain.Graph, error) {
	//nolint:gosec // path is user-provided configuration
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewGraph(), nil
		}
		return nil, zerr.With(domain.MarkCause(domain.ErrSourceReadFailed, err), "path", path)
	}
	defer func() { _ = f.Close() }()

	g, err := Parse(f)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return g, nil
}

func parseLine(text string) (domain.Identity, []domain.Identity, error) {
	lhs, rhs, ok := strings.Cut(text, arrow)
	if !ok {
		if lhs, ok = strings.CutSuffix(text, leafArrow); !ok {
			return domain.Identity{}, nil, zerr.With(domain.Mark(domain.ErrParsing), "text", text)
		}
	}

	id, err := parseToken(lhs)
	if err != nil {
		return domain.Identity{}, nil, err
	}

	rhs = strings.TrimSpace(rhs)
	if rhs == "" {
		return id, nil, nil
	}

	var deps []domain.Identity
	for token := range strings.SplitSeq(rhs, ",") {
		dep, err := parseToken(token)
		if err != nil {
			return domain.Identity{}, nil, err
		}
		deps = append(deps, dep)
	}
	return id, deps, nil
}

func parseToken(token string) (domain.Identity, error) {
	id, err := domain.ParseIdentity(token)
	if err != nil {
		return domain.Identity{}, zerr.With(domain.Mark(domain.ErrParsing), "token", strings.TrimSpace(token))
	}
	return id, nil
}

// Format renders g in descriptor syntax, one line per package in insertion order.
func Format(g *domain.Graph) string {
	var b strings.Builder
	for id, deps := range g.All() {
		b.WriteString(id.String())
		if len(deps) == 0 {
			b.WriteString(leafArrow)
		} else {
			b.WriteString(arrow)
			b.WriteString(strings.Join(domain.Strings(deps), ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
