// Package manifest reads and validates pinned dependency manifests
// (requirements files with one name==version record per line).
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/zerr"
)

// recordPattern matches `name==version`, where name may carry extras such as uvicorn[standard].
// No whitespace is allowed inside the record, so Format reproduces it exactly.
var recordPattern = regexp.MustCompile(
	`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?(?:\[[A-Za-z0-9._,-]+\])?)==(\S+)$`,
)

// Parse reads every line of r. Blank lines and lines starting with '#' are kept
// but carry no record. Every other line must be `name==version`, optionally
// followed by whitespace and a '#' comment.
func Parse(r io.Reader) (*domain.Manifest, error) {
	m := &domain.Manifest{}
	var errs error

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		dep, err := parseLine(raw, lineNo)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		m.Lines = append(m.Lines, domain.ManifestLine{Raw: raw, Dep: dep})
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.Wrap(domain.ErrManifestReadFailed, err)
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

func parseLine(raw string, lineNo int) (*domain.Dependency, error) {
	line := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	body, comment := splitComment(line)
	match := recordPattern.FindStringSubmatch(body)
	if match == nil {
		err := fmt.Errorf("line %d: %q: %w", lineNo, line, domain.ErrManifestSyntax)
		return nil, zerr.With(err, "line", lineNo)
	}

	return &domain.Dependency{
		Name:    match[1],
		Version: match[2],
		Comment: comment,
		Line:    lineNo,
	}, nil
}

// splitComment separates a trailing comment. A '#' only starts a comment at
// the beginning of the line or after whitespace.
func splitComment(line string) (string, string) {
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
		}
	}
	return line, ""
}
