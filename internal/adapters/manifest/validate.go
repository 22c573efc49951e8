package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

var separatorRun = regexp.MustCompile(`[-_.]+`)

// Problem is a single validation finding.
type Problem struct {
	Dep domain.Dependency
	Err error
}

// NormalizeName returns the PEP 503 form of a package name, without extras.
func NormalizeName(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(separatorRun.ReplaceAllString(name, "-"))
}

// IsExactVersion reports whether v is MAJOR.MINOR.PATCH with an optional
// pre-release, and nothing else.
func IsExactVersion(v string) bool {
	sv := "v" + v
	return semver.IsValid(sv) && semver.Canonical(sv) == sv
}

// Problems checks every record and returns the findings in file order.
func Problems(m *domain.Manifest) []Problem {
	var problems []Problem
	firstSeen := make(map[string]domain.Dependency)

	for _, dep := range m.Dependencies() {
		if !IsExactVersion(dep.Version) {
			err := fmt.Errorf("line %d: %s: %w", dep.Line, dep, domain.ErrManifestVersion)
			problems = append(problems, Problem{Dep: dep, Err: zerr.With(err, "line", dep.Line)})
		}

		key := NormalizeName(dep.Name)
		if first, ok := firstSeen[key]; ok {
			err := fmt.Errorf("line %d: %s also declared on line %d: %w", dep.Line, dep.Name, first.Line, domain.ErrManifestDuplicate)
			problems = append(problems, Problem{Dep: dep, Err: zerr.With(err, "line", dep.Line)})
			continue
		}
		firstSeen[key] = dep
	}
	return problems
}

// Validate joins every problem under domain.ErrManifestInvalid, or returns nil.
func Validate(m *domain.Manifest) error {
	problems := Problems(m)
	if len(problems) == 0 {
		return nil
	}

	errs := make([]error, 0, len(problems)+1)
	errs = append(errs, domain.Tag(domain.ErrManifestInvalid, "problems", len(problems)))
	for _, p := range problems {
		errs = append(errs, p.Err)
	}
	return errors.Join(errs...)
}
