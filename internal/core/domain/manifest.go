package domain

import "strings"

// Dependency is one active record of a pinned dependency manifest.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	// Comment is the trailing inline comment, without the leading '#'.
	Comment string `json:"comment,omitempty"`
	// Line is the 1-based line number in the source file.
	Line int `json:"line"`
}

// String renders the record in its pinned form.
func (d Dependency) String() string {
	return d.Name + "==" + d.Version
}

// ManifestLine is a single line of a manifest as read from disk.
type ManifestLine struct {
	Raw string
	// Dep is nil for blank and comment lines.
	Dep *Dependency
}

// Manifest is a parsed manifest that remembers every line, active or not.
type Manifest struct {
	Path  string
	Lines []ManifestLine
}

// Dependencies returns the active records in file order.
func (m *Manifest) Dependencies() []Dependency {
	deps := make([]Dependency, 0, len(m.Lines))
	for _, l := range m.Lines {
		if l.Dep != nil {
			deps = append(deps, *l.Dep)
		}
	}
	return deps
}

// Format re-serialises the active records in their original order.
func (m *Manifest) Format() string {
	var sb strings.Builder
	for _, d := range m.Dependencies() {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
