package manifest_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dock/internal/adapters/manifest"
	"go.trai.ch/dock/internal/core/domain"
)

func parse(t *testing.T, content string) *domain.Manifest {
	t.Helper()
	m, err := manifest.Parse(strings.NewReader(content))
	require.NoError(t, err)
	return m
}

func TestParse_Example(t *testing.T) {
	m := parse(t, "fastapi==0.104.1\n# websockets==12.0\n")

	deps := m.Dependencies()
	require.Len(t, deps, 1)
	assert.Equal(t, "fastapi", deps[0].Name)
	assert.Equal(t, "0.104.1", deps[0].Version)
	assert.Equal(t, 1, deps[0].Line)
	assert.Len(t, m.Lines, 2)
	assert.Nil(t, m.Lines[1].Dep)
}

func TestParse_Lines(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantName    string
		wantVersion string
		wantComment string
		wantRecord  bool
	}{
		{name: "plain", line: "selenium==4.15.2", wantName: "selenium", wantVersion: "4.15.2", wantRecord: true},
		{name: "inline comment", line: "pydantic==2.5.0  # Data validation", wantName: "pydantic", wantVersion: "2.5.0", wantComment: "Data validation", wantRecord: true},
		{name: "extras", line: "uvicorn[standard]==0.24.0", wantName: "uvicorn[standard]", wantVersion: "0.24.0", wantRecord: true},
		{name: "indented", line: "   webdriver-manager==4.0.1", wantName: "webdriver-manager", wantVersion: "4.0.1", wantRecord: true},
		{name: "blank", line: "   "},
		{name: "header", line: "# Core Framework"},
		{name: "commented record", line: "  # httpx==0.25.2  # Async HTTP client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := parse(t, tt.line+"\n")
			require.Len(t, m.Lines, 1)
			assert.Equal(t, tt.line, m.Lines[0].Raw)

			dep := m.Lines[0].Dep
			if !tt.wantRecord {
				assert.Nil(t, dep)
				return
			}
			require.NotNil(t, dep)
			assert.Equal(t, tt.wantName, dep.Name)
			assert.Equal(t, tt.wantVersion, dep.Version)
			assert.Equal(t, tt.wantComment, dep.Comment)
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    string
	}{
		{name: "range operator", content: "fastapi>=0.104.1\n", line: "line 1"},
		{name: "missing version", content: "# ok\nfastapi==\n", line: "line 2"},
		{name: "bare name", content: "\n\nselenium\n", line: "line 3"},
		{name: "spaces around operator", content: "aiofiles == 23.2.1\n", line: "line 1"},
		{name: "space before operator", content: "fastapi==0.104.1\nuvicorn ==0.24.0\n", line: "line 2"},
		{name: "space inside extras", content: "uvicorn[ standard ]==0.24.0\n", line: "line 1"},
		{name: "hash without space", content: "pydantic==2.5.0#note\n", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := manifest.Parse(strings.NewReader(tt.content))
			if tt.line == "" {
				// The '#' is part of the version here; validation rejects it later.
				require.NoError(t, err)
				require.Error(t, manifest.Validate(m))
				return
			}
			require.ErrorIs(t, err, domain.ErrManifestSyntax)
			assert.Nil(t, m)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestParse_ReportsEveryBadLine(t *testing.T) {
	_, err := manifest.Parse(strings.NewReader("a>=1\nb==1.0.0\nc~=2\n"))
	require.ErrorIs(t, err, domain.ErrManifestSyntax)
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "line 3")
	assert.NotContains(t, err.Error(), "line 2")
}

func TestIsExactVersion(t *testing.T) {
	valid := []string{"0.104.1", "12.0.0", "4.15.2", "1.0.0-rc.1", "23.2.1"}
	invalid := []string{"12.0", "1", "1.0.0+build.5", "01.2.3", "v1.2.3", "1.2.3.4", "latest", ""}

	for _, v := range valid {
		assert.True(t, manifest.IsExactVersion(v), v)
	}
	for _, v := range invalid {
		assert.False(t, manifest.IsExactVersion(v), v)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "webdriver-manager", manifest.NormalizeName("WebDriver_Manager"))
	assert.Equal(t, "zope-interface", manifest.NormalizeName("zope..interface"))
	assert.Equal(t, "uvicorn", manifest.NormalizeName("uvicorn[standard]"))
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m := parse(t, "fastapi==0.104.1\nselenium==4.15.2\n# selenium==4.0.0\n")
		assert.NoError(t, manifest.Validate(m))
	})

	t.Run("inexact version", func(t *testing.T) {
		m := parse(t, "websockets==12.0\n")
		err := manifest.Validate(m)
		require.ErrorIs(t, err, domain.ErrManifestInvalid)
		require.ErrorIs(t, err, domain.ErrManifestVersion)
		assert.Contains(t, err.Error(), "line 1: websockets==12.0")
	})

	t.Run("duplicate after normalisation", func(t *testing.T) {
		m := parse(t, "python-multipart==0.0.6\nfastapi==0.104.1\nPython_Multipart==0.0.6\n")
		err := manifest.Validate(m)
		require.ErrorIs(t, err, domain.ErrManifestDuplicate)
		assert.Contains(t, err.Error(), "also declared on line 1")
	})

	t.Run("all problems joined", func(t *testing.T) {
		m := parse(t, "a==1.0\nb==2.0.0\nb==3\n")
		problems := manifest.Problems(m)
		require.Len(t, problems, 3)
		assert.Equal(t, 1, problems[0].Dep.Line)
		assert.ErrorIs(t, problems[1].Err, domain.ErrManifestVersion)
		assert.ErrorIs(t, problems[2].Err, domain.ErrManifestDuplicate)
	})
}

func TestFormat_RoundTrip(t *testing.T) {
	content := "fastapi==0.104.1\nuvicorn[standard]==0.24.0\npydantic==2.5.0\n"
	m := parse(t, content)
	assert.Equal(t, content, m.Format())

	again := parse(t, m.Format())
	assert.Equal(t, m.Dependencies()[1].Name, again.Dependencies()[1].Name)
	assert.Equal(t, m.Format(), again.Format())
}

func TestFormat_ReproducesActiveLines(t *testing.T) {
	content := "# Core\n  fastapi==0.104.1  # web\nuvicorn[standard]==0.24.0\n\n# httpx==0.25.2\n"
	m := parse(t, content)
	require.NoError(t, manifest.Validate(m))

	var active []string
	for _, l := range m.Lines {
		if l.Dep == nil {
			continue
		}
		body, _, _ := strings.Cut(strings.TrimSpace(l.Raw), " ")
		active = append(active, body+"\n")
	}
	assert.Equal(t, strings.Join(active, ""), m.Format())
}

func TestParse_RejectsNonCanonicalSpacing(t *testing.T) {
	_, err := manifest.Parse(strings.NewReader("fastapi == 0.104.1\nuvicorn[standard]==0.24.0\n"))
	require.ErrorIs(t, err, domain.ErrManifestSyntax)
	assert.Contains(t, err.Error(), "line 1")
	assert.NotContains(t, err.Error(), "line 2")
}

func TestReader_Testdata(t *testing.T) {
	r := manifest.NewReader()
	path := filepath.Join("testdata", "requirements.txt")

	m, err := r.Read(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
	require.NoError(t, r.Validate(m))

	deps := m.Dependencies()
	require.Len(t, deps, 7)
	assert.Equal(t, "fastapi", deps[0].Name)
	assert.Equal(t, "Modern web framework for building APIs", deps[0].Comment)

	g := goldie.New(t)
	g.Assert(t, "requirements_format", []byte(m.Format()))
}

func TestReader_Missing(t *testing.T) {
	_, err := manifest.NewReader().Read(filepath.Join(t.TempDir(), "requirements.txt"))
	require.ErrorIs(t, err, domain.ErrManifestReadFailed)
}
