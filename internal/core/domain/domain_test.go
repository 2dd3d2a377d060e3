package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cbuild/internal/core/domain"
)

func TestParseConfigType(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.ConfigType
		wantErr bool
	}{
		{in: "debug", want: domain.ConfigDebug},
		{in: "Release", want: domain.ConfigRelease},
		{in: " DEBUG ", want: domain.ConfigDebug},
		{in: "profile", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseConfigType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidConfigType)
				assert.False(t, got.Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestParseToolchain(t *testing.T) {
	name, ok := domain.ParseToolchain("AVR-GCC")
	assert.True(t, ok)
	assert.Equal(t, domain.ToolchainAVRGCC, name)

	_, ok = domain.ParseToolchain("msvc")
	assert.False(t, ok)
}

func TestParseBuildKind(t *testing.T) {
	kind, ok := domain.ParseBuildKind("Static_Lib")
	assert.True(t, ok)
	assert.Equal(t, domain.BuildStaticLibrary, kind)

	kind, ok = domain.ParseBuildKind("binary")
	assert.True(t, ok)
	assert.Equal(t, domain.BuildBinary, kind)

	_, ok = domain.ParseBuildKind("bogus")
	assert.False(t, ok)
}

func TestProject_Paths(t *testing.T) {
	root := filepath.FromSlash("/work/app")
	p := domain.NewProject(root)
	p.ArtifactName = "app"

	assert.Equal(t, filepath.Join(root, "obj", "debug", "main.o"), p.ObjectPath(domain.ConfigDebug, "src/main.c"))
	assert.Equal(t, filepath.Join(root, "obj", "release", "util.o"), p.ObjectPath(domain.ConfigRelease, "util.cpp"))
	assert.Equal(t, filepath.Join(root, "build", "debug", "app"), p.ArtifactPath(domain.ConfigDebug))

	p.Kind = domain.BuildStaticLibrary
	assert.Equal(t, filepath.Join(root, "build", "release", "libapp.a"), p.ArtifactPath(domain.ConfigRelease))

	p.Kind = domain.BuildBinary
	p.Toolchain = domain.ToolchainAVRGCC
	assert.Equal(t, filepath.Join(root, "build", "debug", "app.elf"), p.ArtifactPath(domain.ConfigDebug))

	assert.Equal(t, filepath.Join(root, "src"), p.Resolve("src"))
	assert.False(t, p.HasSources())
	p.SourceFiles.Add(p.Resolve("main.c"))
	assert.True(t, p.HasSources())
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, domain.IsSourceFile("main.c", domain.SourceExtensions))
	assert.True(t, domain.IsSourceFile("Main.CPP", domain.SourceExtensions))
	assert.False(t, domain.IsSourceFile("main.h", domain.SourceExtensions))
	assert.False(t, domain.IsSourceFile("Makefile", domain.SourceExtensions))
}

func TestTimestampTable(t *testing.T) {
	table := domain.NewTimestampTable()
	table.Set(domain.ConfigRelease, "/b", 2)
	table.Set(domain.ConfigDebug, "/z", 3)
	table.Set(domain.ConfigDebug, "/a", 1)

	ts, ok := table.Lookup(domain.ConfigDebug, "/a")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), ts)

	_, ok = table.Lookup(domain.ConfigRelease, "/a")
	assert.False(t, ok)

	assert.Equal(t, []domain.ConfigType{domain.ConfigDebug, domain.ConfigRelease}, table.Configs())
	assert.Equal(t, []string{"/a", "/z"}, table.Paths(domain.ConfigDebug))

	table.Delete(domain.ConfigRelease, "/b")
	assert.Equal(t, []domain.ConfigType{domain.ConfigDebug}, table.Configs())

	var zero domain.TimestampTable
	zero.Set(domain.ConfigDebug, "/x", 9)
	assert.Equal(t, []string{"/x"}, zero.Paths(domain.ConfigDebug))
}

func TestScriptError(t *testing.T) {
	err := domain.NewScriptError(domain.KindError, domain.ErrMissingSemicolon, 3, 14, "set_compiler",
		"Symbol ';' expected, got '%s'", "set_pch")

	assert.Equal(t, "[Error, Line: 3, Char: 14] Symbol ';' expected, got 'set_pch'", err.Error())
	assert.True(t, errors.Is(err, domain.ErrMissingSemicolon))
	assert.Equal(t, "set_compiler", err.Command)

	syntax := domain.NewScriptError(domain.KindSyntaxError, domain.ErrUnexpectedSymbol, 1, 2, "", "x")
	assert.Equal(t, "[Syntax Error, Line: 1, Char: 2] x", syntax.Error())

	warn := domain.Diagnostic{Kind: domain.KindWarning, Line: 4, Column: 1, Message: "dup"}
	assert.Equal(t, "[Warning, Line: 4, Char: 1] dup", warn.String())
}

func TestCommand_String(t *testing.T) {
	cmd := domain.Command{Args: []string{"gcc", "-I", "/my include", "-c", "a.c"}}
	assert.Equal(t, `gcc -I "/my include" -c a.c`, cmd.String())
}

func TestDefaultSettings(t *testing.T) {
	s := domain.DefaultSettings()
	assert.Equal(t, domain.ConfigDebug, s.Config)
	assert.Equal(t, filepath.Join(".cbuild", "timestamps"), s.StateDir)
	assert.Equal(t, domain.SourceExtensions, s.SourceExtensions)
	assert.Equal(t, domain.ToolchainSettings{}, s.Toolchain(domain.ToolchainGCC))
}
