package toolchain_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cbuild/internal/adapters/toolchain"
	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/cbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const mcu = "atmega32u4"

type fixture struct {
	root     string
	project  *domain.Project
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
	factory  *toolchain.Factory
	commands []domain.Command
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	root := t.TempDir()
	f := &fixture{
		root:     root,
		project:  domain.NewProject(root),
		executor: mocks.NewMockExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.factory = toolchain.NewFactory(f.executor, f.logger)

	for _, obj := range []string{"a.o", "b.o"} {
		path := filepath.Join(root, "obj", obj)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}
	return f
}

// record makes every command succeed and keeps it.
func (f *fixture) record() {
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), nil).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _ io.Writer) error {
			f.commands = append(f.commands, cmd)
			return nil
		}).AnyTimes()
}

func (f *fixture) quiet() {
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
}

func (f *fixture) setupAtmel(t *testing.T) {
	t.Helper()
	atmel := filepath.Join(f.root, "atmel")
	pack := filepath.Join(atmel, "Packs", "atmel", "ATmega_DFP", "1.6.364")
	require.NoError(t, os.MkdirAll(filepath.Join(pack, "include"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(pack, "gcc", "dev", mcu), 0o750))

	f.project.Toolchain = domain.ToolchainAVRGCC
	f.project.AVRMCU = mcu
	f.project.AtmelStudioDir = atmel
}

// transcript renders the recorded commands with the temporary root replaced.
func (f *fixture) transcript() []byte {
	var b strings.Builder
	for _, cmd := range f.commands {
		b.WriteString(strings.ReplaceAll(cmd.String(), f.root, "$ROOT"))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func (f *fixture) compileRequest(cfg domain.ConfigType, src, out string) domain.CompileRequest {
	return domain.CompileRequest{
		Config:      cfg,
		Source:      filepath.Join(f.root, src),
		Output:      filepath.Join(f.root, out),
		IncludeDirs: []string{filepath.Join(f.root, "include")},
		LibraryDirs: []string{filepath.Join(f.root, "lib")},
		StaticLibs:  []string{"m"},
	}
}

func (f *fixture) linkRequest(cfg domain.ConfigType, out string) domain.LinkRequest {
	return domain.LinkRequest{
		Config: cfg,
		Objects: []string{
			filepath.Join(f.root, "obj", "a.o"),
			filepath.Join(f.root, "obj", "b.o"),
			filepath.Join(f.root, "obj", "missing.o"),
		},
		Output:      filepath.Join(f.root, out),
		IncludeDirs: []string{filepath.Join(f.root, "include")},
		LibraryDirs: []string{filepath.Join(f.root, "lib")},
		StaticLibs:  []string{"m"},
	}
}

// exercise runs every driver operation once.
func (f *fixture) exercise(t *testing.T, driver ports.CompilerDriver, binary string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, driver.CompileUnit(ctx, f.compileRequest(domain.ConfigDebug, "src/main.c", "obj/main.o")))
	require.NoError(t, driver.CompilePCH(ctx, f.compileRequest(domain.ConfigRelease, "src/pch.h", "src/pch.h.gch")))

	out, err := driver.LinkBinary(ctx, f.linkRequest(domain.ConfigDebug, binary))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.root, binary), out)

	out, err = driver.LinkStaticLib(ctx, f.linkRequest(domain.ConfigRelease, "build/libapp.a"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.root, "build", "libapp.a"), out)
}

func TestDrivers_CommandLines(t *testing.T) {
	tests := []struct {
		name      string
		toolchain domain.ToolchainName
	}{
		{name: "gcc_commands", toolchain: domain.ToolchainGCC},
		{name: "clang_commands", toolchain: domain.ToolchainClang},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.quiet()
			f.record()
			f.project.Toolchain = tt.toolchain

			driver, err := f.factory.New(f.project, domain.DefaultSettings())
			require.NoError(t, err)
			f.exercise(t, driver, "build/app")

			goldie.New(t).Assert(t, tt.name, f.transcript())
		})
	}
}

func TestAVR_CommandLines(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.record()
	f.setupAtmel(t)

	driver, err := f.factory.New(f.project, domain.DefaultSettings())
	require.NoError(t, err)
	f.exercise(t, driver, "build/app.elf")

	runner, ok := driver.(ports.ArtifactRunner)
	require.True(t, ok)
	require.NoError(t, runner.RunArtifact(context.Background(), filepath.Join(f.root, "build", "app.elf")))

	goldie.New(t).Assert(t, "avr_commands", f.transcript())
}

func TestFactory_OverridesAndToolchainDir(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	f.record()
	f.project.ToolchainDir = filepath.Join(f.root, "bin")

	settings := domain.DefaultSettings()
	settings.Toolchains[domain.ToolchainGCC] = domain.ToolchainSettings{
		Compiler:   "gcc-13",
		Archiver:   "gcc-ar-13",
		DebugFlags: []string{"-O0"},
	}

	driver, err := f.factory.New(f.project, settings)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, driver.CompileUnit(ctx, domain.CompileRequest{Config: domain.ConfigDebug, Source: "a.c", Output: "a.o"}))
	require.NoError(t, driver.CompileUnit(ctx, domain.CompileRequest{Config: domain.ConfigRelease, Source: "a.c", Output: "a.o"}))
	_, err = driver.LinkStaticLib(ctx, domain.LinkRequest{Output: "lib.a"})
	require.NoError(t, err)

	require.Len(t, f.commands, 3)
	assert.Equal(t, []string{filepath.Join(f.root, "bin", "gcc-13"), "-O0", "-c", "-o", "a.o", "a.c"}, f.commands[0].Args)
	assert.Equal(t, []string{"-Wall", "-O3", "-D", "NDEBUG"}, f.commands[1].Args[1:5])
	assert.Equal(t, []string{filepath.Join(f.root, "bin", "gcc-ar-13"), "rcs", "lib.a"}, f.commands[2].Args)
}

func TestFactory_PrintCommands(t *testing.T) {
	f := newFixture(t)
	f.record()

	settings := domain.DefaultSettings()
	settings.PrintCommands = true
	f.logger.EXPECT().Info("gcc -Wall -g -D DEBUG -c -o a.o a.c")

	driver, err := f.factory.New(f.project, settings)
	require.NoError(t, err)
	require.NoError(t, driver.CompileUnit(context.Background(),
		domain.CompileRequest{Config: domain.ConfigDebug, Source: "a.c", Output: "a.o"}))
}

func TestFactory_UnknownToolchain(t *testing.T) {
	f := newFixture(t)
	f.project.Toolchain = "msvc"

	_, err := f.factory.New(f.project, domain.DefaultSettings())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownToolchain.Error())
}

func TestFactory_AVRSetup(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Project)
	}{
		{name: "no mcu", mutate: func(p *domain.Project) { p.AVRMCU = "" }},
		{name: "no atmel dir", mutate: func(p *domain.Project) { p.AtmelStudioDir = "" }},
		{name: "missing atmel dir", mutate: func(p *domain.Project) { p.AtmelStudioDir += "-gone" }},
		{name: "unknown mcu", mutate: func(p *domain.Project) { p.AVRMCU = "attiny85" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.setupAtmel(t)
			tt.mutate(f.project)

			_, err := f.factory.New(f.project, domain.DefaultSettings())
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrToolchainSetup.Error())
		})
	}
}

func TestGNU_CompileFailure(t *testing.T) {
	f := newFixture(t)
	f.quiet()
	boom := errors.New("exit status 1")
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), nil).Return(boom)

	driver, err := f.factory.New(f.project, domain.DefaultSettings())
	require.NoError(t, err)

	_, err = driver.LinkBinary(context.Background(), f.linkRequest(domain.ConfigDebug, "build/app"))
	require.ErrorIs(t, err, boom)
}

func TestAVR_ImageAndUploadFailuresWarn(t *testing.T) {
	f := newFixture(t)
	f.setupAtmel(t)
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	elf := filepath.Join(f.root, "build", "app.elf")
	hex := filepath.Join(f.root, "build", "app.hex")
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), nil).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _ io.Writer) error {
			f.commands = append(f.commands, cmd)
			if cmd.Args[0] == "avr-objcopy" || cmd.Args[0] == "dfu-programmer" {
				return errors.New("exit status 1")
			}
			return nil
		}).AnyTimes()

	f.logger.EXPECT().Warn("Could not generate '" + hex + "'")
	f.logger.EXPECT().Warn("Could not generate '" + filepath.Join(f.root, "build", "app.eep") + "'")
	f.logger.EXPECT().Warn("Could not upload to device: exit status 1")

	driver, err := f.factory.New(f.project, domain.DefaultSettings())
	require.NoError(t, err)

	out, err := driver.LinkBinary(context.Background(), f.linkRequest(domain.ConfigDebug, "build/app.elf"))
	require.NoError(t, err)
	assert.Equal(t, elf, out)

	f.commands = nil
	require.NoError(t, driver.(ports.ArtifactRunner).RunArtifact(context.Background(), elf))
	require.Len(t, f.commands, 1)
	assert.Equal(t, []string{"dfu-programmer", mcu, "erase", "--force"}, f.commands[0].Args)
}
