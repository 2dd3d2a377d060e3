package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// atmelPack is the device pack inside an Atmel Studio installation.
var atmelPack = filepath.Join("Packs", "atmel", "ATmega_DFP", "1.6.364")

const (
	avrCompiler = "avr-gcc"
	avrArchiver = "avr-ar"
	avrSize     = "avr-size"
	avrObjcopy  = "avr-objcopy"
	dfuProgram  = "dfu-programmer"
)

// AVR drives avr-gcc against an Atmel Studio device pack and uploads
// firmware with dfu-programmer.
type AVR struct {
	runner
	mcu          string
	includeDir   string
	mcuDir       string
	compiler     string
	archiver     string
	debugFlags   []string
	releaseFlags []string
}

var _ ports.ArtifactRunner = (*AVR)(nil)

// validateAVR checks that the Atmel Studio directories the compiler needs exist.
func validateAVR(project *domain.Project) (includeDir, mcuDir string, err error) {
	if project.AVRMCU == "" {
		return "", "", zerr.With(domain.ErrToolchainSetup, "reason", "no AVR MCU specified")
	}
	if project.AtmelStudioDir == "" {
		return "", "", zerr.With(domain.ErrToolchainSetup, "reason", "no Atmel Studio directory specified")
	}

	includeDir = filepath.Join(project.AtmelStudioDir, atmelPack, "include")
	mcuDir = filepath.Join(project.AtmelStudioDir, atmelPack, "gcc", "dev", project.AVRMCU)
	for _, dir := range []string{project.AtmelStudioDir, includeDir, mcuDir} {
		info, statErr := os.Stat(dir)
		if statErr != nil || !info.IsDir() {
			return "", "", zerr.With(domain.ErrToolchainSetup, "path", dir)
		}
	}
	return includeDir, mcuDir, nil
}

func newAVR(r runner, project *domain.Project, s domain.ToolchainSettings) (*AVR, error) {
	includeDir, mcuDir, err := validateAVR(project)
	if err != nil {
		return nil, err
	}
	return &AVR{
		runner:       r,
		mcu:          project.AVRMCU,
		includeDir:   includeDir,
		mcuDir:       mcuDir,
		compiler:     pick(s.Compiler, avrCompiler),
		archiver:     pick(s.Archiver, avrArchiver),
		debugFlags:   pickFlags(s.DebugFlags, []string{"-DDEBUG", "-Og", "-g2"}),
		releaseFlags: pickFlags(s.ReleaseFlags, []string{"-DNDEBUG", "-Os"}),
	}, nil
}

func (a *AVR) flags(cfg domain.ConfigType) []string {
	args := []string{"-x", "c", "-funsigned-char", "-funsigned-bitfields"}
	if cfg == domain.ConfigRelease {
		args = append(args, a.releaseFlags...)
	} else {
		args = append(args, a.debugFlags...)
	}
	return append(args,
		"-I", a.includeDir,
		"-ffunction-sections", "-fdata-sections", "-fpack-struct", "-fshort-enums", "-Wall",
		"-mmcu="+a.mcu, "-B", a.mcuDir,
		"-c", "-std=gnu99",
	)
}

// CompileUnit compiles one unit and writes a make-style dependency file next to the object.
func (a *AVR) CompileUnit(ctx context.Context, req domain.CompileRequest) error {
	deps := replaceExt(req.Output, ".d")

	args := []string{a.tool(a.compiler)}
	args = append(args, a.flags(req.Config)...)
	args = append(args, searchArgs(req.IncludeDirs, req.LibraryDirs, req.StaticLibs)...)
	args = append(args, "-MD", "-MP", "-MF", deps, "-MT", deps, "-MT", req.Output, "-o", req.Output, req.Source)
	return a.run(ctx, args...)
}

// CompilePCH compiles the precompiled header.
func (a *AVR) CompilePCH(ctx context.Context, req domain.CompileRequest) error {
	args := []string{a.tool(a.compiler)}
	args = append(args, a.flags(req.Config)...)
	args = append(args, searchArgs(req.IncludeDirs, req.LibraryDirs, req.StaticLibs)...)
	args = append(args, req.Source, "-o", req.Output)
	return a.run(ctx, args...)
}

// LinkBinary links the elf image, then extracts the flash and EEPROM images.
// Failing to extract an image is reported as a warning.
func (a *AVR) LinkBinary(ctx context.Context, req domain.LinkRequest) (string, error) {
	elf := req.Output
	mapFile := replaceExt(elf, ".map")
	hex := replaceExt(elf, ".hex")
	eep := replaceExt(elf, ".eep")

	args := []string{a.tool(a.compiler), "-o", elf}
	args = append(args, existing(req.Objects)...)
	args = append(args,
		"-Wl,-Map="+mapFile,
		"-Wl,--start-group", "-Wl,-lm", "-Wl,--end-group", "-Wl,--gc-sections",
		"-mmcu="+a.mcu, "-B", a.mcuDir,
	)
	args = append(args, searchArgs(req.IncludeDirs, req.LibraryDirs, req.StaticLibs)...)
	if err := a.run(ctx, args...); err != nil {
		return "", err
	}
	a.logger.Info(fmt.Sprintf("Generated '%s'", elf))
	a.size(ctx, elf)

	a.extract(ctx, hex, a.tool(avrObjcopy), "-O", "ihex",
		"-R", ".eeprom", "-R", ".fuse", "-R", ".lock", "-R", ".signature", "-R", ".user_signatures",
		elf, hex)
	a.extract(ctx, eep, a.tool(avrObjcopy), "-j", ".eeprom",
		"--set-section-flags=.eeprom=alloc,load", "--change-section-lma", ".eeprom=0",
		"--no-change-warnings", "-O", "ihex", elf, eep)

	return elf, nil
}

// LinkStaticLib archives the objects with avr-ar.
func (a *AVR) LinkStaticLib(ctx context.Context, req domain.LinkRequest) (string, error) {
	return archive(ctx, &a.runner, a.archiver, req)
}

// RunArtifact uploads the flash image of artifact to the device over DFU.
// Upload failures are reported as warnings.
func (a *AVR) RunArtifact(ctx context.Context, artifact string) error {
	hex := replaceExt(artifact, ".hex")
	steps := [][]string{
		{dfuProgram, a.mcu, "erase", "--force"},
		{dfuProgram, a.mcu, "flash", hex},
		{dfuProgram, a.mcu, "reset"},
	}
	for _, step := range steps {
		if err := a.run(ctx, step...); err != nil {
			a.logger.Warn("Could not upload to device: " + err.Error())
			return nil
		}
	}
	return nil
}

func (a *AVR) extract(ctx context.Context, output string, args ...string) {
	if err := a.run(ctx, args...); err != nil {
		a.logger.Warn(fmt.Sprintf("Could not generate '%s'", output))
		return
	}
	a.logger.Info(fmt.Sprintf("Generated '%s'", output))
	a.size(ctx, output)
}

// size prints the section sizes of an image. Its failure is not an error.
func (a *AVR) size(ctx context.Context, image string) {
	if err := a.run(ctx, a.tool(avrSize), image); err != nil {
		a.logger.Debug("avr-size failed: " + err.Error())
	}
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
