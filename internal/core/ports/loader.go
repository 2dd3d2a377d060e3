package ports

import "go.trai.ch/cbuild/internal/core/domain"

// ProjectLoader reads and interprets a build script.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type ProjectLoader interface {
	Load(scriptPath string) (*domain.Project, error)
}

// SettingsLoader reads the optional settings file located in dir.
type SettingsLoader interface {
	Load(dir string) (domain.Settings, error)
}

// SourceFinder enumerates the translation units of a project.
type SourceFinder interface {
	// Find lists the translation units in dirs followed by files, without duplicates.
	Find(dirs, files, exts []string) ([]string, error)
}
