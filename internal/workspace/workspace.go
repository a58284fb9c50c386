package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/stylepub/internal/logfields"
)

// Manager handles staging directories (both temporary and persistent).
type Manager struct {
	baseDir    string
	stagingDir string
	persistent bool // If true, use baseDir directly without timestamps
}

// NewManager creates a new workspace manager with ephemeral timestamped directories.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{
		baseDir:    baseDir,
		persistent: false,
	}
}

// NewPersistentManager creates a workspace manager that uses a persistent directory.
// The staging directory is fixed (baseDir/subdirName) and not cleaned up on Cleanup().
func NewPersistentManager(baseDir, subdirName string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if subdirName == "" {
		subdirName = "staging"
	}
	return &Manager{
		baseDir:    baseDir,
		stagingDir: filepath.Join(baseDir, subdirName),
		persistent: true,
	}
}

// Create creates the staging directory.
// For ephemeral mode: creates a timestamped directory.
// For persistent mode: ensures the fixed directory exists.
func (m *Manager) Create() error {
	if m.persistent {
		if err := os.MkdirAll(m.stagingDir, 0o750); err != nil {
			return fmt.Errorf("failed to create persistent staging directory: %w", err)
		}
		slog.Debug("Using persistent staging directory", logfields.Path(m.stagingDir))
		return nil
	}

	timestamp := time.Now().Format("20060102-150405")
	stagingDir := filepath.Join(m.baseDir, fmt.Sprintf("stylepub-%s", timestamp))

	if err := os.MkdirAll(stagingDir, 0o750); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	m.stagingDir = stagingDir
	slog.Debug("Created staging directory", logfields.Path(stagingDir))
	return nil
}

// GetPath returns the path to the staging directory.
func (m *Manager) GetPath() string {
	return m.stagingDir
}

// Cleanup removes the staging directory.
// For persistent mode: does nothing (keeps the hosting-branch checkout around).
// For ephemeral mode: removes the timestamped directory.
func (m *Manager) Cleanup() error {
	if m.stagingDir == "" {
		return nil
	}

	if m.persistent {
		slog.Debug("Skipping cleanup for persistent staging directory", logfields.Path(m.stagingDir))
		return nil
	}

	if err := os.RemoveAll(m.stagingDir); err != nil {
		return fmt.Errorf("failed to cleanup staging directory: %w", err)
	}

	slog.Debug("Cleaned up staging directory", logfields.Path(m.stagingDir))
	m.stagingDir = ""
	return nil
}

// CreateSubdir creates a subdirectory within the staging directory.
func (m *Manager) CreateSubdir(name string) (string, error) {
	if m.stagingDir == "" {
		return "", fmt.Errorf("staging directory not created")
	}

	subdir := filepath.Join(m.stagingDir, name)
	if err := os.MkdirAll(subdir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	return subdir, nil
}
