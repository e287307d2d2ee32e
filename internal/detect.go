package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// StoragePaths holds the resolved locations of Cursor's on-disk storage
type StoragePaths struct {
	BasePath         string // Cursor User directory
	WorkspaceStorage string // per-workspace stores live under here
	GlobalStorage    string // shared global store directory
}

// DetectStoragePaths detects the Cursor storage paths for the current OS
func DetectStoragePaths() (StoragePaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return StoragePaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	var basePath string
	switch runtime.GOOS {
	case "darwin":
		basePath = filepath.Join(home, "Library/Application Support/Cursor/User")
	case "linux":
		basePath = filepath.Join(home, ".config/Cursor/User")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		basePath = filepath.Join(appData, "Cursor", "User")
	default:
		return StoragePaths{}, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	return NewStoragePaths(basePath), nil
}

// NewStoragePaths builds StoragePaths rooted at the given Cursor User directory
func NewStoragePaths(basePath string) StoragePaths {
	return StoragePaths{
		BasePath:         basePath,
		WorkspaceStorage: filepath.Join(basePath, "workspaceStorage"),
		GlobalStorage:    filepath.Join(basePath, "globalStorage"),
	}
}

// GetStoragePaths resolves storage paths, preferring the explicit override
// (--storage flag or CURSOR_THREADS_STORAGE_PATH) over per-OS detection.
func GetStoragePaths(override string) (StoragePaths, error) {
	if override != "" {
		return NewStoragePaths(expandTilde(override)), nil
	}
	return DetectStoragePaths()
}

// RootExists checks that the storage root directory is present
func (sp StoragePaths) RootExists() bool {
	info, err := os.Stat(sp.BasePath)
	return err == nil && info.IsDir()
}

// GlobalStorageDBPath returns the path to the global store file
func (sp StoragePaths) GlobalStorageDBPath() string {
	return filepath.Join(sp.GlobalStorage, "state.vscdb")
}

// GlobalStorageExists checks if the global store file exists
func (sp StoragePaths) GlobalStorageExists() bool {
	_, err := os.Stat(sp.GlobalStorageDBPath())
	return err == nil
}

// WorkspaceDBPath returns the store path for one workspace directory
func (sp StoragePaths) WorkspaceDBPath(workspaceID string) string {
	return filepath.Join(sp.WorkspaceStorage, workspaceID, "state.vscdb")
}

func expandTilde(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
