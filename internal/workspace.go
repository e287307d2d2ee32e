package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WorkspaceEntry is one physical workspace record on disk, identified by its
// opaque directory name. Entries are discovered at query time and never
// persisted.
type WorkspaceEntry struct {
	ID           string    `json:"id"`
	FolderPath   string    `json:"folderPath,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// Name derives a display name from the folder path's last segment, falling
// back to a truncated id
func (w WorkspaceEntry) Name() string {
	if w.FolderPath != "" {
		return filepath.Base(w.FolderPath)
	}
	return shortID(w.ID)
}

// ScanWorkspaces enumerates workspace directories containing a store file.
// A missing workspaceStorage directory yields an empty list; a workspace
// without a readable workspace.json is still listed, just without a folder.
func ScanWorkspaces(workspaceStorage string) ([]WorkspaceEntry, error) {
	entries, err := os.ReadDir(workspaceStorage)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &StorageError{Path: workspaceStorage, Op: "read", Err: err}
	}

	var workspaces []WorkspaceEntry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		id := entry.Name()
		dbPath := filepath.Join(workspaceStorage, id, "state.vscdb")
		info, err := os.Stat(dbPath)
		if err != nil {
			LogDebug("skipping workspace %s: no store file", id)
			continue
		}

		ws := WorkspaceEntry{ID: id, LastModified: info.ModTime()}

		metaPath := filepath.Join(workspaceStorage, id, "workspace.json")
		if data, err := os.ReadFile(metaPath); err == nil {
			var meta struct {
				Folder string `json:"folder"`
			}
			if err := json.Unmarshal(data, &meta); err == nil {
				ws.FolderPath = strings.TrimPrefix(meta.Folder, "file://")
			} else {
				LogWarn("workspace %s: malformed workspace.json: %v", id, err)
			}
		}

		workspaces = append(workspaces, ws)
	}

	return workspaces, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
