package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// StorageFixture describes a fake Cursor storage root built for a test
type StorageFixture struct {
	Root        string // the Cursor User directory
	WorkspaceID string
}

// BuildStorageRoot creates a storage root with one workspace (folder
// /work/demo) and a global store filled with the given pairs. Pass nil for
// an empty global store.
func BuildStorageRoot(t *testing.T, globalPairs map[string]string) StorageFixture {
	t.Helper()

	root := t.TempDir()
	workspaceID := "a1b2c3d4e5f6"

	AddWorkspace(t, root, workspaceID, "/work/demo", nil)

	globalDir := filepath.Join(root, "globalStorage")
	if err := os.MkdirAll(globalDir, 0755); err != nil {
		t.Fatalf("Failed to create globalStorage: %v", err)
	}
	CreateGlobalDBFile(t, filepath.Join(globalDir, "state.vscdb"), globalPairs)

	return StorageFixture{Root: root, WorkspaceID: workspaceID}
}

// AddWorkspace adds one workspace directory (store file plus
// workspace.json) under the root. items go into the workspace store's
// ItemTable; folder may be empty to omit workspace.json.
func AddWorkspace(t *testing.T, root, workspaceID, folder string, items map[string]string) {
	t.Helper()

	dir := filepath.Join(root, "workspaceStorage", workspaceID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create workspace dir: %v", err)
	}

	CreateWorkspaceDBFile(t, filepath.Join(dir, "state.vscdb"), items)

	if folder != "" {
		meta, _ := json.Marshal(map[string]string{"folder": folder})
		if err := os.WriteFile(filepath.Join(dir, "workspace.json"), meta, 0644); err != nil {
			t.Fatalf("Failed to write workspace.json: %v", err)
		}
	}
}

// BreakWorkspaceDB overwrites a workspace's store file with garbage so
// opening it fails
func BreakWorkspaceDB(t *testing.T, root, workspaceID string) {
	t.Helper()
	dbPath := filepath.Join(root, "workspaceStorage", workspaceID, "state.vscdb")
	if err := os.WriteFile(dbPath, []byte("not a database"), 0644); err != nil {
		t.Fatalf("Failed to corrupt workspace db: %v", err)
	}
}
