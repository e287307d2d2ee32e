package internal

import (
	"os"
	"time"
)

// Engine is the reconstruction engine behind every external operation. Each
// call is query-scoped: it opens its own read-only store handles, releases
// them on every exit path, and caches nothing across calls.
type Engine struct {
	paths StoragePaths
	home  string
	now   func() time.Time
}

// NewEngine creates an engine over the given storage paths
func NewEngine(paths StoragePaths) *Engine {
	home, err := os.UserHomeDir()
	if err != nil {
		LogWarn("failed to resolve home directory, path normalization disabled: %v", err)
		home = ""
	}
	return &Engine{paths: paths, home: home, now: time.Now}
}

// queryResult holds everything one reconstruction pass produces
type queryResult struct {
	entries       []WorkspaceEntry
	conversations []*Conversation // merged and deduplicated
}

// ListProjects returns all known projects sorted by last-modified
// descending, including projects with zero attributed conversations
func (e *Engine) ListProjects() ([]Project, error) {
	result, err := e.load()
	if err != nil {
		return nil, err
	}
	return BuildProjects(result.entries, result.conversations), nil
}

// ListConversations returns conversations sorted by timestamp descending.
// An empty projectID returns all conversations, unattributed ones included.
func (e *Engine) ListConversations(projectID string) ([]*Conversation, error) {
	result, err := e.load()
	if err != nil {
		return nil, err
	}

	conversations := result.conversations
	if projectID != "" {
		conversations = FilterByProject(conversations, projectID)
	}
	SortConversations(conversations)
	return conversations, nil
}

// GetConversation returns one assembled conversation, or a NotFoundError
// distinct from an empty-but-existing result
func (e *Engine) GetConversation(id string) (*Conversation, error) {
	result, err := e.load()
	if err != nil {
		return nil, err
	}

	for _, conv := range result.conversations {
		if conv.ID == id {
			return conv, nil
		}
	}
	return nil, &NotFoundError{Kind: "conversation", ID: id}
}

// ListWorkspaceEntries returns the physical workspace entries on disk
func (e *Engine) ListWorkspaceEntries() ([]WorkspaceEntry, error) {
	if err := e.checkRoot(); err != nil {
		return nil, err
	}
	return ScanWorkspaces(e.paths.WorkspaceStorage)
}

func (e *Engine) checkRoot() error {
	if !e.paths.RootExists() {
		return &RootError{Path: e.paths.BasePath, Err: os.ErrNotExist}
	}
	return nil
}

// load performs one full reconstruction pass: scan workspaces, decode the
// global store, assemble and attribute conversations, convert legacy
// records, merge.
func (e *Engine) load() (*queryResult, error) {
	if err := e.checkRoot(); err != nil {
		return nil, err
	}

	entries, err := ScanWorkspaces(e.paths.WorkspaceStorage)
	if err != nil {
		return nil, err
	}

	global := e.loadGlobal(entries)
	legacy := e.loadLegacy(entries)

	return &queryResult{
		entries:       entries,
		conversations: MergeConversations(global, legacy),
	}, nil
}

// loadGlobal decodes and assembles every conversation of the global store.
// A missing or broken global store contributes zero conversations.
func (e *Engine) loadGlobal(entries []WorkspaceEntry) []*Conversation {
	if !e.paths.GlobalStorageExists() {
		LogDebug("no global store at %s", e.paths.GlobalStorageDBPath())
		return nil
	}

	db, err := OpenDatabase(e.paths.GlobalStorageDBPath())
	if err != nil {
		LogWarn("failed to open global store: %v", err)
		return nil
	}
	defer db.Close()

	bubbles := make(map[string]*RawBubble)
	var composers []*RawComposer
	contexts := make(map[string][]*MessageContext)
	diffs := make(map[string][]*CodeDiffEvent)

	for _, kind := range []string{KindBubble, KindComposer, KindContext, KindDiff} {
		pairs, err := ScanByPrefix(db, ScanPrefix(kind))
		if err != nil {
			LogWarn("global store scan for %s failed: %v", kind, err)
			continue
		}

		for _, pair := range pairs {
			key, ok := ParseRecordKey(pair.Key)
			if !ok {
				continue
			}

			// Every decoder is tolerant: a malformed record is dropped,
			// never the batch.
			switch key.Kind {
			case KindBubble:
				if bubble, err := ParseRawBubble(key, pair.Value); err == nil {
					bubbles[bubble.BubbleID] = bubble
				} else {
					LogDebug("%v", err)
				}
			case KindComposer:
				if composer, err := ParseRawComposer(key, pair.Value); err == nil {
					composers = append(composers, composer)
				} else {
					LogDebug("%v", err)
				}
			case KindContext:
				if ctx, err := ParseMessageContext(key, pair.Value); err == nil {
					contexts[ctx.ComposerID] = append(contexts[ctx.ComposerID], ctx)
				} else {
					LogDebug("%v", err)
				}
			case KindDiff:
				if diff, err := ParseCodeDiffEvent(key, pair.Value); err == nil {
					diffs[diff.ComposerID] = append(diffs[diff.ComposerID], diff)
				} else {
					LogDebug("%v", err)
				}
			}
		}
	}

	LogDebug("global store: %d bubbles, %d composers, %d context groups, %d diff groups",
		len(bubbles), len(composers), len(contexts), len(diffs))

	resolver := NewResolver(entries, e.home)
	assembler := NewAssembler(bubbles, diffs, contexts)
	assembler.now = e.now

	return assembler.AssembleAll(composers, resolver)
}

// loadLegacy converts the legacy chat records of every workspace. A broken
// workspace store contributes zero conversations and never aborts the rest.
func (e *Engine) loadLegacy(entries []WorkspaceEntry) []*Conversation {
	var conversations []*Conversation

	for _, entry := range entries {
		dbPath := e.paths.WorkspaceDBPath(entry.ID)
		db, err := OpenDatabase(dbPath)
		if err != nil {
			LogWarn("skipping workspace %s: %v", entry.ID, err)
			continue
		}

		convs, err := LoadLegacyConversations(db, entry.ID, e.now)
		db.Close()
		if err != nil {
			LogWarn("workspace %s: legacy load failed: %v", entry.ID, err)
			continue
		}

		conversations = append(conversations, convs...)
	}

	return conversations
}
