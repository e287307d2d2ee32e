package internal

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
)

// Resolver maps a conversation to the workspace it logically belongs to,
// using a tiered evidence search. Indices are built once per query and read
// only afterwards.
type Resolver struct {
	byFolderName map[string]string
	folders      []projectFolder
	home         string
}

type projectFolder struct {
	id   string
	path string // normalized
}

// NewResolver builds a resolver over the known workspaces. home is the
// runtime home directory, stripped from paths before comparison; it is a
// parameter rather than a hardcoded prefix so tests can pin it.
func NewResolver(entries []WorkspaceEntry, home string) *Resolver {
	r := &Resolver{
		byFolderName: make(map[string]string, len(entries)),
		home:         strings.TrimSuffix(home, "/"),
	}

	for _, entry := range entries {
		if entry.FolderPath == "" {
			continue
		}
		name := filepath.Base(entry.FolderPath)
		if _, taken := r.byFolderName[name]; !taken {
			r.byFolderName[name] = entry.ID
		}
		r.folders = append(r.folders, projectFolder{id: entry.ID, path: r.normalize(entry.FolderPath)})
	}

	return r
}

// Resolve returns the owning workspace id for a conversation, or "" when all
// evidence tiers exhaust without a match. Tiers are evaluated in strict
// order and the first match wins.
func (r *Resolver) Resolve(composer *RawComposer, contexts []*MessageContext, bubbles map[string]*RawBubble) string {
	if id := r.resolveFromLayouts(contexts); id != "" {
		return id
	}
	if id := r.resolveFromNewFiles(composer); id != "" {
		return id
	}
	if id := r.resolveFromCodeBlocks(composer); id != "" {
		return id
	}
	return r.resolveFromBubbles(composer, bubbles)
}

// tier 1: explicit layout hints recorded with the conversation's contexts
func (r *Resolver) resolveFromLayouts(contexts []*MessageContext) string {
	for _, ctx := range contexts {
		for _, hint := range ctx.ProjectLayouts {
			var layout ProjectLayout
			if err := json.Unmarshal([]byte(hint), &layout); err != nil {
				LogDebug("unparsable project layout hint: %v", err)
				continue
			}
			if layout.RootPath == "" {
				continue
			}
			if id, ok := r.byFolderName[filepath.Base(layout.RootPath)]; ok {
				return id
			}
		}
	}
	return ""
}

// tier 2: paths of files the conversation created
func (r *Resolver) resolveFromNewFiles(composer *RawComposer) string {
	for _, hint := range composer.NewlyCreatedFiles {
		if id := r.matchFolder(hint.Path); id != "" {
			return id
		}
	}
	return ""
}

// tier 3: keys of the code-block-location map
func (r *Resolver) resolveFromCodeBlocks(composer *RawComposer) string {
	if len(composer.CodeBlockData) == 0 {
		return ""
	}
	paths := make([]string, 0, len(composer.CodeBlockData))
	for path := range composer.CodeBlockData {
		paths = append(paths, path)
	}
	sort.Strings(paths) // map order is not deterministic

	for _, path := range paths {
		if id := r.matchFolder(path); id != "" {
			return id
		}
	}
	return ""
}

// tier 4: file references embedded in the conversation's bubbles, walking
// turn headers in order; per bubble the three reference shapes are checked
// in order: plain paths, attached chunks, context file selections
func (r *Resolver) resolveFromBubbles(composer *RawComposer, bubbles map[string]*RawBubble) string {
	for _, header := range composer.Headers() {
		bubble, ok := bubbles[header.BubbleID]
		if !ok {
			continue
		}

		for _, path := range bubble.RelevantFiles {
			if id := r.matchFolder(path); id != "" {
				return id
			}
		}
		for _, chunk := range bubble.AttachedCodeChunks {
			if id := r.matchFolder(chunk.URI.PathValue()); id != "" {
				return id
			}
		}
		if bubble.Context != nil {
			for _, sel := range bubble.Context.FileSelections {
				if id := r.matchFolder(sel.URI.PathValue()); id != "" {
					return id
				}
			}
		}
	}
	return ""
}

// matchFolder tests whether path is a prefix-extension of any known project
// folder after normalization
func (r *Resolver) matchFolder(path string) string {
	if path == "" {
		return ""
	}
	normalized := r.normalize(path)
	for _, folder := range r.folders {
		if folder.path == "" {
			continue
		}
		if normalized == folder.path || strings.HasPrefix(normalized, folder.path+"/") {
			return folder.id
		}
	}
	return ""
}

// normalize strips the file:// scheme and the runtime home-directory prefix
// before any comparison
func (r *Resolver) normalize(path string) string {
	path = strings.TrimPrefix(path, "file://")
	if r.home != "" && strings.HasPrefix(path, r.home) {
		path = strings.TrimPrefix(path, r.home)
		path = strings.TrimPrefix(path, "/")
	}
	return strings.TrimSuffix(path, "/")
}
