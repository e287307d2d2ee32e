package internal

import (
	"sort"
	"time"
)

// Project is a workspace viewed as a displayable grouping of conversations.
// A project with zero attributed conversations is still valid and listed.
type Project struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	FolderPath        string    `json:"folderPath,omitempty"`
	ConversationCount int       `json:"conversationCount"`
	LastModified      time.Time `json:"lastModified"`
}

// MergeConversations merges global-store and legacy per-workspace
// conversations. Conversations present in both schemas are deduplicated by
// id, preferring the global-store version; provenance stays visible through
// the Source tag.
func MergeConversations(global, legacy []*Conversation) []*Conversation {
	merged := make([]*Conversation, 0, len(global)+len(legacy))
	seen := make(map[string]bool, len(global))

	for _, conv := range global {
		merged = append(merged, conv)
		seen[conv.ID] = true
	}
	for _, conv := range legacy {
		if seen[conv.ID] {
			LogDebug("conversation %s: dropping legacy duplicate of global record", conv.ID)
			continue
		}
		merged = append(merged, conv)
	}

	return merged
}

// SortConversations orders conversations by timestamp descending, with the
// id as tie-break for reproducible output
func SortConversations(conversations []*Conversation) {
	sort.SliceStable(conversations, func(i, j int) bool {
		if conversations[i].Timestamp != conversations[j].Timestamp {
			return conversations[i].Timestamp > conversations[j].Timestamp
		}
		return conversations[i].ID < conversations[j].ID
	})
}

// FilterByProject returns the conversations attributed to one project
func FilterByProject(conversations []*Conversation, projectID string) []*Conversation {
	var filtered []*Conversation
	for _, conv := range conversations {
		if conv.ProjectID == projectID {
			filtered = append(filtered, conv)
		}
	}
	return filtered
}

// BuildProjects derives the project list from workspace entries and the
// merged conversations, sorted by last-modified descending. Unattributed
// conversations count toward no project.
func BuildProjects(entries []WorkspaceEntry, conversations []*Conversation) []Project {
	counts := make(map[string]int)
	for _, conv := range conversations {
		if conv.ProjectID != "" {
			counts[conv.ProjectID]++
		}
	}

	projects := make([]Project, 0, len(entries))
	for _, entry := range entries {
		projects = append(projects, Project{
			ID:                entry.ID,
			Name:              entry.Name(),
			FolderPath:        entry.FolderPath,
			ConversationCount: counts[entry.ID],
			LastModified:      entry.LastModified,
		})
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if !projects[i].LastModified.Equal(projects[j].LastModified) {
			return projects[i].LastModified.After(projects[j].LastModified)
		}
		return projects[i].ID < projects[j].ID
	})

	return projects
}
