package internal

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LegacyChatDataKey is the ItemTable key holding the pre-global-store chat
// record in each workspace store
const LegacyChatDataKey = "workbench.panel.aichat.view.aichat.chatdata"

// LoadLegacyConversations reads the legacy chat tabs of one workspace store
// and converts them to conversations attributed to that workspace. A store
// without the record yields an empty list.
func LoadLegacyConversations(db *sql.DB, workspaceID string, now func() time.Time) ([]*Conversation, error) {
	pairs, err := GetByKeys(db, TableItemTable, LegacyChatDataKey)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	data, err := ParseLegacyChatData(workspaceID, pairs[0].Value)
	if err != nil {
		LogWarn("workspace %s: malformed legacy chat data: %v", workspaceID, err)
		return nil, nil
	}

	var conversations []*Conversation
	for _, tab := range data.Tabs {
		conv := convertLegacyTab(tab, workspaceID, now)
		if len(conv.Turns) > 0 {
			conversations = append(conversations, conv)
		}
	}

	return conversations, nil
}

func convertLegacyTab(tab LegacyChatTab, workspaceID string, now func() time.Time) *Conversation {
	id := tab.TabID
	if id == "" {
		// Old enough tabs predate tab ids entirely.
		id = uuid.NewString()
	}

	conv := &Conversation{
		ID:        id,
		ProjectID: workspaceID,
		Source:    SourceWorkspace,
		UpdatedAt: tab.LastSendTime,
	}

	for _, bubble := range tab.Bubbles {
		if strings.TrimSpace(bubble.Text) == "" {
			continue
		}
		role := "assistant"
		if bubble.Type == "user" {
			role = "user"
		}
		// Legacy bubbles carry no individual timestamps; the tab's last
		// send time keeps them ordered among themselves by insertion.
		conv.Turns = append(conv.Turns, Turn{
			Role:      role,
			Text:      bubble.Text,
			Timestamp: tab.LastSendTime,
		})
	}

	conv.Title = resolveTitle(tab.ChatTitle, conv.Turns, id)
	conv.Timestamp = resolveTimestamp(tab.LastSendTime, 0, now().UnixMilli())

	return conv
}
