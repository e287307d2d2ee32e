package internal

import (
	"encoding/json"
	"time"
)

// RawBubble represents one message bubble from the global store. Fields other
// than the identifiers are all optional; the decoder never fails on absence.
type RawBubble struct {
	BubbleID           string          `json:"bubbleId"`
	ChatID             string          `json:"chatId"`
	Text               string          `json:"text,omitempty"`
	RichText           string          `json:"richText,omitempty"`
	CodeBlocks         []CodeBlock     `json:"codeBlocks,omitempty"`
	RelevantFiles      []string        `json:"relevantFiles,omitempty"`
	AttachedCodeChunks []AttachedChunk `json:"attachedCodeChunks,omitempty"`
	Context            *BubbleContext  `json:"context,omitempty"`
	Timestamp          int64           `json:"timestamp,omitempty"`
	Type               int             `json:"type,omitempty"` // 1=user, 2=assistant
}

// CodeBlock represents a code block attached to a message
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// AttachedChunk is a code chunk attached to a bubble by URI
type AttachedChunk struct {
	URI URIRef `json:"uri"`
}

// BubbleContext carries the per-bubble context block, of which only the file
// selections matter for attribution
type BubbleContext struct {
	FileSelections []FileSelection `json:"fileSelections,omitempty"`
}

// FileSelection is one selected file reference in a bubble context
type FileSelection struct {
	URI URIRef `json:"uri"`
}

// URIRef is the duck-typed file reference shape the store uses. Either field
// may carry the path.
type URIRef struct {
	FSPath string `json:"fsPath,omitempty"`
	Path   string `json:"path,omitempty"`
}

// PathValue returns whichever path field is populated
func (u URIRef) PathValue() string {
	if u.FSPath != "" {
		return u.FSPath
	}
	return u.Path
}

// RawComposer represents a conversation header record from the global store
type RawComposer struct {
	ComposerID                  string                     `json:"composerId"`
	Name                        string                     `json:"name,omitempty"`
	FullConversationHeadersOnly []ConversationHeader       `json:"fullConversationHeadersOnly,omitempty"`
	Conversation                []ConversationHeader       `json:"conversation,omitempty"` // pre-headers schema
	NewlyCreatedFiles           []FileHint                 `json:"newlyCreatedFiles,omitempty"`
	CodeBlockData               map[string]json.RawMessage `json:"codeBlockData,omitempty"`
	CreatedAt                   int64                      `json:"createdAt,omitempty"`
	LastUpdatedAt               int64                      `json:"lastUpdatedAt,omitempty"`
}

// Headers returns the conversation's turn headers, falling back to the older
// conversation[] array when the headers-only list is absent.
func (rc *RawComposer) Headers() []ConversationHeader {
	if len(rc.FullConversationHeadersOnly) > 0 {
		return rc.FullConversationHeadersOnly
	}
	return rc.Conversation
}

// GetCreatedAt returns the creation time, zero when unset
func (rc *RawComposer) GetCreatedAt() time.Time {
	if rc.CreatedAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(rc.CreatedAt)
}

// GetLastUpdatedAt returns the last-updated time, falling back to creation
func (rc *RawComposer) GetLastUpdatedAt() time.Time {
	if rc.LastUpdatedAt == 0 {
		return rc.GetCreatedAt()
	}
	return time.UnixMilli(rc.LastUpdatedAt)
}

// ConversationHeader names one turn of a conversation by bubble id
type ConversationHeader struct {
	BubbleID string `json:"bubbleId"`
	Type     int    `json:"type"` // 1=user, 2=assistant
}

// FileHint is a file path recorded either as a bare string or as an object
// with a path/uri field, depending on schema vintage
type FileHint struct {
	Path string
}

// UnmarshalJSON accepts both shapes
func (f *FileHint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	var obj struct {
		Path string `json:"path,omitempty"`
		URI  URIRef `json:"uri,omitempty"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Path != "" {
		f.Path = obj.Path
	} else {
		f.Path = obj.URI.PathValue()
	}
	return nil
}

// MessageContext represents request-context metadata tied to one
// (conversation, bubble) pair. Every section is independently optional.
type MessageContext struct {
	ComposerID           string                `json:"composerId"`
	BubbleID             string                `json:"bubbleId"`
	ContextID            string                `json:"contextId,omitempty"`
	GitStatus            string                `json:"gitStatusRaw,omitempty"`
	TerminalFiles        []string              `json:"terminalFiles,omitempty"`
	AttachedFolders      []AttachedFolder      `json:"attachedFoldersListDirResults,omitempty"`
	Rules                []RuleRef             `json:"cursorRules,omitempty"`
	RelatedConversations []RelatedConversation `json:"summarizedComposers,omitempty"`
	ProjectLayouts       []string              `json:"projectLayouts,omitempty"`
}

// AttachedFolder is one attached folder with its directory listing
type AttachedFolder struct {
	RelativePath string   `json:"relativeWorkspacePath,omitempty"`
	Files        []string `json:"files,omitempty"`
}

// RuleRef names one applicable rule
type RuleRef struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// RelatedConversation is a summarized reference to another conversation
type RelatedConversation struct {
	Name    string `json:"name,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// ProjectLayout is the decoded form of one layout hint string
type ProjectLayout struct {
	RootPath string `json:"rootPath,omitempty"`
}

// CodeDiffEvent is a tool/diff action tied to a conversation. All payload
// fields are independently optional; presence of any one triggers a
// formatting rule and absence is silently skipped.
type CodeDiffEvent struct {
	ComposerID       string          `json:"-"`
	DiffID           string          `json:"-"`
	CodeChanges      []CodeChange    `json:"codeChanges,omitempty"`
	FilePath         string          `json:"filePath,omitempty"`
	Command          string          `json:"command,omitempty"`
	CommandOutput    string          `json:"commandOutput,omitempty"`
	SearchResults    []SearchResult  `json:"searchResults,omitempty"`
	WebResults       []WebResult     `json:"webResults,omitempty"`
	Tool             *ToolCall       `json:"tool,omitempty"`
	ActionsTaken     []string        `json:"actionsTaken,omitempty"`
	FilesModified    []string        `json:"filesModified,omitempty"`
	GitStatus        string          `json:"gitStatus,omitempty"`
	DirectoryListing []string        `json:"directoryListing,omitempty"`
	WebSearchResults []WebResult     `json:"webSearchResults,omitempty"`
}

// CodeChange is one file edit inside a diff event
type CodeChange struct {
	Language string `json:"language,omitempty"`
	FilePath string `json:"filePath,omitempty"`
	Content  string `json:"content,omitempty"`
}

// SearchResult is one codebase search hit
type SearchResult struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// WebResult is one web result reference
type WebResult struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// ToolCall captures a named tool invocation with its raw parameters
type ToolCall struct {
	Name       string          `json:"name,omitempty"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
	Result     string          `json:"result,omitempty"`
}

// LegacyChatData is the pre-global-store chat record kept per workspace
type LegacyChatData struct {
	Tabs []LegacyChatTab `json:"tabs"`
}

// LegacyChatTab is one chat tab of the legacy schema
type LegacyChatTab struct {
	TabID        string         `json:"tabId,omitempty"`
	ChatTitle    string         `json:"chatTitle,omitempty"`
	LastSendTime int64          `json:"lastSendTime,omitempty"`
	Bubbles      []LegacyBubble `json:"bubbles,omitempty"`
}

// LegacyBubble is one message of a legacy chat tab
type LegacyBubble struct {
	Type string `json:"type"` // "user" or "ai"
	Text string `json:"text,omitempty"`
}

// ParseRawBubble decodes a bubble record. Identifiers come from the parsed
// key, never from the payload.
func ParseRawBubble(key RecordKey, value string) (*RawBubble, error) {
	var bubble RawBubble
	if err := json.Unmarshal([]byte(value), &bubble); err != nil {
		return nil, &ParseError{Source: "globalStorage", Key: key.Kind + ":" + key.ConversationID + ":" + key.SubID, Err: err}
	}

	bubble.ChatID = key.ConversationID
	bubble.BubbleID = key.SubID
	return &bubble, nil
}

// ParseRawComposer decodes a conversation header record
func ParseRawComposer(key RecordKey, value string) (*RawComposer, error) {
	var composer RawComposer
	if err := json.Unmarshal([]byte(value), &composer); err != nil {
		return nil, &ParseError{Source: "globalStorage", Key: key.Kind + ":" + key.ConversationID, Err: err}
	}

	composer.ComposerID = key.ConversationID
	return &composer, nil
}

// ParseMessageContext decodes a request-context record. The conversation id
// comes from the key; the bubble id from the payload with the key's sub id
// as fallback.
func ParseMessageContext(key RecordKey, value string) (*MessageContext, error) {
	var context MessageContext
	if err := json.Unmarshal([]byte(value), &context); err != nil {
		return nil, &ParseError{Source: "globalStorage", Key: key.Kind + ":" + key.ConversationID + ":" + key.SubID, Err: err}
	}

	context.ComposerID = key.ConversationID
	if context.BubbleID == "" {
		context.BubbleID = key.SubID
	}
	return &context, nil
}

// ParseCodeDiffEvent decodes a code-diff record
func ParseCodeDiffEvent(key RecordKey, value string) (*CodeDiffEvent, error) {
	var diff CodeDiffEvent
	if err := json.Unmarshal([]byte(value), &diff); err != nil {
		return nil, &ParseError{Source: "globalStorage", Key: key.Kind + ":" + key.ConversationID + ":" + key.SubID, Err: err}
	}

	diff.ComposerID = key.ConversationID
	diff.DiffID = key.SubID
	return &diff, nil
}

// ParseLegacyChatData decodes the legacy per-workspace chat record
func ParseLegacyChatData(workspaceID, value string) (*LegacyChatData, error) {
	var data LegacyChatData
	if err := json.Unmarshal([]byte(value), &data); err != nil {
		return nil, &ParseError{Source: "workspaceStorage", Key: workspaceID, Err: err}
	}
	return &data, nil
}
