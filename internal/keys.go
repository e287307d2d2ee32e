package internal

import "strings"

// Record kinds stored in the global cursorDiskKV table. The kind prefix of a
// key fully determines how its value is decoded; unknown kinds are ignored.
const (
	KindBubble   = "bubbleId"
	KindComposer = "composerData"
	KindContext  = "messageRequestContext"
	KindDiff     = "codeBlockDiff"
)

// RecordKey is the parsed form of a composite kind:id[:subId] storage key.
// Keys are parsed once at the storage boundary; downstream code only ever
// sees RecordKey values.
type RecordKey struct {
	Kind           string
	ConversationID string
	SubID          string
}

// ParseRecordKey parses a composite key string. It returns false for keys
// that do not carry a recognized kind or the expected number of segments.
func ParseRecordKey(key string) (RecordKey, bool) {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return RecordKey{}, false
	}

	rk := RecordKey{Kind: parts[0], ConversationID: parts[1]}
	if len(parts) > 2 {
		rk.SubID = parts[2]
	}

	switch rk.Kind {
	case KindBubble, KindContext, KindDiff:
		// two-identifier kinds: kind:<conversationId>:<subId>
		if rk.SubID == "" {
			return RecordKey{}, false
		}
	case KindComposer:
		// single-identifier kind: kind:<conversationId>
		if len(parts) != 2 {
			return RecordKey{}, false
		}
	default:
		return RecordKey{}, false
	}

	if rk.ConversationID == "" {
		return RecordKey{}, false
	}
	return rk, true
}

// ScanPrefix returns the cursorDiskKV scan prefix for a record kind
func ScanPrefix(kind string) string {
	return kind + ":"
}
