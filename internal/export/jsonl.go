package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/cursor-threads/internal"
)

// JSONLExporter exports conversations in JSONL format (one turn per line)
type JSONLExporter struct{}

// Export exports a conversation to JSONL format
func (e *JSONLExporter) Export(conv *internal.Conversation, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, turn := range conv.Turns {
		obj := map[string]interface{}{
			"role": turn.Role,
			"text": turn.Text,
		}
		if turn.Timestamp > 0 {
			obj["timestamp"] = turn.Timestamp
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode turn: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
