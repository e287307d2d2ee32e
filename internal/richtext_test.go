package internal

import "testing"

func TestFlattenRichText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "root envelope",
			input: `{"root":{"children":[{"type":"text","text":"Hello"}]}}`,
			want:  "Hello",
		},
		{
			name:  "bare node",
			input: `{"children":[{"type":"text","text":"World"}]}`,
			want:  "World",
		},
		{
			name:  "code node fenced",
			input: `{"root":{"children":[{"type":"code","children":[{"type":"text","text":"package main"}]}]}}`,
			want:  "\n```\npackage main\n```\n",
		},
		{
			name:  "multiple text nodes concatenated",
			input: `{"root":{"children":[{"type":"text","text":"Hello"},{"type":"text","text":" World"}]}}`,
			want:  "Hello World",
		},
		{
			name:  "nested paragraph nodes",
			input: `{"root":{"children":[{"type":"paragraph","children":[{"type":"text","text":"line one"}]},{"type":"paragraph","children":[{"type":"text","text":"line two"}]}]}}`,
			want:  "line oneline two",
		},
		{
			name:  "node array",
			input: `[{"type":"text","text":"a"},{"type":"text","text":"b"}]`,
			want:  "ab",
		},
		{
			name:  "empty code node dropped",
			input: `{"root":{"children":[{"type":"code","children":[]}]}}`,
			want:  "",
		},
		{
			name:    "invalid JSON",
			input:   `{invalid}`,
			wantErr: true,
		},
		{
			name:  "unknown object shape",
			input: `{"unknown":"format"}`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FlattenRichText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FlattenRichText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FlattenRichText() = %q, want %q", got, tt.want)
			}
		})
	}
}
