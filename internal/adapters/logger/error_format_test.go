package logger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/cbuild/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "plain error",
			err:  errors.New("exit status 2"),
			want: []string{"exit status 2"},
		},
		{
			name: "zerr chain ends at the first plain error",
			err:  zerr.Wrap(zerr.Wrap(errors.New("no such file"), "failed to read build script"), "load failed"),
			want: []string{"load failed", "failed to read build script", "no such file"},
		},
		{
			name: "plain wrapper keeps its full text",
			err:  fmt.Errorf("linking: %w", zerr.New("undefined reference")),
			want: []string{"linking: undefined reference"},
		},
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntriesExported(tt.err)

			var got []string
			for _, e := range entries {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "nothing to build"}},
			want:    "Error: nothing to build",
		},
		{
			name: "causes are listed under the main error",
			entries: []logger.ErrorEntry{
				{Message: "compilation failed"},
				{Message: "command failed"},
				{Message: "exit status 1"},
			},
			want: "Error: compilation failed\n\n  Caused by:\n    → command failed\n    → exit status 1",
		},
		{
			name: "metadata is sorted and indented",
			entries: []logger.ErrorEntry{
				{
					Message:  "compilation failed",
					Metadata: map[string]any{"source": "src/main.c", "config": "debug"},
				},
				{
					Message:  "command failed",
					Metadata: map[string]any{"exit_code": 1},
				},
			},
			want: "Error: compilation failed\n" +
				"       config: debug\n" +
				"       source: src/main.c\n\n" +
				"  Caused by:\n" +
				"    → command failed\n" +
				"      exit_code: 1",
		},
		{
			name: "multiline messages keep their alignment",
			entries: []logger.ErrorEntry{
				{Message: "first\nsecond"},
				{Message: "cause\nmore"},
			},
			want: "Error: first\n       second\n\n  Caused by:\n    → cause\n      more",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}
