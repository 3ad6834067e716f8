package graph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/casefile/internal/core/model"
)

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDOT(&buf, "case-1", []model.Edge{
		{Source: "Bloody Knife", SourceLabel: "Item", Type: "FOUND_IN", Target: "Garden", TargetLabel: "Location"},
		{Source: "Thomas", SourceLabel: "Person", Type: "SEEN_AT", Target: "Garden", TargetLabel: "Location"},
		{Source: `O"Hara`, SourceLabel: "Person", Type: "KNOWS", Target: "Thomas", TargetLabel: "Person"},
	})
	require.NoError(t, err)

	assert.Equal(t, `digraph "case-1" {
  rankdir=LR;
  "Bloody Knife" [shape=diamond];
  "Garden" [shape=box];
  "Thomas" [shape=ellipse];
  "O\"Hara" [shape=ellipse];
  "Bloody Knife" -> "Garden" [label="FOUND_IN"];
  "Thomas" -> "Garden" [label="SEEN_AT"];
  "O\"Hara" -> "Thomas" [label="KNOWS"];
}
`, buf.String())
}

func TestWriteDOT_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, "empty", nil))
	assert.Equal(t, "digraph \"empty\" {\n  rankdir=LR;\n}\n", buf.String())
}
