//go:build integration

package graph

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/casefile/internal/config"
	"github.com/agenthands/casefile/internal/core/model"
)

func openIntegrationStore(t *testing.T) *Store {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("MEMGRAPH_URI not set")
	}
	cfg := config.MemgraphConfig{
		URI:      uri,
		User:     os.Getenv("MEMGRAPH_USER"),
		Password: os.Getenv("MEMGRAPH_PASSWORD"),
	}

	ctx := context.Background()
	s := Open(ctx, cfg, "it-"+uuid.NewString(), discardLogger())
	require.True(t, s.IsActive(), "memgraph unreachable at %s", uri)
	require.NoError(t, s.BuildIndices(ctx))

	t.Cleanup(func() {
		_ = s.Reset(context.Background())
		_ = s.Close(context.Background())
	})
	return s
}

func TestIntegration_ResetThenReadIsEmpty(t *testing.T) {
	s := openIntegrationStore(t)
	ctx := context.Background()

	require.NoError(t, s.LoadCase(ctx, testCase()))
	clues, err := s.CluesAt(ctx, "Garden")
	require.NoError(t, err)
	require.Len(t, clues, 1)

	require.NoError(t, s.Reset(ctx))

	clues, err = s.CluesAt(ctx, "Garden")
	require.NoError(t, err)
	assert.Empty(t, clues)
	people, err := s.People(ctx)
	require.NoError(t, err)
	assert.Empty(t, people)
	_, found, err := s.Killer(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestIntegration_UpsertTwiceKeepsOneNode(t *testing.T) {
	s := openIntegrationStore(t)
	ctx := context.Background()

	name := `O'Hara "Red"`
	require.NoError(t, s.UpsertPerson(ctx, name, model.RoleSuspect, "first"))
	require.NoError(t, s.UpsertPerson(ctx, name, model.RoleSuspect, "second"))

	people, err := s.People(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, name, people[0].Name)
	assert.Equal(t, "second", people[0].Trait)

	require.NoError(t, s.UpsertPerson(ctx, "Ann", model.RoleSuspect, ""))
	require.NoError(t, s.UpsertRelationship(ctx, name, "Ann", "KNOWS", "old"))
	require.NoError(t, s.UpsertRelationship(ctx, name, "Ann", "knows", "new"))
	rels, err := s.RelationshipsOf(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, []model.RelationshipView{{Type: "KNOWS", Target: "Ann", Detail: "new"}}, rels)
}

func TestIntegration_CasesAreIsolated(t *testing.T) {
	s := openIntegrationStore(t)
	other := s.WithCase("it-" + uuid.NewString())
	ctx := context.Background()
	t.Cleanup(func() { _ = other.Reset(context.Background()) })

	require.NoError(t, s.LoadCase(ctx, testCase()))
	require.NoError(t, other.Reset(ctx))

	name, found, err := s.Killer(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Thomas", name)

	_, found, err = other.Killer(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestIntegration_WitnessesAndEdges(t *testing.T) {
	s := openIntegrationStore(t)
	ctx := context.Background()
	require.NoError(t, s.LoadCase(ctx, testCase()))

	wits, err := s.WitnessesAt(ctx, "Garden", "10:00 PM")
	require.NoError(t, err)
	assert.Equal(t, []model.PersonView{{Name: "Thomas", Role: model.RoleKiller, Time: "10:00 PM"}}, wits)

	wits, err = s.WitnessesAt(ctx, "Garden", "10:01 PM")
	require.NoError(t, err)
	assert.Empty(t, wits)

	edges, err := s.Edges(ctx)
	require.NoError(t, err)
	assert.Len(t, edges, 3) // FOUND_IN, SEEN_AT, RESENTS
}
