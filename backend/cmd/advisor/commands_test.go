package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/knowledge"
	apperrors "boardgame-advisor/backend/pkg/errors"
)

var ontologyPath = filepath.Join("..", "..", "ontology", "boardgames.owl")

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("KNOWLEDGE_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--ontology", ontologyPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestQueryCommand(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"gateway"}, []string{"ticket_to_ride", "azul", "lords_of_waterdeep", "hive", "seven_wonders", "forbidden_island"}},
		{[]string{"cooperative"}, []string{"pandemic", "codenames", "the_resistance", "spirit_island", "forbidden_island"}},
		{[]string{"deep-strategy"}, []string{"carcassonne", "agricola", "lords_of_waterdeep", "spirit_island", "blood_rage"}},
		{[]string{"complexity", "light"}, []string{"codenames", "dixit", "the_resistance"}},
		{[]string{"genre", "party"}, []string{"codenames", "dixit", "the_resistance"}},
		{[]string{"mechanic", "worker_placement"}, []string{"agricola", "lords_of_waterdeep", "stone_age"}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, "", append([]string{"query"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines(out))
		})
	}
}

func TestQueryCommand_All(t *testing.T) {
	out, err := execute(t, "", "query", "all")
	require.NoError(t, err)

	games := lines(out)
	assert.Len(t, games, 18)
	assert.Equal(t, "catan", games[0])
	assert.Equal(t, "blood_rage", games[17])
}

func TestQueryCommand_Errors(t *testing.T) {
	for name, args := range map[string][]string{
		"missing value":      {"query", "genre"},
		"unexpected value":   {"query", "gateway", "extra"},
		"unknown kind":       {"query", "bestsellers"},
		"invalid complexity": {"query", "complexity", "brutal"},
		"no kind":            {"query"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, "", args...)
			assert.Error(t, err)
		})
	}
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "", "info", "pandemic")
	require.NoError(t, err)
	assert.Contains(t, out, "Game:       pandemic\n")
	assert.Contains(t, out, "Genres:     cooperative\n")
	assert.Contains(t, out, "Complexity: medium\n")
}

func TestInfoCommand_JSON(t *testing.T) {
	out, err := execute(t, "", "info", "hive", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "hive"`)
	assert.Contains(t, out, `"complexity": "medium"`)
}

func TestInfoCommand_UnknownGame(t *testing.T) {
	_, err := execute(t, "", "info", "monopoly")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRecommendCommand(t *testing.T) {
	out, err := execute(t, "", "recommend", "Хочу", "простые", "партийные", "игры", "--limit", "2")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 2)
	assert.Equal(t, "1. codenames ★★★ (light)", got[0])
}

func TestRecommendCommand_Overrides(t *testing.T) {
	out, err := execute(t, "", "recommend", "family", "games", "please", "--complexity", "medium", "--coop")
	require.NoError(t, err)
	assert.Equal(t, []string{"1. forbidden_island ★★★ (medium)"}, lines(out))
}

func TestRecommendCommand_InvalidInput(t *testing.T) {
	_, err := execute(t, "", "recommend", "ab")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))
}

func TestRootCommand_RunsDialogue(t *testing.T) {
	out, err := execute(t, "Хочу простые партийные игры\n3\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Board game recommendations")
	assert.Contains(t, out, "1. CODENAMES\n")
}

func TestRunQuery_UsesBase(t *testing.T) {
	kb, err := knowledge.Load(ontologyPath, zap.NewNop())
	require.NoError(t, err)

	games, err := runQuery(context.Background(), kb, []string{"complexity", "HEAVY"})
	require.NoError(t, err)
	assert.Contains(t, games, "twilight_struggle")
	assert.NotContains(t, games, "hive")
}
