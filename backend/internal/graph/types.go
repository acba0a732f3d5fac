package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"boardgame-advisor/backend/internal/knowledge"
)

// gameRow is one game as read back from the graph.
type gameRow struct {
	id    string
	facts knowledge.GameFacts
}

func gameRowFromRecord(record *neo4j.Record) gameRow {
	return gameRow{
		id: getStringFromRecord(record, "id"),
		facts: knowledge.GameFacts{
			Genres:    getStringSliceFromRecord(record, "genres"),
			Mechanics: getStringSliceFromRecord(record, "mechanics"),
			Designers: getStringSliceFromRecord(record, "designers"),
		},
	}
}

func filterRows(rows []gameRow, keep func(knowledge.GameFacts) bool) []string {
	ids := []string{}
	for _, row := range rows {
		if keep(row.facts) {
			ids = append(ids, row.id)
		}
	}
	return ids
}

// gameParams builds the parameters for writeGameQuery.
func gameParams(id string, ordinal int, facts knowledge.GameFacts) map[string]interface{} {
	return map[string]interface{}{
		"id":        id,
		"ordinal":   ordinal,
		"genres":    facts.Genres,
		"mechanics": facts.Mechanics,
		"designers": facts.Designers,
	}
}
