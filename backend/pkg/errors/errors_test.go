package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsErrorType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"typed ontology error", NewOntologyFormat("a.owl", errors.New("bad")), ErrorTypeOntology, true},
		{"wrapped game not found", fmt.Errorf("lookup: %w", NewGameNotFound("catan")), ErrorTypeKnowledge, true},
		{"wrong type", NewGameNotFound("catan"), ErrorTypeGraph, false},
		{"plain error", errors.New("boom"), ErrorTypeKnowledge, false},
		{"nil", nil, ErrorTypeKnowledge, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsErrorType(tt.err, tt.errType))
		})
	}
}

func TestOntologyAccess_PreservesOSError(t *testing.T) {
	err := NewOntologyAccess("missing.owl", fs.ErrNotExist)

	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.owl")
	assert.Equal(t, "missing.owl", err.Path)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewGameNotFound("azul")))
	assert.True(t, IsNotFound(fmt.Errorf("info: %w", NewGameNotFound("azul"))))
	assert.False(t, IsNotFound(NewInputInvalid("too short")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewGraphConnectionFailed("bolt://localhost:7687", errors.New("refused"))))
	assert.False(t, IsRetryable(NewGraphQueryFailed("games_by_genre", errors.New("syntax"))))
	assert.False(t, IsRetryable(NewOntologyFormat("a.owl", nil)))
}
