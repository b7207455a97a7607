package pqerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	bare := &pq.Error{Code: "40001"}
	assert.True(t, IsSerializationFailure(bare))

	wrapped := fmt.Errorf("txmanager: commit: %w", bare)
	assert.True(t, IsSerializationFailure(wrapped))

	// обёртка репозитория теряет *pq.Error, но сохраняет sentinel
	repoStyle := WrapDriver(errors.New("place.repository: failed to scan row"), "ClaimFree", "scan place", bare)
	assert.True(t, IsSerializationFailure(repoStyle))
	assert.False(t, errors.As(repoStyle, new(*pq.Error)))

	assert.False(t, IsSerializationFailure(nil))
	assert.False(t, IsSerializationFailure(errors.New("boom")))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "40001"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestWrapDriver(t *testing.T) {
	sentinel := errors.New("candidat.repository: failed to execute query")

	err := WrapDriver(sentinel, "SetVIP", "execute", errors.New("connection reset"))
	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, "candidat.repository: failed to execute query: SetVIP - execute: connection reset", err.Error())

	err = WrapDriver(sentinel, "SetVIP", "execute", &pq.Error{Code: "40001"})
	assert.False(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, ErrSerialization))
}
