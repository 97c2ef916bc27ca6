package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siso/internal/domain/entity"
	"siso/internal/infrastructure/metrics"
	"siso/pkg/errors"
)

func TestFindMatches(t *testing.T) {
	matcher := &fakeMatcher{results: []entity.MatchResult{{Name: "Ben", CompatibilityScore: 0.8}}}
	uc := NewMatchUseCase(matcher, &fakeLimiter{}, metrics.New())

	got, err := uc.FindMatches(context.Background(), "u1", "a bassist", "guitarist")
	require.NoError(t, err)
	assert.Equal(t, "Ben", got[0].Name)
}

func TestFindMatchesValidation(t *testing.T) {
	matcher := &fakeMatcher{}
	uc := NewMatchUseCase(matcher, nil, nil)

	_, err := uc.FindMatches(context.Background(), "u1", " ", "guitarist")
	assert.True(t, errors.Is(err, errors.CodeMissingField))
	_, err = uc.FindMatches(context.Background(), "u1", "bassist", "")
	assert.True(t, errors.Is(err, errors.CodeMissingField))
	assert.Zero(t, matcher.calls)
}

func TestFindMatchesFailureIsGeneric(t *testing.T) {
	uc := NewMatchUseCase(&fakeMatcher{err: stderrors.New("401 invalid api key")}, nil, nil)

	_, err := uc.FindMatches(context.Background(), "u1", "bassist", "guitarist")
	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, matchFailureMessage, appErr.Message)
	assert.NotContains(t, appErr.Message, "api key")
}

func TestFindMatchesUnconfiguredAndLimited(t *testing.T) {
	uc := NewMatchUseCase(nil, nil, nil)
	_, err := uc.FindMatches(context.Background(), "u1", "bassist", "guitarist")
	assert.True(t, errors.Is(err, errors.CodeConfiguration))

	uc = NewMatchUseCase(&fakeMatcher{}, &fakeLimiter{deny: true}, nil)
	_, err = uc.FindMatches(context.Background(), "u1", "bassist", "guitarist")
	assert.True(t, errors.Is(err, errors.CodeTooManyRequests))
}
