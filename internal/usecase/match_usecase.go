package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"siso/internal/domain/entity"
	"siso/internal/domain/service"
	"siso/internal/infrastructure/metrics"
	"siso/internal/infrastructure/ratelimit"
	"siso/pkg/errors"
	"siso/pkg/logger"
)

const matchFailureMessage = "An unexpected error occurred while finding matches. Please try again later."

type MatchUseCase struct {
	matcher service.Matcher
	limiter RateLimiter
	metrics *metrics.Metrics
}

// NewMatchUseCase accepts a nil matcher when no model is configured; every
// call then fails with a configuration error.
func NewMatchUseCase(matcher service.Matcher, limiter RateLimiter, m *metrics.Metrics) *MatchUseCase {
	return &MatchUseCase{
		matcher: matcher,
		limiter: limiter,
		metrics: m,
	}
}

func (uc *MatchUseCase) FindMatches(ctx context.Context, userID, needs, userProfile string) ([]entity.MatchResult, error) {
	needs = strings.TrimSpace(needs)
	userProfile = strings.TrimSpace(userProfile)
	if needs == "" {
		return nil, errors.MissingField("needs")
	}
	if userProfile == "" {
		return nil, errors.MissingField("user_profile")
	}
	if uc.matcher == nil {
		return nil, errors.Configuration("AI matchmaking is not configured")
	}

	if uc.limiter != nil {
		if ok, wait := uc.limiter.Allow(userID, ratelimit.ActionAIMatch); !ok {
			return nil, errors.TooManyRequests("Too many match requests. Please wait before trying again.", int(math.Ceil(wait.Seconds())))
		}
	}

	start := time.Now()
	matches, err := uc.matcher.Match(ctx, needs, userProfile)
	if uc.metrics != nil {
		uc.metrics.AIMatchDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		logger.Error("Matchmaking for %s failed: %v", userID, err)
		return nil, errors.Internal(matchFailureMessage, err)
	}
	if matches == nil {
		matches = []entity.MatchResult{}
	}
	return matches, nil
}
