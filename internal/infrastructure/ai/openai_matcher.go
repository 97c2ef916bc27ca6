package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"siso/internal/domain/entity"
)

const DefaultModel = openai.GPT4oMini

const systemPrompt = `You help musicians find collaborators. Given what the user needs and a
short profile of the user, suggest musicians who would be a good fit.
Respond with a JSON object of the form
{"matches":[{"name":"","profileSummary":"","compatibilityScore":0.0,"reason":""}]}
where compatibilityScore is between 0 and 1.`

var ErrEmptyCompletion = errors.New("model returned no choices")

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIMatcher asks an OpenAI-compatible chat endpoint for ranked matches.
type OpenAIMatcher struct {
	client chatCompleter
	model  string
}

func NewOpenAIMatcher(apiKey, baseURL, model string) *OpenAIMatcher {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIMatcher{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

type matchPayload struct {
	Matches []struct {
		Name               string  `json:"name"`
		ProfileSummary     string  `json:"profileSummary"`
		CompatibilityScore float64 `json:"compatibilityScore"`
		Reason             string  `json:"reason"`
	} `json:"matches"`
}

func (m *OpenAIMatcher) Match(ctx context.Context, needs, userProfile string) ([]entity.MatchResult, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Needs: %s\n\nMy profile: %s", needs, userProfile)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	return parseMatches(resp.Choices[0].Message.Content)
}

func parseMatches(content string) ([]entity.MatchResult, error) {
	var payload matchPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}

	results := make([]entity.MatchResult, 0, len(payload.Matches))
	for _, match := range payload.Matches {
		name := strings.TrimSpace(match.Name)
		if name == "" {
			continue
		}
		results = append(results, entity.MatchResult{
			Name:               name,
			ProfileSummary:     strings.TrimSpace(match.ProfileSummary),
			CompatibilityScore: clamp(match.CompatibilityScore),
			Reason:             strings.TrimSpace(match.Reason),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompatibilityScore > results[j].CompatibilityScore
	})
	return results, nil
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
