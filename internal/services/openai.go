package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"meowbot/internal/models"
)

// visionModel is hard-wired: photo understanding never follows the
// user-selected chat model.
const visionModel = "gpt-4-vision-preview"

// ErrEmptyResponse marks an upstream success that carried no usable body.
var ErrEmptyResponse = errors.New("upstream returned no response")

type OpenAIService struct {
	client openai.Client
}

func NewOpenAIService(apiKey string, opts ...option.RequestOption) *OpenAIService {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIService{client: openai.NewClient(opts...)}
}

// CompleteChat sends the user's full transcript and returns the top response
// message. The transcript is never mutated here; the caller appends the
// response only after success.
func (s *OpenAIService) CompleteChat(ctx context.Context, backendID string, transcript []models.ChatMessage) (models.ChatMessage, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(transcript))
	for _, m := range transcript {
		switch m.Role {
		case models.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(backendID),
		Messages: messages,
	})
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	log.Printf("Usage: prompt=%d completion=%d total=%d",
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return models.ChatMessage{}, ErrEmptyResponse
	}

	return models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: resp.Choices[0].Message.Content,
	}, nil
}

// GenerateImage turns a prompt into a single image URL. Image generation is
// stateless with respect to conversation history.
func (s *OpenAIService) GenerateImage(ctx context.Context, backendID, prompt string) (string, error) {
	resp, err := s.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  openai.ImageModel(backendID),
		Prompt: prompt,
		N:      openai.Int(1), // the API supports only one per request anyway
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrEmptyResponse
	}
	return resp.Data[0].URL, nil
}

// CompleteVision runs a single-turn multimodal completion over an image URL.
// The result is never fed back into a transcript.
func (s *OpenAIService) CompleteVision(ctx context.Context, imageURL, caption string) (models.ChatMessage, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(caption),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    imageURL,
			Detail: "high",
		}),
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    visionModel,
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
	})
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	log.Printf("Usage: prompt=%d completion=%d total=%d",
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return models.ChatMessage{}, ErrEmptyResponse
	}

	return models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: resp.Choices[0].Message.Content,
	}, nil
}
