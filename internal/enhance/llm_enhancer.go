package enhance

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/askbridge/askbridge/internal/llm"
	"github.com/askbridge/askbridge/internal/models"
	"github.com/rs/zerolog"
)

const (
	maxTokens     = 250
	temperature   = 0.2
	maxAnswerLen  = 500
	contextJoiner = "\n\n"
)

// LLMEnhancer produces answers through an llm.LLMClient. The provider
// behind the client (Bedrock, OpenAI) is interchangeable.
type LLMEnhancer struct {
	client  llm.LLMClient
	timeout time.Duration
	logger  *zerolog.Logger
}

func NewLLMEnhancer(client llm.LLMClient, timeout time.Duration, logger *zerolog.Logger) *LLMEnhancer {
	return &LLMEnhancer{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

func (e *LLMEnhancer) Enhance(ctx context.Context, query string, contextTexts []string, mode Mode) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	request := llm.LLMRequest{
		Prompt:      buildPrompt(query, contextTexts, mode),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	response, err := e.client.InvokeModelWithRetry(ctx, request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrEnhancementUnavailable, err)
	}

	answer := cleanText(response.Content)
	if answer == "" {
		return "", fmt.Errorf("%w: empty model response", models.ErrEnhancementUnavailable)
	}

	e.logger.Debug().
		Str("mode", string(mode)).
		Int("answer_len", len(answer)).
		Msg("answer enhanced")

	return answer, nil
}

func buildPrompt(query string, contextTexts []string, mode Mode) string {
	switch mode {
	case ModeKB:
		return fmt.Sprintf(`You are a helpful AI assistant. Based on the provided document content, answer the user's question accurately and concisely.

User Question: %q

Document Content:
%s

Instructions:
1. Provide a clear, direct answer based ONLY on the information in the document
2. Keep your response concise but informative (2-4 sentences)
3. Use natural, conversational language
4. Don't add information not present in the document

Answer:`, query, strings.Join(contextTexts, contextJoiner))

	case ModeSearch:
		return fmt.Sprintf(`Based on these search results, provide a clear and concise answer to the question: %q

Search results:
%s

Instructions:
1. Provide a helpful, accurate answer in 2-3 sentences
2. Focus on directly answering the question
3. Use information from the search results
4. Keep the response natural and conversational

Answer:`, query, strings.Join(contextTexts, contextJoiner))

	default:
		return fmt.Sprintf(`Please provide a helpful and accurate answer to this question: %q

Keep the response concise (2-3 sentences) and factual. If you're not certain about specific details, mention that.`, query)
	}
}

var whitespaceRE = regexp.MustCompile(`\s+`)

func cleanText(s string) string {
	s = strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
	if len(s) > maxAnswerLen {
		s = s[:maxAnswerLen-3] + "..."
	}
	return s
}
