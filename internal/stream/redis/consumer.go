package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/askbridge/askbridge/internal/history"
	"github.com/askbridge/askbridge/internal/models"
	"github.com/askbridge/askbridge/internal/orchestrator"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Consumer reads chat requests off a Redis stream and resolves them out of
// band. Answers land in conversation history; clients pick them up there.
type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	resolver     *orchestrator.Resolver
	history      history.Store
	logger       *zerolog.Logger
}

func NewConsumer(
	client *redis.Client,
	stream string,
	groupID string,
	consumerName string,
	resolver *orchestrator.Resolver,
	historyStore history.Store,
	logger *zerolog.Logger,
) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		resolver:     resolver,
		history:      historyStore,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var chatRequest models.ChatRequest
	if err := json.Unmarshal([]byte(payload), &chatRequest); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message — ACK to skip it
		return
	}

	conversationID := chatRequest.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	c.saveHistory(ctx, conversationID, models.SenderUser, chatRequest.Message)

	resolution, err := c.resolver.Resolve(ctx, chatRequest.Message)
	if err != nil {
		// Invalid or unanswerable messages are ACKed; retrying them
		// cannot change the outcome.
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Resolution failed")
		c.ack(ctx, msg.ID)
		return
	}

	c.saveHistory(ctx, conversationID, models.SenderAssistant, resolution.AnswerText)

	c.logger.Info().
		Str("id", msg.ID).
		Str("conversation_id", conversationID).
		Str("source", string(resolution.Source)).
		Float64("confidence", resolution.Confidence).
		Msg("Chat resolution complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) saveHistory(ctx context.Context, conversationID string, sender models.Sender, message string) {
	if message == "" {
		return
	}

	entry := models.HistoryEntry{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Sender:         sender,
		Message:        message,
		Timestamp:      time.Now(),
	}

	if err := c.history.Append(ctx, entry); err != nil {
		c.logger.Warn().Err(err).Str("conversation_id", conversationID).Msg("Failed to save history entry")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
