package discord

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/constants"
	"boardgame-advisor/backend/internal/recommend"
	apperrors "boardgame-advisor/backend/pkg/errors"
)

// requestTimeout bounds one recommendation, including graph round trips.
const requestTimeout = 10 * time.Second

// messageSender is the part of *discordgo.Session the handler writes to.
type messageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Handler answers DMs and mentions with a one-shot recommendation.
type Handler struct {
	advisor *recommend.Advisor
	logger  *zap.Logger
}

// NewHandler creates a new Discord message handler
func NewHandler(advisor *recommend.Advisor, logger *zap.Logger) *Handler {
	return &Handler{
		advisor: advisor,
		logger:  logger,
	}
}

// HandleMessage processes a Discord message
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if s.State == nil || s.State.User == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	h.handle(ctx, s.State.User.ID, s, m.Message)
}

func (h *Handler) handle(ctx context.Context, botID string, sender messageSender, m *discordgo.Message) {
	// Ignore messages from the bot itself
	if m.Author == nil || m.Author.ID == botID || m.Author.Bot {
		return
	}

	query, ok := extractQuery(botID, m)
	if !ok {
		return
	}

	h.logger.Info("Processing Discord message",
		zap.String("user_id", m.Author.ID),
		zap.String("channel_id", m.ChannelID),
		zap.Bool("is_dm", m.GuildID == ""),
	)

	h.send(sender, m.ChannelID, h.reply(ctx, query))
}

func (h *Handler) reply(ctx context.Context, query string) string {
	result, err := h.advisor.Advise(ctx, recommend.Request{Query: query})
	if err == nil {
		h.logger.Debug("Recommendations ready",
			zap.String("language", result.Language),
			zap.Int("count", len(result.Recommendations)),
		)
		return FormatRecommendations(result)
	}

	var invalid *apperrors.ErrInputInvalid
	if errors.As(err, &invalid) {
		return FormatHints(invalid.Reason)
	}

	h.logger.Error("Failed to process message", zap.Error(err))
	return "Sorry, something went wrong while looking for games."
}

func (h *Handler) send(sender messageSender, channelID, content string) {
	content = truncateMessage(content, constants.DiscordMaxMessageLength)
	if _, err := sender.ChannelMessageSend(channelID, content); err != nil {
		h.logger.Error("Failed to send message",
			zap.Error(err),
			zap.String("channel_id", channelID),
		)
	}
}

// extractQuery returns the message text with bot mentions removed. ok is
// false for guild messages that do not mention the bot and for messages
// that are empty once the mention is gone.
func extractQuery(botID string, m *discordgo.Message) (string, bool) {
	isDM := m.GuildID == ""
	isMentioned := false
	for _, mention := range m.Mentions {
		if mention != nil && mention.ID == botID {
			isMentioned = true
			break
		}
	}

	content := m.Content
	for _, tag := range []string{"<@" + botID + ">", "<@!" + botID + ">"} {
		if strings.Contains(content, tag) {
			isMentioned = true
			content = strings.ReplaceAll(content, tag, " ")
		}
	}
	content = strings.TrimSpace(content)

	// Only respond to DMs or mentions
	if !isDM && !isMentioned {
		return "", false
	}
	return content, content != ""
}
