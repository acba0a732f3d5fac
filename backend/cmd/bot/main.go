package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/discord"
	"boardgame-advisor/backend/internal/services"
	"boardgame-advisor/backend/pkg/config"
	"boardgame-advisor/backend/pkg/logger"
)

// Guild and DM text, plus message content so mentions can be stripped.
const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting Discord bot...")

	if cfg.DiscordBotToken == "" {
		log.Fatal("DISCORD_BOT_TOKEN is required")
	}

	ctx := context.Background()
	sm, err := services.NewServiceManager(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer sm.Close(context.Background())

	dg, err := newSession(cfg.DiscordBotToken, discord.NewHandler(sm.Advisor, log))
	if err != nil {
		log.Fatal("Failed to create Discord session", zap.Error(err))
	}

	log.Info("Discord bot intents configured",
		zap.Bool("guild_messages", (dg.Identify.Intents&discordgo.IntentsGuildMessages) != 0),
		zap.Bool("direct_messages", (dg.Identify.Intents&discordgo.IntentsDirectMessages) != 0),
		zap.Bool("message_content", (dg.Identify.Intents&discordgo.IntentsMessageContent) != 0),
	)

	if err := dg.Open(); err != nil {
		log.Fatal("Failed to open Discord connection", zap.Error(err))
	}
	defer dg.Close()

	log.Info("Discord bot is running. Press CTRL-C to exit.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down Discord bot...")
}

// newSession builds a session with the message handler attached. It does
// not connect.
func newSession(token string, handler *discord.Handler) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	dg.AddHandler(handler.HandleMessage)
	dg.Identify.Intents = intents
	return dg, nil
}
