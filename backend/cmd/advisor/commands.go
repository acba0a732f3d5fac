package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/dialogue"
	"boardgame-advisor/backend/internal/knowledge"
	"boardgame-advisor/backend/internal/recommend"
	"boardgame-advisor/backend/internal/services"
	"boardgame-advisor/backend/pkg/config"
	"boardgame-advisor/backend/pkg/logger"
)

const queryTimeout = 30 * time.Second

// options are the persistent flags shared by every subcommand.
type options struct {
	ontology string
	backend  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "advisor",
		Short: "Board game recommendations from a game ontology",
		Long: `Board game recommendations from a game ontology.

Without a subcommand an interactive dialogue is started on the terminal.

Subcommands:
  recommend  - Recommend games for a free-text request
  query      - List games by genre, mechanic, complexity or category
  info       - Show everything known about one game`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialogue(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.ontology, "ontology", "", "path to the OWL ontology (overrides ONTOLOGY_PATH)")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "knowledge backend: memory or neo4j (overrides KNOWLEDGE_BACKEND)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level when LOG_LEVEL is unset")

	root.AddCommand(newRecommendCmd(opts), newQueryCmd(opts), newInfoCmd(opts))
	return root
}

func newRecommendCmd(opts *options) *cobra.Command {
	var (
		complexity string
		coop       bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "recommend [request...]",
		Short: "Recommend games for a free-text request",
		Long: `Recommend games for a free-text request such as "cooperative euro games".
Without a request the interactive dialogue is started.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runDialogue(cmd, opts)
			}

			req := recommend.Request{Query: strings.Join(args, " "), Limit: limit}
			if complexity != "" {
				level, err := knowledge.ParseComplexity(complexity)
				if err != nil {
					return err
				}
				req.Complexity = level
			}
			if cmd.Flags().Changed("coop") {
				req.Cooperative = &coop
			}

			return withServices(cmd, opts, func(ctx context.Context, sm *services.ServiceManager) error {
				result, err := sm.Advisor.Advise(ctx, req)
				if err != nil {
					return err
				}
				printRecommendations(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&complexity, "complexity", "", "require light, medium or heavy games")
	cmd.Flags().BoolVar(&coop, "coop", false, "require cooperative (true) or competitive (false) games")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of recommendations")
	return cmd
}

func newQueryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query <kind> [value]",
		Short: "List games by genre, mechanic, complexity or category",
		Long: `List game ids in declaration order.

Kinds:
  all                    - every game
  genre <id>             - games of a genre
  mechanic <id>          - games using a mechanic
  complexity <level>     - light, medium or heavy games
  cooperative            - cooperative games
  gateway                - games suitable for newcomers
  deep-strategy          - games with deep strategy`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, opts, func(ctx context.Context, sm *services.ServiceManager) error {
				games, err := runQuery(ctx, sm.Base, args)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, game := range games {
					fmt.Fprintln(out, game)
				}
				return nil
			})
		},
	}
}

func newInfoCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <game>",
		Short: "Show everything known about one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, opts, func(ctx context.Context, sm *services.ServiceManager) error {
				info, err := sm.Base.GameInfo(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(info)
				}
				printGameInfo(out, info)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

// runQuery dispatches a query subcommand to the knowledge base.
func runQuery(ctx context.Context, kb knowledge.Base, args []string) ([]string, error) {
	kind := args[0]
	value := ""
	if len(args) > 1 {
		value = args[1]
	}

	needsValue := kind == "genre" || kind == "mechanic" || kind == "complexity"
	if needsValue != (value != "") {
		if needsValue {
			return nil, fmt.Errorf("query %s needs a value", kind)
		}
		return nil, fmt.Errorf("query %s takes no value", kind)
	}

	switch kind {
	case "all":
		return kb.AllGames(ctx)
	case "genre":
		return kb.GamesByGenre(ctx, value)
	case "mechanic":
		return kb.GamesByMechanic(ctx, value)
	case "complexity":
		level, err := knowledge.ParseComplexity(value)
		if err != nil {
			return nil, err
		}
		return kb.GamesByComplexity(ctx, level)
	case "cooperative":
		return kb.CooperativeGames(ctx)
	case "gateway":
		return kb.GatewayGames(ctx)
	case "deep-strategy":
		return kb.DeepStrategyGames(ctx)
	default:
		return nil, fmt.Errorf("unknown query kind %q", kind)
	}
}

func runDialogue(cmd *cobra.Command, opts *options) error {
	return withServices(cmd, opts, func(ctx context.Context, sm *services.ServiceManager) error {
		m := dialogue.NewManager(sm.Engine, sm.Parser, cmd.InOrStdin(), cmd.OutOrStdout())
		return m.Run(ctx)
	})
}

// withServices loads configuration, applies flag overrides and runs fn
// with a ready service manager.
func withServices(cmd *cobra.Command, opts *options, fn func(context.Context, *services.ServiceManager) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if level == "" {
		level = opts.logLevel
	}
	if err := logger.Init(cfg.Env, level); err != nil {
		return err
	}
	log := logger.Get()

	ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
	defer cancel()

	sm, err := services.NewServiceManager(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := sm.Close(context.Background()); err != nil {
			log.Warn("Failed to close services", zap.Error(err))
		}
	}()

	// The dialogue waits on the user, so only startup is bounded.
	return fn(cmd.Context(), sm)
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.ontology != "" {
		cfg.OntologyPath = opts.ontology
	}
	if opts.backend != "" {
		cfg.KnowledgeBackend = opts.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func printRecommendations(out io.Writer, result *recommend.Result) {
	if len(result.Recommendations) == 0 {
		fmt.Fprintln(out, "No games match your request.")
		return
	}
	for i, rec := range result.Recommendations {
		fmt.Fprintf(out, "%d. %s %s (%s)\n",
			i+1, rec.Game.ID, strings.Repeat("★", rec.Stars()), rec.Game.Complexity)
	}
}

func printGameInfo(out io.Writer, info *knowledge.GameInfo) {
	fmt.Fprintf(out, "Game:       %s\n", info.ID)
	fmt.Fprintf(out, "Genres:     %s\n", strings.Join(info.Genres, ", "))
	fmt.Fprintf(out, "Mechanics:  %s\n", strings.Join(info.Mechanics, ", "))
	fmt.Fprintf(out, "Designers:  %s\n", strings.Join(info.Designers, ", "))
	fmt.Fprintf(out, "Complexity: %s\n", info.Complexity)
}
