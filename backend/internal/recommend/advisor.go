package recommend

import (
	"context"

	"boardgame-advisor/backend/internal/knowledge"
	"boardgame-advisor/backend/internal/preferences"
	"boardgame-advisor/backend/internal/utils"
)

// Request is a one-shot recommendation request. Complexity and Cooperative,
// when set, override what the parser found in Query.
type Request struct {
	Query       string
	Complexity  knowledge.Complexity
	Cooperative *bool
	Limit       int // zero means the advisor default
}

// Result is the outcome of a one-shot request.
type Result struct {
	Language        string // language code of the query
	Preferences     preferences.Preferences
	Recommendations []Recommendation
}

// Advisor answers free-text requests without a dialogue: validate, parse,
// recommend, rank, truncate. It backs the HTTP API and the Discord bot.
type Advisor struct {
	parser *preferences.Parser
	engine *Engine
	limit  int
}

// NewAdvisor creates an advisor returning at most limit games by default.
func NewAdvisor(parser *preferences.Parser, engine *Engine, limit int) *Advisor {
	if limit < 1 {
		limit = 1
	}
	return &Advisor{parser: parser, engine: engine, limit: limit}
}

// Advise validates req.Query and returns the top ranked games. Invalid input
// yields *errors.ErrInputInvalid.
func (a *Advisor) Advise(ctx context.Context, req Request) (*Result, error) {
	if err := preferences.ValidateInput(req.Query); err != nil {
		return nil, err
	}

	prefs := a.parser.Parse(req.Query)
	if req.Complexity != "" {
		prefs.Complexity = req.Complexity
	}
	if req.Cooperative != nil {
		prefs.SetCooperative(*req.Cooperative)
	}

	games, err := a.engine.Recommend(ctx, prefs)
	if err != nil {
		return nil, err
	}
	ranked, err := a.engine.Rank(ctx, games, prefs)
	if err != nil {
		return nil, err
	}

	limit := a.limit
	if req.Limit > 0 {
		limit = req.Limit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return &Result{
		Language:        utils.DetectLanguage(req.Query),
		Preferences:     prefs,
		Recommendations: ranked,
	}, nil
}

// Engine returns the underlying engine.
func (a *Advisor) Engine() *Engine {
	return a.engine
}
