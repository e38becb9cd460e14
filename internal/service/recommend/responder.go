package recommend

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/zhouzirui/game-guru/backend/internal/analysis/signals"
	"github.com/zhouzirui/game-guru/backend/internal/model/game"
)

// LeadRecommendRequest answers an explicit request that carried no usable filter.
const LeadRecommendRequest = "I'd be happy to recommend a game! Here are some popular picks to start with. Tell me how many players you have, how much time you want to spend, or whether you prefer easy or complex games and I'll narrow it down:"

// Config tunes the recommendation pipeline.
type Config struct {
	Mode          Mode
	SynopsisLimit int
}

// Reply is everything the conversation needs to answer one user message.
type Reply struct {
	Units   []Unit
	Signals signals.Signals
	Path    Path
}

type turn struct {
	text    string
	signals signals.Signals
	result  Result
}

// Responder runs extractor, filter and formatter as one compiled pipeline.
type Responder struct {
	catalog   game.Catalog
	mode      Mode
	formatter Formatter
	chain     compose.Runnable[string, Reply]
}

// NewResponder compiles the recommendation chain over catalog.
func NewResponder(ctx context.Context, catalog game.Catalog, cfg Config) (*Responder, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeUnified
	}

	r := &Responder{
		catalog:   catalog,
		mode:      mode,
		formatter: NewFormatter(cfg.SynopsisLimit),
	}

	chain := compose.NewChain[string, Reply]()
	chain.
		AppendLambda(compose.InvokableLambda(r.extract)).
		AppendLambda(compose.InvokableLambda(r.filter)).
		AppendLambda(compose.InvokableLambda(r.format))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile recommendation chain: %w", err)
	}
	r.chain = runnable
	return r, nil
}

// Respond turns one user message into reply units.
func (r *Responder) Respond(ctx context.Context, text string) (Reply, error) {
	reply, err := r.chain.Invoke(ctx, text)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to run recommendation chain: %w", err)
	}
	return reply, nil
}

func (r *Responder) extract(_ context.Context, text string) (*turn, error) {
	return &turn{text: text, signals: signals.Extract(text)}, nil
}

func (r *Responder) filter(_ context.Context, t *turn) (*turn, error) {
	t.result = Filter(r.mode, t.signals, r.catalog.List())
	return t, nil
}

func (r *Responder) format(_ context.Context, t *turn) (Reply, error) {
	reply := Reply{Signals: t.signals, Path: t.result.Path}

	if t.result.Path == PathPopular {
		switch t.signals.Intent {
		case signals.IntentGreeting:
			reply.Units = []Unit{{Text: Greeting}}
			return reply, nil
		case signals.IntentRecommend:
			if len(t.result.Games) > 0 {
				reply.Units = r.formatter.Format(LeadRecommendRequest, t.result)
				return reply, nil
			}
		}
	}

	reply.Units = r.formatter.Format(LeadFor(t.result), t.result)
	return reply, nil
}
