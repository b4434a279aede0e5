// Package packs assembles balanced five-card packs around a hero track.
package packs

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"musiclegends/cards"
	"musiclegends/metrics"
	"musiclegends/scoring"
)

type slot int

const (
	slotSameArtist slot = iota
	slotRelated
	slotWildcard
)

// secondarySlots is the fixed layout of the four non-hero cards.
var secondarySlots = []slot{slotSameArtist, slotRelated, slotRelated, slotWildcard}

// Generator builds packs: one hero card from the requested track plus four
// secondaries drawn from the artist's catalogue and related tracks.
type Generator struct {
	lookup  metrics.Lookup
	sources *SourceManager
	factory *cards.Factory
	quality *scoring.Controller
	cfg     Config
	logger  *zap.Logger
	newRand func() *rand.Rand
	now     func() time.Time
}

type Option func(*Generator)

// WithRand overrides the per-call random source constructor.
func WithRand(fn func() *rand.Rand) Option {
	return func(g *Generator) { g.newRand = fn }
}

// WithClock overrides the pack timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(g *Generator) { g.now = fn }
}

func NewGenerator(lookup metrics.Lookup, factory *cards.Factory, cfg Config, logger *zap.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		lookup:  lookup,
		sources: NewSourceManager(lookup, logger, cfg.BalanceBuckets),
		factory: factory,
		quality: scoring.NewController(cfg.MinTotalPower, cfg.MaxTotalPower),
		cfg:     cfg,
		logger:  logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type pools struct {
	artist  []metrics.Record
	related []metrics.Record
	hero    metrics.Record
}

// Generate builds a pack for heroSource. It only fails when the identifier
// is malformed or the hero's metrics are unavailable; every successful
// result satisfies the power window and rarity variety rules.
func (g *Generator) Generate(ctx context.Context, heroSource string) Result {
	log := g.logger.With(zap.String("hero", heroSource))

	id, err := metrics.ParseSourceID(heroSource)
	if err != nil {
		return failure(heroSource, err.Error())
	}
	if id.Kind != metrics.KindYouTubeVideo && id.Kind != metrics.KindLastFMTrack {
		return failure(heroSource, fmt.Sprintf("%s: hero must be a track, got %s", metrics.ErrMalformedID, id.Kind))
	}

	m, err := g.lookup.FetchMetrics(ctx, id)
	if err != nil {
		log.Warn("hero metrics unavailable", zap.Error(err))
		return failure(heroSource, fmt.Sprintf("hero metrics unavailable: %v", err))
	}

	rng := g.newRand()
	hero := g.factory.CreateCard(rng, m, true)
	p := g.fetchPools(ctx, rng, id, m)

	var secondaries []cards.Card
	attempts := 0
	balanced := false
	for attempts < max(g.cfg.MaxAttempts, 1) {
		attempts++
		secondaries = g.drawSecondaries(rng, p)
		if g.balanced(hero, secondaries) {
			balanced = true
			break
		}
		log.Debug("pack unbalanced, redrawing secondaries",
			zap.Int("attempt", attempts),
			zap.Int("total_power", hero.Power+totalPower(secondaries)))
	}

	if !balanced {
		g.forceBalance(rng, hero, secondaries)
		log.Warn("forced pack balance",
			zap.Int("attempts", attempts),
			zap.Int("total_power", hero.Power+totalPower(secondaries)))
	}

	all := append([]cards.Card{hero}, secondaries...)
	created := g.now().UTC()
	report := g.quality.Evaluate(all)
	res := Result{
		Success:            true,
		HeroSource:         heroSource,
		ID:                 uuid.NewString(),
		CreatedAt:          &created,
		HeroCard:           &hero,
		SecondaryCards:     secondaries,
		TotalPower:         totalPower(all),
		RarityDistribution: rarityDistribution(all),
		Quality:            &report,
		Attempts:           attempts,
		ForcedBalance:      !balanced,
	}

	log.Info("pack generated",
		zap.String("pack_id", res.ID),
		zap.Int("total_power", res.TotalPower),
		zap.Float64("quality", report.Score),
		zap.Bool("forced", res.ForcedBalance))
	return res
}

// fetchPools loads the same-artist and related pools concurrently. Only the
// related fetch uses rng.
func (g *Generator) fetchPools(ctx context.Context, rng *rand.Rand, id metrics.SourceID, hero metrics.Record) pools {
	p := pools{hero: hero}
	var eg errgroup.Group
	eg.Go(func() error {
		p.artist = g.sources.ArtistTopVideos(ctx, hero.Channel, hero.Identifier, g.cfg.ArtistPoolSize)
		return nil
	})
	eg.Go(func() error {
		p.related = g.sources.RelatedVideos(ctx, rng, id, g.cfg.RelatedPoolSize)
		return nil
	})
	_ = eg.Wait()
	return p
}

func (g *Generator) drawSecondaries(rng *rand.Rand, p pools) []cards.Card {
	out := make([]cards.Card, 0, len(secondarySlots))
	for _, s := range secondarySlots {
		out = append(out, g.drawSlot(rng, p, s))
	}
	return out
}

func (g *Generator) drawSlot(rng *rand.Rand, p pools, s slot) cards.Card {
	switch s {
	case slotSameArtist:
		top := p.artist
		if len(top) > g.cfg.SameArtistTop {
			top = top[:g.cfg.SameArtistTop]
		}
		c := g.factory.CreateBalancedSecondary(rng, pick(rng, top, p), nil)
		c.CardType = cards.TypeSameArtist
		return c
	case slotRelated:
		c := g.factory.CreateBalancedSecondary(rng, pick(rng, p.related, p), nil)
		c.CardType = cards.TypeRelated
		return c
	default:
		union := append(append([]metrics.Record{}, p.artist...), p.related...)
		target := g.cfg.WildcardWeights.Draw(rng)
		c := g.factory.CreateBalancedSecondary(rng, pick(rng, union, p), &target)
		c.CardType = cards.TypeWildcard
		return c
	}
}

// pick draws uniformly from candidates, falling back to the union of both
// pools and finally to the hero's own record.
func pick(rng *rand.Rand, candidates []metrics.Record, p pools) metrics.Record {
	if len(candidates) == 0 {
		candidates = append(append([]metrics.Record{}, p.artist...), p.related...)
	}
	if len(candidates) == 0 {
		return p.hero
	}
	return candidates[rng.IntN(len(candidates))]
}

func (g *Generator) balanced(hero cards.Card, secondaries []cards.Card) bool {
	all := append([]cards.Card{hero}, secondaries...)
	total := totalPower(all)
	return total >= g.cfg.MinTotalPower &&
		total <= g.cfg.MaxTotalPower &&
		len(rarityDistribution(all)) >= g.cfg.MinRarities
}
