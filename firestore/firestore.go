package firestore

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"musiclegends/cards"
	"musiclegends/config"
	"musiclegends/packs"
)

// PacksCollection holds one document per generated pack, keyed by pack ID.
const PacksCollection = "packs"

type CardDocument struct {
	Name       string   `json:"name" firestore:"name"`
	Artist     string   `json:"artist" firestore:"artist"`
	Identifier string   `json:"identifier" firestore:"identifier"`
	CardType   string   `json:"cardType" firestore:"cardType"`
	Power      int      `json:"power" firestore:"power"`
	Cost       int      `json:"cost" firestore:"cost"`
	Rarity     string   `json:"rarity" firestore:"rarity"`
	Abilities  []string `json:"abilities" firestore:"abilities"`
	Views      int64    `json:"views" firestore:"views"`
	Likes      int64    `json:"likes" firestore:"likes"`
}

type PackDocument struct {
	ID            string         `json:"id" firestore:"id"`
	HeroSource    string         `json:"heroSource" firestore:"heroSource"`
	Cards         []CardDocument `json:"cards" firestore:"cards"`
	TotalPower    int            `json:"totalPower" firestore:"totalPower"`
	Rarities      map[string]int `json:"rarities" firestore:"rarities"`
	Attempts      int            `json:"attempts" firestore:"attempts"`
	ForcedBalance bool           `json:"forcedBalance" firestore:"forcedBalance"`
	QualityScore  float64        `json:"qualityScore" firestore:"qualityScore"`
	CreatedAt     time.Time      `json:"createdAt" firestore:"createdAt"`
}

// NewPackDocument flattens a successful result for storage. Rarities are
// stored by name so documents stay readable in the console.
func NewPackDocument(r packs.Result) PackDocument {
	all := r.Cards()
	doc := PackDocument{
		ID:            r.ID,
		HeroSource:    r.HeroSource,
		Cards:         make([]CardDocument, 0, len(all)),
		TotalPower:    r.TotalPower,
		Rarities:      make(map[string]int, len(r.RarityDistribution)),
		Attempts:      r.Attempts,
		ForcedBalance: r.ForcedBalance,
	}
	if r.Quality != nil {
		doc.QualityScore = r.Quality.Score
	}
	if r.CreatedAt != nil {
		doc.CreatedAt = *r.CreatedAt
	}
	for _, c := range all {
		doc.Cards = append(doc.Cards, newCardDocument(c))
	}
	for rarity, n := range r.RarityDistribution {
		doc.Rarities[rarity.String()] = n
	}
	return doc
}

func newCardDocument(c cards.Card) CardDocument {
	return CardDocument{
		Name:       c.Name,
		Artist:     c.Artist,
		Identifier: c.Identifier,
		CardType:   c.CardType,
		Power:      c.Power,
		Cost:       c.Cost,
		Rarity:     c.Rarity.String(),
		Abilities:  c.Abilities,
		Views:      c.Views,
		Likes:      c.Likes,
	}
}

type PackStore struct {
	client *firestore.Client
	logger *zap.Logger
}

func NewPackStore(client *firestore.Client, logger *zap.Logger) *PackStore {
	return &PackStore{client: client, logger: logger}
}

func (s *PackStore) SavePack(ctx context.Context, doc PackDocument) error {
	if doc.ID == "" {
		return fmt.Errorf("save pack: missing id")
	}
	if _, err := s.client.Collection(PacksCollection).Doc(doc.ID).Set(ctx, doc); err != nil {
		return fmt.Errorf("save pack %s: %w", doc.ID, err)
	}
	s.logger.Info("Saved pack", zap.String("id", doc.ID), zap.String("hero", doc.HeroSource))
	return nil
}

// RecentPacks returns up to limit packs, newest first.
func (s *PackStore) RecentPacks(ctx context.Context, limit int) ([]PackDocument, error) {
	iter := s.client.Collection(PacksCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []PackDocument
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list packs: %w", err)
		}
		var doc PackDocument
		if err := snap.DataTo(&doc); err != nil {
			s.logger.Warn("Skipping unreadable pack", zap.String("id", snap.Ref.ID), zap.Error(err))
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

// ProvideDB provides a firestore client
func ProvideDB(cfg config.Config) *firestore.Client {
	client, err := firestore.NewClient(context.TODO(), cfg.ProjectID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	return client
}

var Options = ProvideDB
