package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/solevolog/solevolog/internal/card"
)

var (
	// ErrNotSeeded is returned when the card catalog table is empty.
	ErrNotSeeded    = errors.New("card catalog not seeded")
	ErrCardNotFound = errors.New("card not found")
)

// CountCards returns the number of catalog rows.
func (s *Store) CountCards(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tarot_cards").Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

// SeedCards inserts the catalog in one transaction. A catalog that already
// has rows is left untouched and 0 is returned.
func (s *Store) SeedCards(ctx context.Context, cards []card.Card) (int, error) {
	count, err := s.CountCards(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Info("Catalog already seeded, skipping", zap.Int("cards", count))
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tarot_cards (
			id, name_primary, name_secondary, suit, rank, arcana_type,
			keywords_json, description_upright, description_reversed, image_reference
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		keywords, err := json.Marshal(nonNil(c.Keywords))
		if err != nil {
			return 0, fmt.Errorf("encode keywords for %s: %w", c.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.NamePrimary, c.NameSecondary, string(c.Suit), c.Rank, string(c.Arcana),
			string(keywords), c.DescriptionUpright, c.DescriptionReversed, c.ImageReference,
		); err != nil {
			return 0, fmt.Errorf("insert card %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	s.logger.Info("Catalog seeded", zap.Int("cards", len(cards)))
	return len(cards), nil
}

// FetchAllCards returns every catalog row. Ordering is left to the caller.
func (s *Store) FetchAllCards(ctx context.Context) ([]card.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name_primary, name_secondary, suit, rank, arcana_type,
			keywords_json, description_upright, description_reversed, image_reference
		FROM tarot_cards`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []card.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cards: %w", err)
	}
	if len(cards) == 0 {
		return nil, ErrNotSeeded
	}

	s.logger.Debug("Fetched catalog", zap.Int("cards", len(cards)))
	return cards, nil
}

// GetCard returns one catalog row by ID.
func (s *Store) GetCard(ctx context.Context, id string) (card.Card, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name_primary, name_secondary, suit, rank, arcana_type,
			keywords_json, description_upright, description_reversed, image_reference
		FROM tarot_cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return card.Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (card.Card, error) {
	var (
		c        card.Card
		suit     string
		arcana   string
		keywords string
	)
	if err := row.Scan(
		&c.ID, &c.NamePrimary, &c.NameSecondary, &suit, &c.Rank, &arcana,
		&keywords, &c.DescriptionUpright, &c.DescriptionReversed, &c.ImageReference,
	); err != nil {
		return card.Card{}, err
	}
	c.Suit = card.Suit(suit)
	c.Arcana = card.Arcana(arcana)
	if err := json.Unmarshal([]byte(keywords), &c.Keywords); err != nil {
		return card.Card{}, fmt.Errorf("decode keywords for %s: %w", c.ID, err)
	}
	return c, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
