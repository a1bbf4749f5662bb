package api

import (
	"context"

	"github.com/Wass76/robotic-card-dashboard/internal/client"
)

// CardService manages access cards.
type CardService struct {
	client *client.Client
}

// List returns all cards.
func (s *CardService) List(ctx context.Context) ([]Card, error) {
	payload, err := s.client.Get(ctx, EndpointCards, nil)
	if err != nil {
		return nil, err
	}
	items := asSlice(payload)
	if items == nil {
		return []Card{}, nil
	}
	cards := make([]Card, 0, len(items))
	if err := rebind("api.cards.list", items, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Get returns one card by id.
func (s *CardService) Get(ctx context.Context, id int) (*Card, error) {
	payload, err := s.client.Get(ctx, cardByID(id), nil)
	if err != nil {
		return nil, err
	}
	card := &Card{}
	if err := rebind("api.cards.get", payload, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Create registers a card without an owner.
func (s *CardService) Create(ctx context.Context, card Card) (*Card, error) {
	payload, err := s.client.Post(ctx, EndpointCards, card, nil)
	if err != nil {
		return nil, err
	}
	created := &Card{}
	if err := rebind("api.cards.create", payload, created); err != nil {
		return nil, err
	}
	return created, nil
}

// CreateForUser registers a card assigned to the given member.
func (s *CardService) CreateForUser(ctx context.Context, userID int, card Card) (*Card, error) {
	payload, err := s.client.Post(ctx, cardForUser(userID), card, nil)
	if err != nil {
		return nil, err
	}
	created := &Card{}
	if err := rebind("api.cards.createForUser", payload, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update modifies a card.
func (s *CardService) Update(ctx context.Context, id int, card Card) (*Card, error) {
	payload, err := s.client.Put(ctx, cardByID(id), card, nil)
	if err != nil {
		return nil, err
	}
	updated := &Card{}
	if err := rebind("api.cards.update", payload, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a card.
func (s *CardService) Delete(ctx context.Context, id int) error {
	_, err := s.client.Delete(ctx, cardByID(id), nil)
	return err
}
