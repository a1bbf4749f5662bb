package api

import (
	"context"

	"github.com/Wass76/robotic-card-dashboard/internal/client"
)

// UserService manages club member records.
type UserService struct {
	client *client.Client
}

// List returns all members. The backend occasionally double-wraps the
// list; the transport flattens that, so any remaining nesting here means
// a flat list is all that is left to handle.
func (s *UserService) List(ctx context.Context) ([]User, error) {
	payload, err := s.client.Get(ctx, EndpointUsers, nil)
	if err != nil {
		return nil, err
	}
	items := asSlice(payload)
	if items == nil {
		return []User{}, nil
	}
	users := make([]User, 0, len(items))
	if err := rebind("api.users.list", items, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns one member by id.
func (s *UserService) Get(ctx context.Context, id int) (*User, error) {
	payload, err := s.client.Get(ctx, userByID(id), nil)
	if err != nil {
		return nil, err
	}
	user := &User{}
	if err := rebind("api.users.get", payload, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds a member. The backend nests the created record as
// {User: {...}}; plain records are accepted too.
func (s *UserService) Create(ctx context.Context, user User) (*User, error) {
	payload, err := s.client.Post(ctx, EndpointUsers, user, nil)
	if err != nil {
		return nil, err
	}
	if record := asRecord(payload); record != nil {
		if nested := asRecord(record["User"]); nested != nil {
			payload = nested
		}
	}
	created := &User{}
	if err := rebind("api.users.create", payload, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update modifies a member record.
func (s *UserService) Update(ctx context.Context, id int, user User) (*User, error) {
	payload, err := s.client.Put(ctx, userByID(id), user, nil)
	if err != nil {
		return nil, err
	}
	updated := &User{}
	if err := rebind("api.users.update", payload, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a member.
func (s *UserService) Delete(ctx context.Context, id int) error {
	_, err := s.client.Delete(ctx, userByID(id), nil)
	return err
}
