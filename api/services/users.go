package services

import (
	"context"
	"slices"

	"github.com/EO-DataHub/eodhp-resource-services/internal/events"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// UserService manages user records. User ids are strings chosen by the
// client or generated on create, and never change afterwards.
type UserService struct {
	*Service
	Collection string
}

func NewUserService(svc *Service, collection string) *UserService {
	return &UserService{Service: svc, Collection: collection}
}

// List returns every user in stored order.
func (s *UserService) List(ctx context.Context) ([]models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	return s.Store.Load(ctx, s.Collection)
}

// Get returns the first user whose id equals id.
func (s *UserService) Get(ctx context.Context, id string) (models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	users, err := s.Store.Load(ctx, s.Collection)
	if err != nil {
		return nil, err
	}

	i := indexOfUser(users, id)
	if i < 0 {
		return nil, errUserNotFound()
	}
	return users[i], nil
}

// Create appends a user built from payload. The payload id is kept when
// present; otherwise a time-ordered random id is generated.
func (s *UserService) Create(ctx context.Context, payload models.Record) (models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	users, err := s.Store.Load(ctx, s.Collection)
	if err != nil {
		return nil, err
	}

	id, ok := payload.StringID()
	if !ok {
		if id, err = newUserID(); err != nil {
			return nil, err
		}
	}

	user := payload.Merge(models.Record{models.IDField: id})
	users = append(users, user)

	if err := s.Store.Save(ctx, s.Collection, users); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("user_id", id).Msg("User created successfully")
	s.notify(ctx, s.Collection, id, events.ActionCreate)
	return user, nil
}

// Update merges payload into the user with the given id. The id itself
// cannot be changed.
func (s *UserService) Update(ctx context.Context, id string, payload models.Record) (models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	users, err := s.Store.Load(ctx, s.Collection)
	if err != nil {
		return nil, err
	}

	i := indexOfUser(users, id)
	if i < 0 {
		return nil, errUserNotFound()
	}

	updated := users[i].Merge(payload)
	updated[models.IDField] = users[i][models.IDField]
	users[i] = updated

	if err := s.Store.Save(ctx, s.Collection, users); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("user_id", id).Msg("User updated successfully")
	s.notify(ctx, s.Collection, id, events.ActionUpdate)
	return updated, nil
}

// Delete removes the user with the given id and returns it as it was.
func (s *UserService) Delete(ctx context.Context, id string) (models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	users, err := s.Store.Load(ctx, s.Collection)
	if err != nil {
		return nil, err
	}

	i := indexOfUser(users, id)
	if i < 0 {
		return nil, errUserNotFound()
	}

	removed := users[i]
	users = slices.Delete(users, i, i+1)

	if err := s.Store.Save(ctx, s.Collection, users); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("user_id", id).Msg("User deleted successfully")
	s.notify(ctx, s.Collection, id, events.ActionDelete)
	return removed, nil
}

// indexOfUser matches ids by their string form, so a numeric id left in a
// hand-edited collection is still addressable by its decimal path segment.
func indexOfUser(users []models.Record, id string) int {
	return slices.IndexFunc(users, func(u models.Record) bool {
		uid, ok := u.StringID()
		return ok && uid == id
	})
}

// newUserID returns a UUIDv7: 74 random bits behind a millisecond timestamp.
func newUserID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate user id")
	}
	return id.String(), nil
}
