package services

import (
	"context"
	"slices"
	"strconv"

	"github.com/EO-DataHub/eodhp-resource-services/internal/events"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/rs/zerolog"
)

// ProductService manages product records. Product ids are integers assigned
// by the server.
type ProductService struct {
	*Service
	Collection string
}

func NewProductService(svc *Service, collection string) *ProductService {
	return &ProductService{Service: svc, Collection: collection}
}

// List returns the products that pass filter, in stored order.
func (s *ProductService) List(ctx context.Context, filter ProductFilter) ([]models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	products, err := s.Store.Load(ctx, s.Collection)
	if err != nil {
		return nil, err
	}
	return filter.Apply(products), nil
}

// Get returns the product with the given id. Ids that are not integers
// cannot match any product and report not found.
func (s *ProductService) Get(ctx context.Context, rawID string) (models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	products, err := s.Store.Load(ctx, s.Collection)
	if err != nil {
		return nil, err
	}

	i := indexOfProduct(products, rawID)
	if i < 0 {
		return nil, errProductNotFound()
	}
	return products[i], nil
}

// Create appends a product built from payload with the next free id,
// one above the current maximum. Any id in the payload is ignored.
func (s *ProductService) Create(ctx context.Context, payload models.Record) (models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	products, err := s.Store.Load(ctx, s.Collection)
	if err != nil {
		return nil, err
	}

	id := nextProductID(products)
	product := payload.Merge(models.Record{models.IDField: id})
	products = append(products, product)

	if err := s.Store.Save(ctx, s.Collection, products); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int("product_id", id).Msg("Product created successfully")
	s.notify(ctx, s.Collection, strconv.Itoa(id), events.ActionCreate)
	return product, nil
}

// Update merges payload into the product with the given id, keeping its id.
func (s *ProductService) Update(ctx context.Context, rawID string, payload models.Record) (models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	products, err := s.Store.Load(ctx, s.Collection)
	if err != nil {
		return nil, err
	}

	i := indexOfProduct(products, rawID)
	if i < 0 {
		return nil, errProductNotFound()
	}

	updated := products[i].Merge(payload)
	updated[models.IDField] = products[i][models.IDField]
	products[i] = updated

	if err := s.Store.Save(ctx, s.Collection, products); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("product_id", rawID).Msg("Product updated successfully")
	s.notify(ctx, s.Collection, rawID, events.ActionUpdate)
	return updated, nil
}

// Delete removes the product with the given id and returns it as it was.
func (s *ProductService) Delete(ctx context.Context, rawID string) (models.Record, error) {
	defer s.Locks.Acquire(s.Collection)()

	products, err := s.Store.Load(ctx, s.Collection)
	if err != nil {
		return nil, err
	}

	i := indexOfProduct(products, rawID)
	if i < 0 {
		return nil, errProductNotFound()
	}

	removed := products[i]
	products = slices.Delete(products, i, i+1)

	if err := s.Store.Save(ctx, s.Collection, products); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("product_id", rawID).Msg("Product deleted successfully")
	s.notify(ctx, s.Collection, rawID, events.ActionDelete)
	return removed, nil
}

func indexOfProduct(products []models.Record, rawID string) int {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return -1
	}
	return slices.IndexFunc(products, func(p models.Record) bool {
		pid, ok := p.IntID()
		return ok && pid == id
	})
}

// nextProductID returns one above the largest integer id, or 1 when no
// product has one.
func nextProductID(products []models.Record) int {
	maxID, found := 0, false
	for _, p := range products {
		if id, ok := p.IntID(); ok && (!found || id > maxID) {
			maxID, found = id, true
		}
	}
	if !found {
		return 1
	}
	return maxID + 1
}
