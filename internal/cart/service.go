package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maisonvela/vela-backend/internal/catalog"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
)

type productResolver interface {
	GetProduct(ctx context.Context, id uuid.UUID, includeHidden bool) (catalog.Product, error)
	ResolveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Product, error)
}

// CartDTO is the cart payload returned to clients.
type CartDTO struct {
	Items      []Line          `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store    *Store
	Products productResolver
}

// Service owns the session cart: every operation rehydrates the ledger from
// the stored snapshot against live catalog prices, applies the mutation, and
// persists the result.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, size, color string, qty int) (CartDTO, error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, size, color string, qty int) (CartDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID, size, color string) (CartDTO, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
	LoadLedger(ctx context.Context, userID uuid.UUID) (*Ledger, error)
}

type service struct {
	store    *Store
	products productResolver
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product resolver is required")
	}
	return &service{
		store:    params.Store,
		products: params.Products,
	}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	ledger, err := s.LoadLedger(ctx, userID)
	if err != nil {
		return CartDTO{}, err
	}
	return toDTO(ledger), nil
}

func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID, size, color string, qty int) (CartDTO, error) {
	if productID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.products.GetProduct(ctx, productID, false)
	if err != nil {
		return CartDTO{}, err
	}

	ledger, err := s.LoadLedger(ctx, userID)
	if err != nil {
		return CartDTO{}, err
	}
	ledger.Add(product, size, color, qty)

	if err := s.persist(ctx, userID, ledger); err != nil {
		return CartDTO{}, err
	}
	return toDTO(ledger), nil
}

func (s *service) UpdateItem(ctx context.Context, userID, productID uuid.UUID, size, color string, qty int) (CartDTO, error) {
	ledger, err := s.LoadLedger(ctx, userID)
	if err != nil {
		return CartDTO{}, err
	}
	ledger.UpdateQuantity(productID, size, color, qty)

	if err := s.persist(ctx, userID, ledger); err != nil {
		return CartDTO{}, err
	}
	return toDTO(ledger), nil
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID, size, color string) (CartDTO, error) {
	ledger, err := s.LoadLedger(ctx, userID)
	if err != nil {
		return CartDTO{}, err
	}
	ledger.Remove(productID, size, color)

	if err := s.persist(ctx, userID, ledger); err != nil {
		return CartDTO{}, err
	}
	return toDTO(ledger), nil
}

func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// LoadLedger rehydrates the user's cart against the live catalog. Lines whose
// product was deleted or hidden since the last save are dropped.
func (s *service) LoadLedger(ctx context.Context, userID uuid.UUID) (*Ledger, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	snapshot, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	ledger := NewLedger()
	if len(snapshot) == 0 {
		return ledger, nil
	}

	ids := make([]uuid.UUID, 0, len(snapshot))
	for _, line := range snapshot {
		ids = append(ids, line.ProductID)
	}
	resolved, err := s.products.ResolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, line := range snapshot {
		product, ok := resolved[line.ProductID]
		if !ok {
			continue
		}
		ledger.Add(product, line.Size, line.Color, line.Quantity)
	}
	return ledger, nil
}

func (s *service) persist(ctx context.Context, userID uuid.UUID, ledger *Ledger) error {
	lines := ledger.Lines()
	snapshot := make([]snapshotLine, 0, len(lines))
	for _, line := range lines {
		snapshot = append(snapshot, snapshotLine{
			ProductID: line.Product.ID,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
		})
	}
	if err := s.store.Save(ctx, userID, snapshot); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func toDTO(ledger *Ledger) CartDTO {
	return CartDTO{
		Items:      ledger.Lines(),
		TotalItems: ledger.TotalItems(),
		TotalPrice: ledger.TotalPrice(),
	}
}
