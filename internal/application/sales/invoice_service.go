package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktrack/backend/internal/domain/audit"
	"github.com/stocktrack/backend/internal/domain/identity"
	"github.com/stocktrack/backend/internal/domain/sales"
	"github.com/stocktrack/backend/internal/domain/shared"
)

// InvoiceService handles invoice operations. Creation runs inside a
// transaction so the stock decrements and the invoice rows commit or roll
// back together.
type InvoiceService struct {
	invoiceRepo sales.InvoiceRepository
	shopRepo    sales.ShopRepository
	userRepo    identity.UserRepository
	txScope     TransactionScope
	recorder    audit.Recorder
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo sales.InvoiceRepository,
	shopRepo sales.ShopRepository,
	userRepo identity.UserRepository,
	txScope TransactionScope,
	recorder audit.Recorder,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		shopRepo:    shopRepo,
		userRepo:    userRepo,
		txScope:     txScope,
		recorder:    recorder,
	}
}

// Create sells the requested items through a new invoice. Each line takes a
// snapshot of the item's name, code and price, then decrements remaining
// stock with an insufficient-stock guard. Any shortfall rolls the whole
// invoice back and leaves stock untouched.
func (s *InvoiceService) Create(ctx context.Context, actor audit.Actor, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	shopID, err := s.resolveShop(ctx, actor, req.ShopID)
	if err != nil {
		return nil, err
	}

	invoice, err := sales.NewInvoice(shopID, actorRef(actor))
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, line := range req.Lines {
			item, err := repos.ItemRepo().FindByID(ctx, line.ItemID)
			if err != nil {
				return err
			}
			if err := repos.ItemRepo().DecrementRemaining(ctx, item.ID, line.Quantity); err != nil {
				return err
			}
			if err := invoice.AddLine(item.ID, item.Name, item.Code, line.Quantity, item.Price); err != nil {
				return err
			}
		}
		if err := invoice.Validate(); err != nil {
			return err
		}
		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actor, "added new invoice")

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// resolveShop picks the invoice shop: the explicit request value, or the
// creator's shop affiliation when the request leaves it out.
func (s *InvoiceService) resolveShop(ctx context.Context, actor audit.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	shopID := requested
	if shopID == nil && actor.ID != uuid.Nil && s.userRepo != nil {
		user, err := s.userRepo.FindByID(ctx, actor.ID)
		if err == nil && user.ShopID != nil {
			shopID = user.ShopID
		}
	}
	if shopID == nil {
		return uuid.Nil, shared.NewDomainError("INVALID_SHOP", "Invoice requires a shop")
	}
	if _, err := s.shopRepo.FindByID(ctx, *shopID); err != nil {
		return uuid.Nil, err
	}
	return *shopID, nil
}

// GetByID retrieves an invoice with its lines
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves a page of invoices
func (s *InvoiceService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[InvoiceResponse], error) {
	domainFilter := filter.ToDomainFilter()

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Delete removes an invoice and its lines. Sold stock is not restored.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}
