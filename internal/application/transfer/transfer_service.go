package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/transfer"
)

// TransferService orchestrates the inter-warehouse transfer workflow:
// request creation with full upfront validation, the status transitions,
// and the transactional stock movement on delivery.
type TransferService struct {
	transferRepo   transfer.TransferRequestRepository
	warehouseRepo  partner.WarehouseRepository
	productRepo    catalog.ProductRepository
	userRepo       identity.UserRepository
	stockRepo      inventory.StockItemRepository
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewTransferService creates a new TransferService
func NewTransferService(
	transferRepo transfer.TransferRequestRepository,
	warehouseRepo partner.WarehouseRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	stockRepo inventory.StockItemRepository,
	scope TransactionScope,
) *TransferService {
	return &TransferService{
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		stockRepo:     stockRepo,
		scope:         scope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TransferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create validates and creates a transfer request in PENDING status.
// Every check runs before any write: a rejected request leaves no state
// behind. The requester must be staff or admin managing the destination
// warehouse; the source must hold sufficient stock of every line.
func (s *TransferService) Create(ctx context.Context, requesterID uuid.UUID, req CreateTransferRequest) (*TransferResponse, error) {
	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	request, err := transfer.NewTransferRequest(
		req.FromWarehouseID, req.ToWarehouseID,
		transfer.TransferType(req.TransferType), requesterID, req.Note,
	)
	if err != nil {
		return nil, err
	}

	fromWarehouse, err := s.warehouseRepo.FindByID(ctx, req.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	toWarehouse, err := s.warehouseRepo.FindByID(ctx, req.ToWarehouseID)
	if err != nil {
		return nil, err
	}

	if !request.Type.Matches(fromWarehouse.Type, toWarehouse.Type) {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Transfer type %s does not match warehouse tiers %s and %s",
				request.Type, fromWarehouse.Type, toWarehouse.Type))
	}

	// The authorization rule is asymmetric: the requester manages the
	// receiving side, not the sending side
	if !toWarehouse.IsManagedBy(requesterID) {
		return nil, shared.NewDomainError("FORBIDDEN", "Requester does not manage the destination warehouse")
	}
	if !fromWarehouse.HasManagers() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source warehouse has no assigned manager")
	}

	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if err := request.AddItem(product.ID, product.Name, line.Quantity, product.Price); err != nil {
			return nil, err
		}

		item, err := s.stockRepo.FindByWarehouseAndProduct(ctx, req.FromWarehouseID, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Source warehouse holds no stock of product %s", product.Name))
			}
			return nil, err
		}
		if !item.HasAtLeast(line.Quantity) {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Source warehouse holds %s of product %s, requested %s",
					item.Quantity, product.Name, line.Quantity))
		}
	}

	if err := request.Submit(); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, request); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, request)

	response := ToTransferResponse(request)
	return &response, nil
}

// GetByID retrieves a transfer request by ID
func (s *TransferService) GetByID(ctx context.Context, id uuid.UUID) (*TransferResponse, error) {
	request, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToTransferResponse(request)
	return &response, nil
}

// List retrieves transfer requests matching the filter
func (s *TransferService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[TransferResponse], error) {
	requests, err := s.transferRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.transferRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransferResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, ToTransferResponse(&requests[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Approve moves a pending request to APPROVED
func (s *TransferService) Approve(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*TransferResponse, error) {
	return s.transition(ctx, id, actorID, func(r *transfer.TransferRequest) error {
		return r.Approve()
	})
}

// Decline moves a pending request to the terminal DECLINED status
func (s *TransferService) Decline(ctx context.Context, id uuid.UUID, actorID uuid.UUID, reason string) (*TransferResponse, error) {
	return s.transition(ctx, id, actorID, func(r *transfer.TransferRequest) error {
		return r.Decline(reason)
	})
}

// Ship moves an approved request to IN_TRANSIT
func (s *TransferService) Ship(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*TransferResponse, error) {
	return s.transition(ctx, id, actorID, func(r *transfer.TransferRequest) error {
		return r.Ship()
	})
}

// Cancel moves a non-terminal request to the terminal CANCELLED status
func (s *TransferService) Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID, reason string) (*TransferResponse, error) {
	return s.transition(ctx, id, actorID, func(r *transfer.TransferRequest) error {
		return r.Cancel(reason)
	})
}

// Deliver completes an in-transit request and moves the stock. The whole
// execution runs in one database transaction: availability of every line
// is re-validated first, then each line decrements the source stock item,
// increments or creates the destination item, and appends a TRANSFER_OUT
// and TRANSFER_IN pair to the transaction log valued at the product's
// current price. Any failure rolls everything back and the request is
// marked FAILED.
func (s *TransferService) Deliver(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*TransferResponse, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		return nil, shared.ErrForbidden
	}

	var completed *transfer.TransferRequest

	execErr := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		request, err := repos.TransferRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !request.Status.CanTransitionTo(transfer.TransferStatusCompleted) {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot deliver transfer in %s status", request.Status))
		}

		// Validate every line before touching anything, so a short line
		// fails the request without partial movement even outside a real
		// database transaction
		sources := make([]*inventory.StockItem, len(request.Items))
		for i, item := range request.Items {
			source, err := repos.StockRepo().FindByWarehouseAndProduct(ctx, request.FromWarehouseID, item.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("INSUFFICIENT_STOCK",
						fmt.Sprintf("Source warehouse holds no stock of product %s", item.ProductName))
				}
				return err
			}
			if !source.HasAtLeast(item.Quantity) {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Source warehouse holds %s of product %s, requested %s",
						source.Quantity, item.ProductName, item.Quantity))
			}
			sources[i] = source
		}

		for i, item := range request.Items {
			product, err := s.productRepo.FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}

			source := sources[i]
			sourceBefore := source.Quantity
			if err := source.Decrease(item.Quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().SaveWithLock(ctx, source); err != nil {
				return err
			}

			destination, err := repos.StockRepo().GetOrCreate(ctx, request.ToWarehouseID, item.ProductID)
			if err != nil {
				return err
			}
			destinationBefore := destination.Quantity
			if err := destination.Increase(item.Quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().SaveWithLock(ctx, destination); err != nil {
				return err
			}

			outTx, err := inventory.NewInventoryTransaction(
				source.ID, request.FromWarehouseID, item.ProductID,
				inventory.TransactionTypeTransferOut, item.Quantity, product.Price,
				sourceBefore, source.Quantity,
				inventory.SourceTypeTransfer, request.ID.String(),
			)
			if err != nil {
				return err
			}
			inTx, err := inventory.NewInventoryTransaction(
				destination.ID, request.ToWarehouseID, item.ProductID,
				inventory.TransactionTypeTransferIn, item.Quantity, product.Price,
				destinationBefore, destination.Quantity,
				inventory.SourceTypeTransfer, request.ID.String(),
			)
			if err != nil {
				return err
			}
			outTx.WithOperator(actorID)
			inTx.WithOperator(actorID)
			if err := repos.TransactionRepo().SaveBatch(ctx, []*inventory.InventoryTransaction{outTx, inTx}); err != nil {
				return err
			}
		}

		if err := request.Complete(); err != nil {
			return err
		}
		if err := repos.TransferRepo().SaveWithLock(ctx, request); err != nil {
			return err
		}

		completed = request
		return nil
	})

	if execErr != nil {
		if errors.Is(execErr, shared.ErrInsufficientStock) {
			s.markFailed(ctx, id, execErr.Error())
		}
		return nil, execErr
	}

	s.publishEvents(ctx, completed)

	response := ToTransferResponse(completed)
	return &response, nil
}

func (s *TransferService) transition(ctx context.Context, id, actorID uuid.UUID, apply func(*transfer.TransferRequest) error) (*TransferResponse, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		return nil, shared.ErrForbidden
	}

	request, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(request); err != nil {
		return nil, err
	}
	if err := s.transferRepo.SaveWithLock(ctx, request); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, request)

	response := ToTransferResponse(request)
	return &response, nil
}

// markFailed records an execution failure in its own unit of work, after
// the delivery transaction has rolled back
func (s *TransferService) markFailed(ctx context.Context, id uuid.UUID, reason string) {
	request, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return
	}
	if err := request.MarkFailed(reason); err != nil {
		return
	}
	if err := s.transferRepo.SaveWithLock(ctx, request); err != nil {
		return
	}
	s.publishEvents(ctx, request)
}

func (s *TransferService) publishEvents(ctx context.Context, request *transfer.TransferRequest) {
	if s.eventPublisher == nil || request == nil {
		return
	}
	events := request.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Notifications ride on these events; delivery is fire and forget
	_ = s.eventPublisher.Publish(ctx, events...)
	request.ClearDomainEvents()
}
