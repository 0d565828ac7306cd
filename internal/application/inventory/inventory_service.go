package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
)

// InventoryService handles stock-level business operations outside the
// transfer workflow: receiving, manual adjustments and stock queries.
type InventoryService struct {
	stockRepo       inventory.StockItemRepository
	transactionRepo inventory.InventoryTransactionRepository
	productRepo     catalog.ProductRepository
	warehouseRepo   partner.WarehouseRepository
	eventPublisher  shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	stockRepo inventory.StockItemRepository,
	transactionRepo inventory.InventoryTransactionRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo partner.WarehouseRepository,
) *InventoryService {
	return &InventoryService{
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		warehouseRepo:   warehouseRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ReceiveStock records inbound stock at a warehouse
func (s *InventoryService) ReceiveStock(ctx context.Context, req ReceiveStockRequest, operatorID uuid.UUID) (*StockItemResponse, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	warehouse, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Warehouse is inactive")
	}
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	item, err := s.stockRepo.GetOrCreate(ctx, req.WarehouseID, req.ProductID)
	if err != nil {
		return nil, err
	}

	before := item.Quantity
	if err := item.Increase(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.stockRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	tx, err := inventory.NewInventoryTransaction(
		item.ID, item.WarehouseID, item.ProductID,
		inventory.TransactionTypeInbound, req.Quantity, product.Price,
		before, item.Quantity,
		inventory.SourceTypeReceiving, item.ID.String(),
	)
	if err != nil {
		return nil, err
	}
	tx.WithOperator(operatorID).WithReason(req.Reason)
	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	response := ToStockItemResponse(item)
	return &response, nil
}

// AdjustStock applies a signed manual adjustment to a stock item
func (s *InventoryService) AdjustStock(ctx context.Context, req AdjustStockRequest, operatorID uuid.UUID) (*StockItemResponse, error) {
	if req.Quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Adjustment quantity cannot be zero")
	}

	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	item, err := s.stockRepo.GetOrCreate(ctx, req.WarehouseID, req.ProductID)
	if err != nil {
		return nil, err
	}

	before := item.Quantity
	txType := inventory.TransactionTypeAdjustmentIncrease
	magnitude := req.Quantity
	if req.Quantity.IsNegative() {
		txType = inventory.TransactionTypeAdjustmentDecrease
		magnitude = req.Quantity.Neg()
		if err := item.Decrease(magnitude); err != nil {
			return nil, err
		}
	} else {
		if err := item.Increase(magnitude); err != nil {
			return nil, err
		}
	}

	if err := s.stockRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	tx, err := inventory.NewInventoryTransaction(
		item.ID, item.WarehouseID, item.ProductID,
		txType, magnitude, product.Price,
		before, item.Quantity,
		inventory.SourceTypeManualAdjustment, item.ID.String(),
	)
	if err != nil {
		return nil, err
	}
	tx.WithOperator(operatorID).WithReason(req.Reason)
	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	response := ToStockItemResponse(item)
	return &response, nil
}

// ListByWarehouse lists the stock items held at a warehouse
func (s *InventoryService) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) (*shared.Paginated[StockItemResponse], error) {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}

	items, err := s.stockRepo.FindByWarehouse(ctx, warehouseID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.CountByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	responses := make([]StockItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToStockItemResponse(&items[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByProduct lists a product's stock across warehouses
func (s *InventoryService) ListByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[StockItemResponse], error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	items, err := s.stockRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]StockItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToStockItemResponse(&items[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// WarehouseSummary computes a warehouse's total quantity and value.
// Value uses current product prices at query time.
func (s *InventoryService) WarehouseSummary(ctx context.Context, warehouseID uuid.UUID) (*WarehouseSummaryResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}

	summary, err := s.stockRepo.SummarizeWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	return &WarehouseSummaryResponse{
		WarehouseID:   summary.WarehouseID,
		TotalQuantity: summary.TotalQuantity,
		TotalValue:    summary.TotalValue,
	}, nil
}

// ListTransactions lists the transaction log
func (s *InventoryService) ListTransactions(ctx context.Context, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	txs, err := s.transactionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.transactionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		responses = append(responses, ToTransactionResponse(&txs[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *InventoryService) publishEvents(ctx context.Context, item *inventory.StockItem) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	item.ClearDomainEvents()
}
