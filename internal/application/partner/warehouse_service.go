package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
)

// WarehouseService handles warehouse-related business operations
type WarehouseService struct {
	warehouseRepo partner.WarehouseRepository
	userRepo      identity.UserRepository
	stockRepo     inventory.StockItemRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(
	warehouseRepo partner.WarehouseRepository,
	userRepo identity.UserRepository,
	stockRepo inventory.StockItemRepository,
) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		userRepo:      userRepo,
		stockRepo:     stockRepo,
	}
}

// Create creates a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.warehouseRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this code already exists")
	}

	warehouse, err := partner.NewWarehouse(req.Code, req.Name, partner.WarehouseType(req.Type))
	if err != nil {
		return nil, err
	}

	capacity := 0
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if req.Location != "" || capacity != 0 {
		if err := warehouse.Update(req.Name, req.Location, capacity); err != nil {
			return nil, err
		}
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List retrieves warehouses matching the filter
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[WarehouseResponse], error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.warehouseRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, ToWarehouseResponse(&warehouses[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a warehouse's information
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := warehouse.Name
	if req.Name != nil {
		name = *req.Name
	}
	location := warehouse.Location
	if req.Location != nil {
		location = *req.Location
	}
	capacity := warehouse.Capacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	if err := warehouse.Update(name, location, capacity); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// AssignManager assigns a staff user as a manager of the warehouse
func (s *WarehouseService) AssignManager(ctx context.Context, warehouseID uuid.UUID, req AssignManagerRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Only staff or admin users can manage warehouses")
	}

	if err := warehouse.AssignManager(user.ID); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// UnassignManager removes a manager from the warehouse
func (s *WarehouseService) UnassignManager(ctx context.Context, warehouseID, userID uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	if err := warehouse.UnassignManager(userID); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Activate marks a warehouse as active
func (s *WarehouseService) Activate(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	warehouse.Activate()
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Deactivate marks a warehouse as inactive. Inactive warehouses cannot
// participate in new transfers.
func (s *WarehouseService) Deactivate(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	warehouse.Deactivate()
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Delete deletes a warehouse. Deletion is refused while stock items still
// reference the warehouse.
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.warehouseRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.stockRepo.CountByWarehouse(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CONFLICT", "Warehouse still has stock records; remove them first")
	}

	return s.warehouseRepo.Delete(ctx, id)
}
