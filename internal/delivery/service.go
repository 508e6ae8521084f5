package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/inventory"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
)

// Service defines delivery note operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Delivery, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]models.Delivery, error)
	Ship(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
}

// salesOrders is the slice of the sales service a delivery needs.
type salesOrders interface {
	Get(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
	ApplyDelivery(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, delivered map[uuid.UUID]decimal.Decimal) (*models.SalesOrder, error)
}

// stockApplier posts outbound movements inside the shipment transaction.
type stockApplier interface {
	Apply(ctx context.Context, tx *gorm.DB, input inventory.MovementInput) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	client txRunner
	repo   Repository
	orders salesOrders
	stock  stockApplier
	logg   *logger.Logger
}

// NewService builds a delivery service with the required dependencies.
func NewService(client txRunner, repo Repository, orders salesOrders, stock stockApplier, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("sales order service required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock applier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{client: client, repo: repo, orders: orders, stock: stock, logg: logg}, nil
}

// Create opens a pending delivery note. Stock does not move until Ship.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Delivery, error) {
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery must contain at least one line")
	}
	order, err := s.orders.Get(ctx, input.SalesOrderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanDeliver() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("sales order in status %s cannot be delivered", order.Status))
	}

	itemByID := make(map[uuid.UUID]models.SalesOrderItem, len(order.Items))
	for _, item := range order.Items {
		itemByID[item.ID] = item
	}

	var combined error
	items := make([]models.DeliveryItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		item, ok := itemByID[line.SalesOrderItemID]
		if !ok {
			combined = multierr.Append(combined, fmt.Errorf("item %s is not part of the sales order", line.SalesOrderItemID))
			continue
		}
		if line.Quantity.Sign() <= 0 {
			combined = multierr.Append(combined, fmt.Errorf("item %s: quantity must be positive", line.SalesOrderItemID))
			continue
		}
		remaining := item.Quantity.Sub(item.DeliveredQty)
		if line.Quantity.GreaterThan(remaining) {
			combined = multierr.Append(combined,
				fmt.Errorf("item %s: quantity %s exceeds remaining %s", line.SalesOrderItemID, line.Quantity, remaining))
			continue
		}
		items = append(items, models.DeliveryItem{
			SalesOrderItemID: line.SalesOrderItemID,
			ProductID:        item.ProductID,
			Quantity:         line.Quantity,
		})
	}
	if combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "validate delivery note").
			WithDetails(multierr.Errors(combined))
	}

	delivery := &models.Delivery{
		Code:         newDeliveryCode(time.Now()),
		SalesOrderID: order.ID,
		WarehouseID:  order.WarehouseID,
		Status:       enums.DeliveryStatusPending,
		Notes:        input.Notes,
		CreatedBy:    input.ActorID,
		Items:        items,
	}
	created, err := s.repo.Create(ctx, delivery)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery id required")
	}
	delivery, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery")
	}
	return delivery, nil
}

func (s *service) ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]models.Delivery, error) {
	if salesOrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales order id required")
	}
	deliveries, err := s.repo.ListBySalesOrder(ctx, salesOrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list deliveries")
	}
	return deliveries, nil
}

// Ship moves the goods: every line becomes a negative stock movement and the
// sales order's delivered quantities advance, all in one transaction.
func (s *service) Ship(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	delivery, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status != enums.DeliveryStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("delivery in status %s cannot ship", delivery.Status))
	}

	now := time.Now().UTC()
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		delivered := make(map[uuid.UUID]decimal.Decimal, len(delivery.Items))
		for _, item := range delivery.Items {
			delivered[item.SalesOrderItemID] = item.Quantity
			if err := s.stock.Apply(ctx, tx, inventory.MovementInput{
				ProductID:   item.ProductID,
				WarehouseID: delivery.WarehouseID,
				Quantity:    item.Quantity.Neg(),
				Reason:      enums.InventoryMoveReasonSalesDelivery,
				ReferenceID: &delivery.ID,
				ActorID:     delivery.CreatedBy,
			}); err != nil {
				return err
			}
		}
		if _, err := s.orders.ApplyDelivery(ctx, tx, delivery.SalesOrderID, delivered); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Update(ctx, delivery.ID, map[string]any{
			"status":     enums.DeliveryStatusShipped,
			"shipped_at": now,
		})
	})
	if err != nil {
		return nil, err
	}

	delivery.Status = enums.DeliveryStatusShipped
	delivery.ShippedAt = &now
	s.logg.Info(ctx, fmt.Sprintf("delivery %s shipped for sales order %s", delivery.Code, delivery.SalesOrderID))
	return delivery, nil
}

func (s *service) MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	delivery, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status != enums.DeliveryStatusShipped {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("delivery in status %s cannot be marked delivered", delivery.Status))
	}
	now := time.Now().UTC()
	if err := s.repo.Update(ctx, id, map[string]any{
		"status":       enums.DeliveryStatusDelivered,
		"delivered_at": now,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery status")
	}
	delivery.Status = enums.DeliveryStatusDelivered
	delivery.DeliveredAt = &now
	return delivery, nil
}

// Cancel voids a pending note. Shipped deliveries cannot be cancelled; a
// return flow would be a separate document.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	delivery, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status != enums.DeliveryStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("delivery in status %s cannot be cancelled", delivery.Status))
	}
	if err := s.repo.Update(ctx, id, map[string]any{"status": enums.DeliveryStatusCancelled}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel delivery")
	}
	delivery.Status = enums.DeliveryStatusCancelled
	return delivery, nil
}

// newDeliveryCode builds a document number like DL-20250801-1A2B3C.
func newDeliveryCode(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("DL-%s-%s", at.Format("20060102"), suffix)
}
