package purchase

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
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/metrics"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/money"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/ordercalc"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/pagination"
)

var oneHundred = decimal.NewFromInt(100)

// Service defines purchase order operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.PurchaseOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error)
	Confirm(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Receive(ctx context.Context, id uuid.UUID, input ReceiveInput) (*models.PurchaseOrder, error)
}

// productCatalog resolves product snapshots for order lines.
type productCatalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// stockApplier posts receipt movements inside the order transaction.
type stockApplier interface {
	Apply(ctx context.Context, tx *gorm.DB, input inventory.MovementInput) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	client       txRunner
	repo         Repository
	products     productCatalog
	stock        stockApplier
	orderMetrics *metrics.OrderMetrics
	logg         *logger.Logger
}

// NewService builds a purchase order service with the required dependencies.
func NewService(client txRunner, repo Repository, products productCatalog, stock stockApplier, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("purchase repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock applier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		client:       client,
		repo:         repo,
		products:     products,
		stock:        stock,
		orderMetrics: orderMetrics,
		logg:         logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.PurchaseOrder, error) {
	if input.SupplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	if input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one line")
	}
	if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(oneHundred) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tax rate %s out of range", input.TaxRate))
	}
	if input.DiscountAmount.IsNegative() || input.ShippingFee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount and shipping fee cannot be negative")
	}

	productIDs := make([]uuid.UUID, 0, len(input.Lines))
	for _, line := range input.Lines {
		productIDs = append(productIDs, line.ProductID)
	}
	catalog, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order products")
	}
	productByID := make(map[uuid.UUID]models.Product, len(catalog))
	for _, product := range catalog {
		productByID[product.ID] = product
	}

	details := make([]ordercalc.LineItem, 0, len(input.Lines))
	items := make([]models.PurchaseOrderItem, 0, len(input.Lines))
	for i, line := range input.Lines {
		product, ok := productByID[line.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %d: unknown product %s", i, line.ProductID))
		}
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.CostPrice
		}
		details = append(details, ordercalc.LineItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
		items = append(items, models.PurchaseOrderItem{
			ProductID:   line.ProductID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   line.Quantity.Mul(unitPrice),
			Notes:       line.Notes,
		})
	}

	opts := ordercalc.PurchaseOrderOptions(input.TaxRate)
	opts.OrderLevelDiscountAmount = input.DiscountAmount
	opts.ShippingFee = input.ShippingFee
	totals, err := ordercalc.Aggregate(details, opts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "aggregate order totals")
	}

	if input.GrandTotal != nil && !input.GrandTotal.Equal(totals.GrandTotal) {
		s.orderMetrics.IncTotalMismatch("purchase")
		s.logg.Warn(ctx, fmt.Sprintf(
			"purchase order total mismatch: client sent %s, server computed %s",
			money.VND(*input.GrandTotal), money.VND(totals.GrandTotal),
		))
	}

	order := &models.PurchaseOrder{
		Code:           newOrderCode("PO", input.OrderDate),
		SupplierID:     input.SupplierID,
		WarehouseID:    input.WarehouseID,
		Status:         enums.PurchaseOrderStatusDraft,
		OrderDate:      input.OrderDate,
		ExpectedDate:   input.ExpectedDate,
		TaxRate:        input.TaxRate,
		DiscountAmount: totals.DiscountAmount,
		ShippingFee:    input.ShippingFee,
		TotalQuantity:  totals.TotalQuantity,
		Subtotal:       totals.Subtotal,
		TaxableAmount:  totals.TaxableAmount,
		TaxAmount:      totals.TaxAmount,
		GrandTotal:     totals.GrandTotal,
		Notes:          input.Notes,
		CreatedBy:      input.ActorID,
		Items:          items,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase order")
	}
	s.orderMetrics.IncSubmitted("purchase")
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchase orders")
	}
	return list, nil
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, enums.PurchaseOrderStatusConfirmed)
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.transition(ctx, id, enums.PurchaseOrderStatusCancelled)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, target enums.PurchaseOrderStatus) (*models.PurchaseOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("purchase order cannot move from %s to %s", order.Status, target))
	}
	if err := s.repo.Update(ctx, id, map[string]any{"status": target}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update purchase order status")
	}
	order.Status = target
	return order, nil
}

// Receive posts a goods receipt: received quantities roll up per line, stock
// moves into the order's warehouse, and the order advances to
// partially_received or completed.
func (s *service) Receive(ctx context.Context, id uuid.UUID, input ReceiveInput) (*models.PurchaseOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanReceive() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("purchase order in status %s cannot receive goods", order.Status))
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "receipt must contain at least one line")
	}

	itemByID := make(map[uuid.UUID]*models.PurchaseOrderItem, len(order.Items))
	for i := range order.Items {
		itemByID[order.Items[i].ID] = &order.Items[i]
	}

	var combined error
	for _, line := range input.Lines {
		item, ok := itemByID[line.ItemID]
		if !ok {
			combined = multierr.Append(combined, fmt.Errorf("item %s is not part of this order", line.ItemID))
			continue
		}
		if line.Quantity.Sign() <= 0 {
			combined = multierr.Append(combined, fmt.Errorf("item %s: received quantity must be positive", line.ItemID))
			continue
		}
		remaining := item.Quantity.Sub(item.ReceivedQty)
		if line.Quantity.GreaterThan(remaining) {
			combined = multierr.Append(combined,
				fmt.Errorf("item %s: received %s exceeds remaining %s", line.ItemID, line.Quantity, remaining))
		}
	}
	if combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "validate goods receipt").
			WithDetails(multierr.Errors(combined))
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, line := range input.Lines {
			item := itemByID[line.ItemID]
			item.ReceivedQty = item.ReceivedQty.Add(line.Quantity)
			if err := repo.UpdateItem(ctx, line.ItemID, map[string]any{
				"received_qty": item.ReceivedQty,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update received quantity")
			}
			if err := s.stock.Apply(ctx, tx, inventory.MovementInput{
				ProductID:   item.ProductID,
				WarehouseID: order.WarehouseID,
				Quantity:    line.Quantity,
				Reason:      enums.InventoryMoveReasonPurchaseReceipt,
				ReferenceID: &order.ID,
				Notes:       input.Notes,
				ActorID:     input.ActorID,
			}); err != nil {
				return err
			}
		}

		next := enums.PurchaseOrderStatusCompleted
		for _, item := range order.Items {
			if itemByID[item.ID].ReceivedQty.LessThan(item.Quantity) {
				next = enums.PurchaseOrderStatusPartiallyReceived
				break
			}
		}
		if order.Status != next {
			if !order.Status.CanTransitionTo(next) {
				return pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("purchase order cannot move from %s to %s", order.Status, next))
			}
			if err := repo.Update(ctx, order.ID, map[string]any{"status": next}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update purchase order status")
			}
			order.Status = next
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// newOrderCode builds a human-readable document number like PO-20250801-1A2B3C.
func newOrderCode(prefix string, orderDate time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, orderDate.Format("20060102"), suffix)
}
