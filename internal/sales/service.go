package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

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

// Service defines sales order operations.
type Service interface {
	Preview(ctx context.Context, input PreviewInput) (ordercalc.Totals, error)
	Create(ctx context.Context, input CreateInput) (*models.SalesOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error)
	Confirm(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
	ApplyDelivery(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, delivered map[uuid.UUID]decimal.Decimal) (*models.SalesOrder, error)
}

// productCatalog resolves product snapshots for order lines.
type productCatalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// stockReserver manages reserved quantities for confirmed orders.
type stockReserver interface {
	Reserve(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID, quantity decimal.Decimal) error
	Release(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID, quantity decimal.Decimal) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	client       txRunner
	repo         Repository
	products     productCatalog
	stock        stockReserver
	orderMetrics *metrics.OrderMetrics
	logg         *logger.Logger
}

// NewService builds a sales order service with the required dependencies.
func NewService(client txRunner, repo Repository, products productCatalog, stock stockReserver, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock reserver required")
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

// Preview recomputes totals for a draft without persisting anything. The
// client calls this while the cart is being edited.
func (s *service) Preview(ctx context.Context, input PreviewInput) (ordercalc.Totals, error) {
	if input.ShippingFee.IsNegative() {
		return ordercalc.Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "shipping fee cannot be negative")
	}
	_, details, err := s.resolveLines(ctx, input.Lines)
	if err != nil {
		return ordercalc.Totals{}, err
	}
	totals, err := ordercalc.Aggregate(details, ordercalc.SalesOrderOptions(input.ShippingFee))
	if err != nil {
		return ordercalc.Totals{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "aggregate order totals")
	}
	return totals, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.SalesOrder, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if input.ShippingFee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping fee cannot be negative")
	}

	items, details, err := s.resolveLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	totals, err := ordercalc.Aggregate(details, ordercalc.SalesOrderOptions(input.ShippingFee))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "aggregate order totals")
	}

	mismatch := false
	if input.GrandTotal != nil && !input.GrandTotal.Equal(totals.GrandTotal) {
		mismatch = true
		s.orderMetrics.IncTotalMismatch("sales")
		s.logg.Warn(ctx, fmt.Sprintf(
			"sales order total mismatch: client sent %s, server computed %s",
			money.VND(*input.GrandTotal), money.VND(totals.GrandTotal),
		))
	}

	order := &models.SalesOrder{
		Code:           newOrderCode("SO", input.OrderDate),
		CustomerID:     input.CustomerID,
		WarehouseID:    input.WarehouseID,
		Status:         enums.SalesOrderStatusDraft,
		OrderDate:      input.OrderDate,
		ShippingFee:    input.ShippingFee,
		TotalQuantity:  totals.TotalQuantity,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxableAmount:  totals.TaxableAmount,
		TaxAmount:      totals.TaxAmount,
		GrandTotal:     totals.GrandTotal,
		TotalsMismatch: mismatch,
		Notes:          input.Notes,
		CreatedBy:      input.ActorID,
		Items:          items,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sales order")
	}
	s.orderMetrics.IncSubmitted("sales")
	return created, nil
}

// resolveLines joins the submitted lines with the catalog, filling in prices
// and tax rates the client omitted.
func (s *service) resolveLines(ctx context.Context, lines []LineInput) ([]models.SalesOrderItem, []ordercalc.LineItem, error) {
	if len(lines) == 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one line")
	}

	productIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	catalog, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order products")
	}
	productByID := make(map[uuid.UUID]models.Product, len(catalog))
	for _, product := range catalog {
		productByID[product.ID] = product
	}

	items := make([]models.SalesOrderItem, 0, len(lines))
	details := make([]ordercalc.LineItem, 0, len(lines))
	for i, line := range lines {
		product, ok := productByID[line.ProductID]
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %d: unknown product %s", i, line.ProductID))
		}
		if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(oneHundred) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %d: discount percent %s out of range", i, line.DiscountPercent))
		}

		unitPrice := product.SalePrice
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		taxRate := product.TaxRate
		if line.TaxRate != nil {
			taxRate = *line.TaxRate
		}
		if taxRate.IsNegative() || taxRate.GreaterThan(oneHundred) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %d: tax rate %s out of range", i, taxRate))
		}

		details = append(details, ordercalc.LineItem{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       unitPrice,
			DiscountPercent: line.DiscountPercent,
			TaxRate:         taxRate,
		})
		items = append(items, models.SalesOrderItem{
			ProductID:       line.ProductID,
			ProductName:     product.Name,
			Unit:            product.Unit,
			Quantity:        line.Quantity,
			UnitPrice:       unitPrice,
			DiscountPercent: line.DiscountPercent,
			TaxRate:         taxRate,
			LineTotal:       line.Quantity.Mul(unitPrice),
			Notes:           line.Notes,
		})
	}
	return items, details, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sales order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales orders")
	}
	return list, nil
}

// Confirm reserves stock for every line and moves the order to confirmed.
// Reservation failure rolls the whole confirmation back.
func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(enums.SalesOrderStatusConfirmed) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("sales order cannot move from %s to confirmed", order.Status))
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := s.stock.Reserve(ctx, tx, item.ProductID, order.WarehouseID, item.Quantity); err != nil {
				return err
			}
		}
		return s.repo.WithTx(tx).Update(ctx, order.ID, map[string]any{
			"status": enums.SalesOrderStatusConfirmed,
		})
	})
	if err != nil {
		return nil, err
	}
	order.Status = enums.SalesOrderStatusConfirmed
	return order, nil
}

// Cancel releases any outstanding reservations and closes the order.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(enums.SalesOrderStatusCancelled) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("sales order cannot move from %s to cancelled", order.Status))
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if order.Status == enums.SalesOrderStatusConfirmed {
			for _, item := range order.Items {
				outstanding := item.Quantity.Sub(item.DeliveredQty)
				if outstanding.Sign() <= 0 {
					continue
				}
				if err := s.stock.Release(ctx, tx, item.ProductID, order.WarehouseID, outstanding); err != nil {
					return err
				}
			}
		}
		return s.repo.WithTx(tx).Update(ctx, order.ID, map[string]any{
			"status": enums.SalesOrderStatusCancelled,
		})
	})
	if err != nil {
		return nil, err
	}
	order.Status = enums.SalesOrderStatusCancelled
	return order, nil
}

// ApplyDelivery rolls delivered quantities onto the order lines inside the
// caller's transaction, releases the matching reservations, and advances the
// order status. The delivery module owns the actual stock movements.
func (s *service) ApplyDelivery(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, delivered map[uuid.UUID]decimal.Decimal) (*models.SalesOrder, error) {
	repo := s.repo.WithTx(tx)
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sales order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales order")
	}
	if !order.Status.CanDeliver() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("sales order in status %s cannot be delivered", order.Status))
	}

	itemByID := make(map[uuid.UUID]*models.SalesOrderItem, len(order.Items))
	for i := range order.Items {
		itemByID[order.Items[i].ID] = &order.Items[i]
	}

	var combined error
	for itemID, quantity := range delivered {
		item, ok := itemByID[itemID]
		if !ok {
			combined = multierr.Append(combined, fmt.Errorf("item %s is not part of this order", itemID))
			continue
		}
		if quantity.Sign() <= 0 {
			combined = multierr.Append(combined, fmt.Errorf("item %s: delivered quantity must be positive", itemID))
			continue
		}
		remaining := item.Quantity.Sub(item.DeliveredQty)
		if quantity.GreaterThan(remaining) {
			combined = multierr.Append(combined,
				fmt.Errorf("item %s: delivered %s exceeds remaining %s", itemID, quantity, remaining))
		}
	}
	if combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "validate delivery").
			WithDetails(multierr.Errors(combined))
	}

	for itemID, quantity := range delivered {
		item := itemByID[itemID]
		item.DeliveredQty = item.DeliveredQty.Add(quantity)
		if err := repo.UpdateItem(ctx, itemID, map[string]any{
			"delivered_qty": item.DeliveredQty,
		}); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivered quantity")
		}
		if err := s.stock.Release(ctx, tx, item.ProductID, order.WarehouseID, quantity); err != nil {
			return nil, err
		}
	}

	next := enums.SalesOrderStatusCompleted
	for _, item := range order.Items {
		if itemByID[item.ID].DeliveredQty.LessThan(item.Quantity) {
			next = enums.SalesOrderStatusPartiallyDelivered
			break
		}
	}
	if order.Status != next {
		if !order.Status.CanTransitionTo(next) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("sales order cannot move from %s to %s", order.Status, next))
		}
		if err := repo.Update(ctx, order.ID, map[string]any{"status": next}); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sales order status")
		}
		order.Status = next
	}
	return order, nil
}

// newOrderCode builds a human-readable document number like SO-20250801-1A2B3C.
func newOrderCode(prefix string, orderDate time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, orderDate.Format("20060102"), suffix)
}
