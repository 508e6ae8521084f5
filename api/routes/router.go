package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/controllers"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/middleware"
	authsvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/auth"
	bomsvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/bom"
	customersvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/customers"
	deliverysvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/delivery"
	inventorysvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/inventory"
	payrollsvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/payroll"
	productsvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/products"
	purchasesvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/purchase"
	salessvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/sales"
	suppliersvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/suppliers"
	usersvc "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/users"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/auth/session"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/config"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/metrics"
	pkgredis "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/redis"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Auth      authsvc.Service
	Users     usersvc.Service
	Products  productsvc.Service
	Suppliers suppliersvc.Service
	Customers customersvc.Service
	Inventory inventorysvc.Service
	Purchase  purchasesvc.Service
	Sales     salessvc.Service
	Delivery  deliverysvc.Service
	BOM       bomsvc.Service
	Payroll   payrollsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/roles", func(r chi.Router) {
			r.With(middleware.RequirePermission("users:read", logg)).Get("/", controllers.RoleList(svcs.Users, logg))
			r.With(middleware.RequirePermission("users:write", logg)).Post("/", controllers.RoleCreate(svcs.Users, logg))
			r.With(middleware.RequirePermission("users:write", logg)).Patch("/{roleID}", controllers.RoleUpdate(svcs.Users, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RequirePermission("users:read", logg)).Get("/", controllers.UserList(svcs.Users, logg))
			r.With(middleware.RequirePermission("users:read", logg)).Get("/{userID}", controllers.UserGet(svcs.Users, logg))
			r.With(middleware.RequirePermission("users:write", logg)).Post("/", controllers.UserCreate(svcs.Users, logg))
			r.With(middleware.RequirePermission("users:write", logg)).Patch("/{userID}", controllers.UserUpdate(svcs.Users, logg))
			r.With(middleware.RequirePermission("users:write", logg)).Post("/{userID}/reset-password", controllers.UserResetPassword(svcs.Users, logg))
			r.With(middleware.RequirePermission("users:write", logg)).Delete("/{userID}", controllers.UserDeactivate(svcs.Users, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.With(middleware.RequirePermission("products:read", logg)).Get("/", controllers.ProductList(svcs.Products, logg))
			r.With(middleware.RequirePermission("products:read", logg)).Get("/{productID}", controllers.ProductGet(svcs.Products, logg))
			r.With(middleware.RequirePermission("products:write", logg)).Post("/", controllers.ProductCreate(svcs.Products, logg))
			r.With(middleware.RequirePermission("products:write", logg)).Patch("/{productID}", controllers.ProductUpdate(svcs.Products, logg))
			r.With(middleware.RequirePermission("products:write", logg)).Delete("/{productID}", controllers.ProductDeactivate(svcs.Products, logg))

			r.With(middleware.RequirePermission("bom:read", logg)).Get("/{productID}/bom", controllers.BOMActiveForProduct(svcs.BOM, logg))
			r.With(middleware.RequirePermission("bom:read", logg)).Get("/{productID}/bom/explode", controllers.BOMExplode(svcs.BOM, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.With(middleware.RequirePermission("suppliers:read", logg)).Get("/", controllers.SupplierList(svcs.Suppliers, logg))
			r.With(middleware.RequirePermission("suppliers:read", logg)).Get("/{supplierID}", controllers.SupplierGet(svcs.Suppliers, logg))
			r.With(middleware.RequirePermission("suppliers:write", logg)).Post("/", controllers.SupplierCreate(svcs.Suppliers, logg))
			r.With(middleware.RequirePermission("suppliers:write", logg)).Patch("/{supplierID}", controllers.SupplierUpdate(svcs.Suppliers, logg))
			r.With(middleware.RequirePermission("suppliers:write", logg)).Delete("/{supplierID}", controllers.SupplierDeactivate(svcs.Suppliers, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.With(middleware.RequirePermission("customers:read", logg)).Get("/", controllers.CustomerList(svcs.Customers, logg))
			r.With(middleware.RequirePermission("customers:read", logg)).Get("/{customerID}", controllers.CustomerGet(svcs.Customers, logg))
			r.With(middleware.RequirePermission("customers:write", logg)).Post("/", controllers.CustomerCreate(svcs.Customers, logg))
			r.With(middleware.RequirePermission("customers:write", logg)).Patch("/{customerID}", controllers.CustomerUpdate(svcs.Customers, logg))
			r.With(middleware.RequirePermission("customers:write", logg)).Delete("/{customerID}", controllers.CustomerDeactivate(svcs.Customers, logg))
		})

		r.Route("/warehouses", func(r chi.Router) {
			r.With(middleware.RequirePermission("inventory:read", logg)).Get("/", controllers.WarehouseList(svcs.Inventory, logg))
			r.With(middleware.RequirePermission("inventory:read", logg)).Get("/{warehouseID}", controllers.WarehouseGet(svcs.Inventory, logg))
			r.With(middleware.RequirePermission("inventory:write", logg)).Post("/", controllers.WarehouseCreate(svcs.Inventory, logg))
			r.With(middleware.RequirePermission("inventory:write", logg)).Patch("/{warehouseID}", controllers.WarehouseUpdate(svcs.Inventory, logg))

			r.With(middleware.RequirePermission("inventory:read", logg)).Get("/{warehouseID}/inventory", controllers.InventoryLevels(svcs.Inventory, logg))
			r.With(middleware.RequirePermission("inventory:read", logg)).Get("/{warehouseID}/inventory/{productID}", controllers.InventoryLevel(svcs.Inventory, logg))
			r.With(middleware.RequirePermission("inventory:read", logg)).Get("/{warehouseID}/inventory/{productID}/history", controllers.InventoryHistory(svcs.Inventory, logg))
		})

		r.With(middleware.RequirePermission("inventory:write", logg)).Post("/inventory/adjustments", controllers.InventoryAdjust(svcs.Inventory, logg))

		r.Route("/stock-takes", func(r chi.Router) {
			r.With(middleware.RequirePermission("inventory:write", logg)).Post("/", controllers.StockTakeCreate(svcs.Inventory, logg))
			r.With(middleware.RequirePermission("inventory:read", logg)).Get("/{stockTakeID}", controllers.StockTakeGet(svcs.Inventory, logg))
			r.With(middleware.RequirePermission("inventory:write", logg)).Post("/{stockTakeID}/counts", controllers.StockTakeRecordCounts(svcs.Inventory, logg))
			r.With(middleware.RequirePermission("inventory:write", logg)).Post("/{stockTakeID}/reconcile", controllers.StockTakeReconcile(svcs.Inventory, logg))
			r.With(middleware.RequirePermission("inventory:write", logg)).Post("/{stockTakeID}/cancel", controllers.StockTakeCancel(svcs.Inventory, logg))
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.With(middleware.RequirePermission("purchase_orders:read", logg)).Get("/", controllers.PurchaseOrderList(svcs.Purchase, logg))
			r.With(middleware.RequirePermission("purchase_orders:read", logg)).Get("/{orderID}", controllers.PurchaseOrderGet(svcs.Purchase, logg))
			r.With(middleware.RequirePermission("purchase_orders:write", logg)).Post("/", controllers.PurchaseOrderCreate(svcs.Purchase, logg))
			r.With(middleware.RequirePermission("purchase_orders:write", logg)).Post("/{orderID}/confirm", controllers.PurchaseOrderConfirm(svcs.Purchase, logg))
			r.With(middleware.RequirePermission("purchase_orders:write", logg)).Post("/{orderID}/cancel", controllers.PurchaseOrderCancel(svcs.Purchase, logg))
			r.With(middleware.RequirePermission("purchase_orders:write", logg)).Post("/{orderID}/receive", controllers.PurchaseOrderReceive(svcs.Purchase, logg))
		})

		r.Route("/sales-orders", func(r chi.Router) {
			r.With(middleware.RequirePermission("sales_orders:read", logg)).Get("/", controllers.SalesOrderList(svcs.Sales, logg))
			r.With(middleware.RequirePermission("sales_orders:read", logg)).Get("/{orderID}", controllers.SalesOrderGet(svcs.Sales, logg))
			r.With(middleware.RequirePermission("sales_orders:read", logg)).Get("/{orderID}/deliveries", controllers.DeliveryListBySalesOrder(svcs.Delivery, logg))
			r.With(middleware.RequirePermission("sales_orders:write", logg)).Post("/preview", controllers.SalesOrderPreview(svcs.Sales, logg))
			r.With(middleware.RequirePermission("sales_orders:write", logg)).Post("/", controllers.SalesOrderCreate(svcs.Sales, logg))
			r.With(middleware.RequirePermission("sales_orders:write", logg)).Post("/{orderID}/confirm", controllers.SalesOrderConfirm(svcs.Sales, logg))
			r.With(middleware.RequirePermission("sales_orders:write", logg)).Post("/{orderID}/cancel", controllers.SalesOrderCancel(svcs.Sales, logg))
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.With(middleware.RequirePermission("deliveries:read", logg)).Get("/{deliveryID}", controllers.DeliveryGet(svcs.Delivery, logg))
			r.With(middleware.RequirePermission("deliveries:write", logg)).Post("/", controllers.DeliveryCreate(svcs.Delivery, logg))
			r.With(middleware.RequirePermission("deliveries:write", logg)).Post("/{deliveryID}/ship", controllers.DeliveryShip(svcs.Delivery, logg))
			r.With(middleware.RequirePermission("deliveries:write", logg)).Post("/{deliveryID}/delivered", controllers.DeliveryMarkDelivered(svcs.Delivery, logg))
			r.With(middleware.RequirePermission("deliveries:write", logg)).Post("/{deliveryID}/cancel", controllers.DeliveryCancel(svcs.Delivery, logg))
		})

		r.Route("/boms", func(r chi.Router) {
			r.With(middleware.RequirePermission("bom:read", logg)).Get("/{bomID}", controllers.BOMGet(svcs.BOM, logg))
			r.With(middleware.RequirePermission("bom:read", logg)).Get("/{bomID}/cost", controllers.BOMCostRollup(svcs.BOM, logg))
			r.With(middleware.RequirePermission("bom:write", logg)).Post("/", controllers.BOMCreate(svcs.BOM, logg))
			r.With(middleware.RequirePermission("bom:write", logg)).Delete("/{bomID}", controllers.BOMDeactivate(svcs.BOM, logg))
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission("payroll:read", logg)).Get("/", controllers.EmployeeList(svcs.Payroll, logg))
				r.With(middleware.RequirePermission("payroll:read", logg)).Get("/{employeeID}", controllers.EmployeeGet(svcs.Payroll, logg))
				r.With(middleware.RequirePermission("payroll:write", logg)).Post("/", controllers.EmployeeCreate(svcs.Payroll, logg))
				r.With(middleware.RequirePermission("payroll:write", logg)).Patch("/{employeeID}", controllers.EmployeeUpdate(svcs.Payroll, logg))
			})
			r.Route("/entries", func(r chi.Router) {
				r.With(middleware.RequirePermission("payroll:read", logg)).Get("/", controllers.PayrollListByPeriod(svcs.Payroll, logg))
				r.With(middleware.RequirePermission("payroll:read", logg)).Get("/{entryID}", controllers.PayrollEntryGet(svcs.Payroll, logg))
				r.With(middleware.RequirePermission("payroll:write", logg)).Post("/", controllers.PayrollGenerate(svcs.Payroll, logg))
				r.With(middleware.RequirePermission("payroll:approve", logg)).Post("/{entryID}/approve", controllers.PayrollApprove(svcs.Payroll, logg))
				r.With(middleware.RequirePermission("payroll:approve", logg)).Post("/{entryID}/paid", controllers.PayrollMarkPaid(svcs.Payroll, logg))
			})
		})
	})

	return r
}
