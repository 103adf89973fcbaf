package handler

import (
	"errors"
	"net/http"
	"strconv"

	"retailcore/pkg/logger"
	"retailcore/store-service/internal/app/store/entity"
	"retailcore/store-service/internal/app/store/render"
	"retailcore/store-service/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// StoreHandler обрабатывает HTTP запросы магазина с использованием Gin
type StoreHandler struct {
	catalog   *service.ProductCatalog
	directory *service.CustomerDirectory
	processor *service.TransactionProcessor
	pricing   *service.PricingService
	reports   *service.ReportService
	receipts  render.ReceiptFormatter
	validator *validator.Validate
}

// NewStoreHandler создает обработчик с внедрением зависимостей
func NewStoreHandler(
	catalog *service.ProductCatalog,
	directory *service.CustomerDirectory,
	processor *service.TransactionProcessor,
	pricing *service.PricingService,
	reports *service.ReportService,
	receipts render.ReceiptFormatter,
) *StoreHandler {
	return &StoreHandler{
		catalog:   catalog,
		directory: directory,
		processor: processor,
		pricing:   pricing,
		reports:   reports,
		receipts:  receipts,
		validator: validator.New(),
	}
}

// === PRODUCTS ===

// ListProducts обрабатывает GET /products (?category_id=N фильтрует по категории)
func (h *StoreHandler) ListProducts(c *gin.Context) {
	var products []entity.Product
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		products = h.catalog.ByCategory(categoryID)
	} else {
		products = h.catalog.ListAll()
	}

	items := make([]entity.ProductResponse, 0, len(products))
	for _, p := range products {
		item, err := h.productResponse(p.ID)
		if err != nil {
			respondError(c, err, "Failed to get products")
			return
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Products: items, Total: len(items)})
}

// GetProduct обрабатывает GET /products/:id
func (h *StoreHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "Invalid product ID")
	if !ok {
		return
	}

	response, err := h.productResponse(id)
	if err != nil {
		respondError(c, err, "Failed to get product")
		return
	}
	c.JSON(http.StatusOK, response)
}

// CreateProduct обрабатывает POST /products
func (h *StoreHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if !h.bind(c, &req) {
		return
	}

	var category *entity.Category
	if req.CategoryID != 0 {
		found, err := h.catalog.Category(req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			return
		}
		category = found
	}

	product := entity.NewProduct(req.ID, req.Name, req.Price, req.Quantity, category)
	if err := h.catalog.Add(product); err != nil {
		respondError(c, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdatePrice обрабатывает PUT /products/:id/price
func (h *StoreHandler) UpdatePrice(c *gin.Context) {
	id, ok := pathID(c, "Invalid product ID")
	if !ok {
		return
	}

	var req entity.UpdatePriceRequest
	if !h.bind(c, &req) {
		return
	}

	product, err := h.pricing.UpdatePrice(c.Request.Context(), id, req.Price)
	if err != nil {
		respondError(c, err, "Failed to update price")
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateStock обрабатывает PUT /products/:id/stock
func (h *StoreHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c, "Invalid product ID")
	if !ok {
		return
	}

	var req entity.UpdateStockRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.catalog.UpdateQuantity(id, req.Quantity); err != nil {
		respondError(c, err, "Failed to update stock")
		return
	}

	product, err := h.catalog.Get(id)
	if err != nil {
		respondError(c, err, "Failed to update stock")
		return
	}
	c.JSON(http.StatusOK, product)
}

// SetDiscount обрабатывает PUT /products/:id/discount
func (h *StoreHandler) SetDiscount(c *gin.Context) {
	id, ok := pathID(c, "Invalid product ID")
	if !ok {
		return
	}

	var req entity.SetDiscountRequest
	if !h.bind(c, &req) {
		return
	}

	kind, err := entity.ParseDiscountKind(req.Kind)
	if err != nil {
		respondError(c, err, "Invalid discount")
		return
	}

	if err := h.catalog.SetDiscount(id, entity.Discount{Kind: kind, Value: req.Value}); err != nil {
		respondError(c, err, "Failed to set discount")
		return
	}

	response, err := h.productResponse(id)
	if err != nil {
		respondError(c, err, "Failed to set discount")
		return
	}
	c.JSON(http.StatusOK, response)
}

// === CATEGORIES ===

// ListCategories обрабатывает GET /categories
func (h *StoreHandler) ListCategories(c *gin.Context) {
	categories := h.catalog.Categories()
	c.JSON(http.StatusOK, entity.CategoryListResponse{Categories: categories, Total: len(categories)})
}

// CreateCategory обрабатывает POST /categories
func (h *StoreHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if !h.bind(c, &req) {
		return
	}

	category := entity.NewCategory(req.ID, req.Name)
	if err := h.catalog.AddCategory(category); err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// === CUSTOMERS ===

// ListCustomers обрабатывает GET /customers
func (h *StoreHandler) ListCustomers(c *gin.Context) {
	customers := h.directory.ListAll()
	c.JSON(http.StatusOK, entity.CustomerListResponse{Customers: customers, Total: len(customers)})
}

// GetCustomer обрабатывает GET /customers/:id
func (h *StoreHandler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "Invalid customer ID")
	if !ok {
		return
	}

	customer, err := h.directory.Get(id)
	if err != nil {
		respondError(c, err, "Failed to get customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetHistory обрабатывает GET /customers/:id/history
// ?format=text возвращает историю в текстовом виде
func (h *StoreHandler) GetHistory(c *gin.Context) {
	id, ok := pathID(c, "Invalid customer ID")
	if !ok {
		return
	}

	records, err := h.directory.HistoryOf(id)
	if err != nil {
		respondError(c, err, "Failed to get purchase history")
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, render.PlainTextHistory(records))
		return
	}
	c.JSON(http.StatusOK, entity.HistoryResponse{CustomerID: id, Purchases: records, Total: len(records)})
}

// CreateCustomer обрабатывает POST /customers
func (h *StoreHandler) CreateCustomer(c *gin.Context) {
	var req entity.CreateCustomerRequest
	if !h.bind(c, &req) {
		return
	}

	customer := entity.NewCustomer(req.ID, req.Name, req.Email)
	if err := h.directory.Add(customer); err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer обрабатывает PUT /customers/:id
func (h *StoreHandler) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c, "Invalid customer ID")
	if !ok {
		return
	}

	var req entity.UpdateCustomerRequest
	if !h.bind(c, &req) {
		return
	}

	customer, err := h.directory.UpdateContact(id, req.Name, req.Email)
	if err != nil {
		respondError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// === TRANSACTIONS & REPORTS ===

// CreateTransaction обрабатывает POST /transactions
// Возвращает результат транзакции и чек в настроенном формате
func (h *StoreHandler) CreateTransaction(c *gin.Context) {
	var req entity.CreateTransactionRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.processor.Process(c.Request.Context(), req.CustomerID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to process transaction")
		return
	}

	receipt, err := h.receipts.Receipt(*result)
	if err != nil {
		// Транзакция уже проведена, отдаем результат без чека
		logger.Error().Err(err).Str("transaction_id", result.TransactionID.String()).Msg("Failed to render receipt")
	}

	c.JSON(http.StatusCreated, entity.TransactionResponse{Transaction: *result, Receipt: receipt})
}

// GetInventory обрабатывает GET /inventory (текст)
func (h *StoreHandler) GetInventory(c *gin.Context) {
	c.String(http.StatusOK, render.InventoryView(h.catalog.ListAll()))
}

// GetReport обрабатывает GET /reports/:name (текст)
func (h *StoreHandler) GetReport(c *gin.Context) {
	report, err := h.reports.Generate(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, render.ErrUnknownReport) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		respondError(c, err, "Failed to generate report")
		return
	}
	c.String(http.StatusOK, report)
}

// === HELPERS ===

// productResponse берет товар, скидку и цену одним снимком каталога
func (h *StoreHandler) productResponse(id int) (entity.ProductResponse, error) {
	product, discount, price, err := h.catalog.Quote(id)
	if err != nil {
		return entity.ProductResponse{}, err
	}
	return entity.ProductResponse{Product: product, Discount: discount, DiscountedPrice: price}, nil
}

// bind разбирает JSON тело и валидирует его. false - ответ с ошибкой уже отправлен
func (h *StoreHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return false
	}
	return true
}

func pathID(c *gin.Context, message string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return 0, false
	}
	return id, true
}

// respondError переводит доменные ошибки в HTTP статусы
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrDuplicateKey):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidQuantity), errors.Is(err, entity.ErrInvalidDiscount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldError := validationErrors[0]
		return fieldError.Field() + " is " + fieldError.Tag()
	}
	return "Validation failed"
}
