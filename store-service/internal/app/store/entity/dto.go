package entity

// CreateCategoryRequest - запрос на создание категории
type CreateCategoryRequest struct {
	ID   int    `json:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// CreateProductRequest - запрос на добавление товара в каталог
type CreateProductRequest struct {
	ID         int     `json:"id" validate:"required,gt=0"`
	Name       string  `json:"name" validate:"required,min=2,max=200"`
	Price      float64 `json:"price" validate:"gte=0"`
	Quantity   int     `json:"quantity" validate:"gte=0"`
	CategoryID int     `json:"category_id" validate:"gte=0"` // 0 - без категории
}

// UpdatePriceRequest - запрос на изменение цены
type UpdatePriceRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
}

// UpdateStockRequest - запрос на выставление остатка
type UpdateStockRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// SetDiscountRequest - запрос на назначение скидки. Kind: none, flat, percentage
type SetDiscountRequest struct {
	Kind  string  `json:"kind" validate:"required,oneof=none flat percentage"`
	Value float64 `json:"value" validate:"gte=0"`
}

// CreateCustomerRequest - запрос на регистрацию покупателя
type CreateCustomerRequest struct {
	ID    int    `json:"id" validate:"required,gt=0"`
	Name  string `json:"name" validate:"required,min=2,max=200"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateCustomerRequest - запрос на изменение контактов покупателя
type UpdateCustomerRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateTransactionRequest - запрос на покупку
type CreateTransactionRequest struct {
	CustomerID int `json:"customer_id" validate:"required,gt=0"`
	ProductID  int `json:"product_id" validate:"required,gt=0"`
	Quantity   int `json:"quantity"` // проверяется процессором (ErrInvalidQuantity)
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ProductResponse - товар вместе с действующей скидкой и ценой после скидки
type ProductResponse struct {
	Product
	Discount        Discount `json:"discount"`
	DiscountedPrice float64  `json:"discounted_price"`
}

// ProductListResponse - список товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

// CategoryListResponse - список категорий
type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}

// CustomerListResponse - список покупателей
type CustomerListResponse struct {
	Customers []Customer `json:"customers"`
	Total     int        `json:"total"`
}

// HistoryResponse - история покупок одного покупателя
type HistoryResponse struct {
	CustomerID int              `json:"customer_id"`
	Purchases  []PurchaseRecord `json:"purchases"`
	Total      int              `json:"total"`
}

// TransactionResponse - результат покупки
type TransactionResponse struct {
	Transaction TransactionResult `json:"transaction"`
	Receipt     string            `json:"receipt"`
}
