package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity" form:"quantity"`
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" form:"shipping_address" binding:"required"`
	BillingAddress  string `json:"billing_address" form:"billing_address"`
	PaymentMethod   string `json:"payment_method" form:"payment_method" binding:"required,oneof=cash card bkash nagad"`
	Notes           string `json:"notes" form:"notes"`
}

type CreateProductRequest struct {
	Name          string `json:"name" form:"name" binding:"required,max=255"`
	CategoryID    int    `json:"category_id" form:"category_id" binding:"required"`
	Description   string `json:"description" form:"description" binding:"required"`
	Price         string `json:"price" form:"price" binding:"required"`
	SalePrice     string `json:"sale_price" form:"sale_price"`
	StockQuantity int    `json:"stock_quantity" form:"stock_quantity" binding:"min=0"`
	SKU           string `json:"sku" form:"sku" binding:"required"`
	IsFeatured    bool   `json:"is_featured" form:"is_featured"`
	IsActive      bool   `json:"is_active" form:"is_active"`
}

type UpdateProductRequest struct {
	Name          string `json:"name" form:"name"`
	CategoryID    int    `json:"category_id" form:"category_id"`
	Description   string `json:"description" form:"description"`
	Price         string `json:"price" form:"price"`
	SalePrice     string `json:"sale_price" form:"sale_price"`
	StockQuantity *int   `json:"stock_quantity" form:"stock_quantity"`
	SKU           string `json:"sku" form:"sku"`
	IsFeatured    *bool  `json:"is_featured" form:"is_featured"`
	IsActive      *bool  `json:"is_active" form:"is_active"`
}

type CategoryRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=255"`
	Description string `json:"description" form:"description"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
}

type UpdateOrderStatusRequest struct {
	Status        string `json:"status" form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus string `json:"payment_status" form:"payment_status" binding:"omitempty,oneof=pending paid failed"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
