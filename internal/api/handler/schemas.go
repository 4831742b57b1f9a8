package handler

import (
	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

// Request/response types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes. One canonical naming convention: lowerCamel.

// --- Session ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	SessionID string   `json:"sessionId"`
	Token     string   `json:"token"`
	Roles     []string `json:"roles"`
	MultiRole bool     `json:"multiRole"`
	Landing   string   `json:"landing"`
}

type selectRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type sessionResponse struct {
	Authenticated bool     `json:"authenticated"`
	Email         string   `json:"email,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	SelectedRole  string   `json:"selectedRole,omitempty"`
	MultiRole     bool     `json:"multiRole"`
	ShowAdminNav  bool     `json:"showAdminNav"`
	Landing       string   `json:"landing"`
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// --- Menu items ---

type menuItemRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
	IsAvailable bool    `json:"isAvailable"`
	ImageURL    string  `json:"imageUrl"`
}

func (r menuItemRequest) toDomain() domain.MenuItem {
	return domain.MenuItem{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		IsAvailable: r.IsAvailable,
		ImageURL:    r.ImageURL,
	}
}

// --- Orders ---

type orderMenuItemRequest struct {
	MenuItemID int64 `json:"menuItemId" validate:"required"`
}

type orderRequest struct {
	CustomerName   string                 `json:"customerName" validate:"required"`
	Phone          string                 `json:"phone"        validate:"required"`
	Email          string                 `json:"email"        validate:"omitempty,email"`
	OrderDate      string                 `json:"orderDate"    validate:"required"`
	OrderMenuItems []orderMenuItemRequest `json:"orderMenuItems" validate:"min=1,dive"`
}

func (r orderRequest) toDomain() domain.Order {
	order := domain.Order{
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Email:        r.Email,
		OrderDate:    r.OrderDate,
	}
	for _, omi := range r.OrderMenuItems {
		order.OrderMenuItems = append(order.OrderMenuItems, domain.OrderMenuItem{MenuItemID: omi.MenuItemID})
	}
	return order
}

// ordersViewResponse joins the two parallel fetches the orders screen needs.
type ordersViewResponse struct {
	Orders           []domain.Order    `json:"orders"`
	MenuItems        []domain.MenuItem `json:"menuItems"`
	ShowAdminActions bool              `json:"showAdminActions"`
}

// --- Drafts ---

type createDraftRequest struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	OrderDate    string `json:"orderDate"`
}

type updateDraftRequest struct {
	CustomerName *string `json:"customerName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	OrderDate    *string `json:"orderDate,omitempty"`
}

type draftTotalResponse struct {
	Total float64 `json:"total"`
}

type paymentRequest struct {
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVV    string `json:"cvv"    validate:"required"`
}

type paymentResponse struct {
	PaymentConfirm string `json:"paymentConfirm"`
}

// --- Users / roles / customers ---

type userRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Roles    []struct {
		Name string `json:"name" validate:"required"`
	} `json:"roles" validate:"dive"`
}

func (r userRequest) toDomain() domain.User {
	user := domain.User{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
	for _, role := range r.Roles {
		user.Roles = append(user.Roles, domain.Role{Name: role.Name})
	}
	return user
}

type roleRequest struct {
	Name string `json:"name" validate:"required"`
}

type customerRequest struct {
	CustomerName string `json:"customerName" validate:"required"`
	Phone        string `json:"phone"        validate:"required"`
}

// --- Images ---

type imagesResponse struct {
	Images []ports.ImageResult `json:"images"`
}
