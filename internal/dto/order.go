package dto

import "shopbot/internal/domain"

// OrderRequest is the checkout payload, shared by the web-app data channel
// and the HTTP order endpoints.
type OrderRequest struct {
	UserID         int64         `json:"userId"`
	ChatID         int64         `json:"chatId,omitempty"`
	Cart           []CartLineDTO `json:"cart"`
	UserData       ContactDTO    `json:"userData"`
	DeliveryMethod string        `json:"deliveryMethod"`
	// TotalAmount comes from the client and is informational only; the server
	// recomputes the total from the cart.
	TotalAmount int64 `json:"totalAmount"`
}

type OrderResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber"`
}

type CartLineDTO struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	Price         int64  `json:"price"`
	Quantity      int    `json:"quantity"`
	PackageWeight int    `json:"packageWeight,omitempty"`
}

type ContactDTO struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Comment  string `json:"comment"`
}

func (c ContactDTO) ToDomain() domain.ContactProfile {
	return domain.ContactProfile{
		FullName: c.FullName,
		Phone:    c.Phone,
		Email:    c.Email,
		City:     c.City,
		Address:  c.Address,
		Comment:  c.Comment,
	}
}

func CartToDomain(lines []CartLineDTO) []domain.CartLine {
	cart := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		cart = append(cart, domain.CartLine{
			ProductID:     l.ID,
			Name:          l.Name,
			Unit:          domain.UnitKind(l.Unit),
			Price:         l.Price,
			Quantity:      l.Quantity,
			PackageWeight: l.PackageWeight,
		})
	}
	return cart
}
