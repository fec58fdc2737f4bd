package menu

import (
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/swadishta/internal/money"
	"github.com/MikeMC777/swadishta/internal/validate"
)

// Item is a sellable menu entry.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Price travels as a decimal string to keep paise exact
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"250.00"`
	ImageURL  string          `json:"imageUrl"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateItemRequest payload of creation.
// swagger:model CreateItemRequest
type CreateItemRequest struct {
	Name        string `json:"name"        example:"Paneer Tikka"`
	Description string `json:"description" example:"Char-grilled cottage cheese, mint chutney"`
	Price       string `json:"price"       example:"280.00"`
	ImageURL    string `json:"imageUrl"    example:"https://cdn.example.com/paneer-tikka.jpg"`
}

// UpdateItemRequest payload of partial update. Absent fields are kept.
// swagger:model UpdateItemRequest
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// ListResponse wraps the catalog listing.
// swagger:model MenuListResponse
type ListResponse struct {
	Items []Item `json:"items"`
}

const maxNameLen = 100

// Build validates the request and returns an unsaved Item.
func (r CreateItemRequest) Build() (*Item, error) {
	var errs validate.Errors
	name := strings.TrimSpace(r.Name)
	checkName(&errs, name)
	if strings.TrimSpace(r.Description) == "" {
		errs.Add("description", "description is required")
	}
	price := checkPrice(&errs, r.Price)
	checkImageURL(&errs, r.ImageURL)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return &Item{
		Name:        name,
		Description: strings.TrimSpace(r.Description),
		Price:       price,
		ImageURL:    strings.TrimSpace(r.ImageURL),
	}, nil
}

// Validate checks only the fields that are present.
func (r UpdateItemRequest) Validate() error {
	var errs validate.Errors
	if r.Name != nil {
		checkName(&errs, strings.TrimSpace(*r.Name))
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		errs.Add("description", "description must not be empty")
	}
	if r.Price != nil {
		checkPrice(&errs, *r.Price)
	}
	if r.ImageURL != nil {
		checkImageURL(&errs, *r.ImageURL)
	}
	if r.Name == nil && r.Description == nil && r.Price == nil && r.ImageURL == nil {
		errs.Add("body", "nothing to update")
	}
	return errs.Err()
}

func checkName(errs *validate.Errors, name string) {
	switch {
	case name == "":
		errs.Add("name", "name is required")
	case len(name) > maxNameLen:
		errs.Add("name", "name must not exceed 100 characters")
	}
}

func checkPrice(errs *validate.Errors, raw string) decimal.Decimal {
	p, err := money.Parse(raw)
	if err != nil {
		errs.Add("price", "price must be a decimal number")
		return decimal.Zero
	}
	if p.IsNegative() {
		errs.Add("price", "price must not be negative")
	}
	return p
}

func checkImageURL(errs *validate.Errors, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs.Add("imageUrl", "image url is required")
		return
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs.Add("imageUrl", "image url must be an http(s) url")
	}
}
