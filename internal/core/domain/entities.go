package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrClientNotFound = errors.New("client not found")
var ErrCommentNotFound = errors.New("comment not found")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Product is a catalog entry. Its current price seeds new order lines.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	SKU         string    `json:"sku" bson:"sku"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Catalog returns the projection the order composer consumes.
func (p *Product) Catalog() CatalogProduct {
	return CatalogProduct{ID: p.ID, Name: p.Name, Price: p.Price}
}

// Client is a customer record that orders reference.
type Client struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CommentRelation names the entity category a comment is attached to.
type CommentRelation string

const (
	CommentOnOrder   CommentRelation = "order"
	CommentOnClient  CommentRelation = "client"
	CommentOnProduct CommentRelation = "product"
)

var ErrInvalidCommentRelation = errors.New("invalid comment relation")

// Valid reports whether the relation names a known entity category.
func (r CommentRelation) Valid() bool {
	return r == CommentOnOrder || r == CommentOnClient || r == CommentOnProduct
}

// Comment is a free-text note attached to an order, client or product.
type Comment struct {
	ID        string          `json:"id" bson:"_id,omitempty"`
	Content   string          `json:"content" bson:"content"`
	RelatedTo CommentRelation `json:"related_to" bson:"related_to"`
	RelatedID string          `json:"related_id" bson:"related_id"`
	AuthorID  string          `json:"author_id" bson:"author_id"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}
