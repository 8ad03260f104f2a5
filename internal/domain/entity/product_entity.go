package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories offered by the shop.
const (
	CategoryNoodle  = "義大利麵"
	CategoryDrink   = "飲料"
	CategoryDessert = "甜點"
)

// Product represents a catalogue item. A cart line may only reference
// a product that exists and has Sell set.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Price       int                `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	Category    string             `bson:"category" json:"category"`
	Sell        bool               `bson:"sell" json:"sell"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate checks the document against its schema rules and returns
// the first violation.
func (p *Product) Validate() error {
	if p.Name == "" {
		return &FieldError{Field: "name", Message: "缺少商品名稱"}
	}
	if p.Price < 0 {
		return &FieldError{Field: "price", Message: "商品價格錯誤"}
	}
	if p.Category == "" {
		return &FieldError{Field: "category", Message: "缺少商品分類"}
	}
	return nil
}
