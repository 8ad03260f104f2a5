package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Noodle is the variant selector carried by every cart line. Only the
// three fixed values below are accepted.
type Noodle string

const (
	NoodleSpaghetti Noodle = "直麵"
	NoodlePenne     Noodle = "筆管麵"
	NoodleFettucine Noodle = "寬扁麵"
)

// Valid reports whether the selector is one of the allowed values.
func (n Noodle) Valid() bool {
	switch n {
	case NoodleSpaghetti, NoodlePenne, NoodleFettucine:
		return true
	}
	return false
}

// CartLine is one (product, noodle, quantity) entry in a cart. A cart
// holds at most one line per (product, noodle) pair, and a stored line
// always has a positive quantity.
type CartLine struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Noodle   Noodle             `bson:"noodle" json:"noodle"`
}

// Validate checks the line against its schema rules and returns the
// first violation.
func (l *CartLine) Validate() error {
	if l.Product.IsZero() {
		return &FieldError{Field: "product", Message: "缺少商品欄位"}
	}
	if l.Quantity <= 0 {
		return &FieldError{Field: "quantity", Message: "缺少商品數量"}
	}
	if l.Noodle == "" {
		return &FieldError{Field: "noodle", Message: "缺少麵條種類"}
	}
	if !l.Noodle.Valid() {
		return &FieldError{Field: "noodle", Message: "麵條種類錯誤"}
	}
	return nil
}

// Matches reports whether the line belongs to the compound key
// (product, noodle).
func (l *CartLine) Matches(product primitive.ObjectID, noodle Noodle) bool {
	return l.Product == product && l.Noodle == noodle
}
