package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is an immutable snapshot of a user's cart at checkout plus the
// recipient details. It references the purchasing user by id.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Cart      []CartLine         `bson:"cart" json:"cart"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Address   string             `bson:"address" json:"address"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Validate checks the document against its schema rules and returns
// the first violation. The cart snapshot must be non-empty.
func (o *Order) Validate() error {
	if o.User.IsZero() {
		return &FieldError{Field: "user", Message: "缺少使用者"}
	}
	if len(o.Cart) == 0 {
		return &FieldError{Field: "cart", Message: "購物車不能為空"}
	}
	for i := range o.Cart {
		if err := o.Cart[i].Validate(); err != nil {
			return err
		}
	}
	if o.Name == "" {
		return &FieldError{Field: "name", Message: "缺少取件人姓名"}
	}
	if o.Phone == "" {
		return &FieldError{Field: "phone", Message: "缺少取件人電話"}
	}
	if o.Address == "" {
		return &FieldError{Field: "address", Message: "缺少取件人地址"}
	}
	return nil
}
