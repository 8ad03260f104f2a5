package entity

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles. Everything that isn't an admin is a plain user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	accountRE = regexp.MustCompile(`^[A-Za-z0-9]{4,20}$`)
	emailRE   = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// User is the aggregate root for the account domain. The cart and the
// list of currently valid session tokens are embedded in the document,
// so every cart edit and token operation is a read-modify-write of one
// user record.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Account   string             `bson:"account" json:"account"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialised
	Role      string             `bson:"role" json:"role"`
	Tokens    []string           `bson:"tokens" json:"-"`
	Cart      []CartLine         `bson:"cart" json:"cart"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// CartQuantity is the derived total quantity across all cart lines.
func (u *User) CartQuantity() int {
	total := 0
	for _, l := range u.Cart {
		total += l.Quantity
	}
	return total
}

// Validate checks the document against its schema rules and returns
// the first violation. Password is validated against its plain-text
// rules before hashing, so only presence is checked here.
func (u *User) Validate() error {
	if u.Account == "" {
		return &FieldError{Field: "account", Message: "缺少使用者帳號"}
	}
	if !accountRE.MatchString(u.Account) {
		return &FieldError{Field: "account", Message: "使用者帳號格式錯誤"}
	}
	if u.Email == "" {
		return &FieldError{Field: "email", Message: "缺少使用者信箱"}
	}
	if !emailRE.MatchString(u.Email) {
		return &FieldError{Field: "email", Message: "使用者信箱格式錯誤"}
	}
	if u.Password == "" {
		return &FieldError{Field: "password", Message: "缺少使用者密碼"}
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return &FieldError{Field: "role", Message: "使用者角色錯誤"}
	}
	for i := range u.Cart {
		if err := u.Cart[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FindCartLine returns the index of the line matching the compound key
// (product, noodle), or -1.
func (u *User) FindCartLine(product primitive.ObjectID, noodle Noodle) int {
	for i := range u.Cart {
		if u.Cart[i].Matches(product, noodle) {
			return i
		}
	}
	return -1
}

// RemoveCartLine drops every line matching the compound key.
func (u *User) RemoveCartLine(product primitive.ObjectID, noodle Noodle) {
	kept := u.Cart[:0]
	for _, l := range u.Cart {
		if !l.Matches(product, noodle) {
			kept = append(kept, l)
		}
	}
	u.Cart = kept
}

// RemoveToken filters the given token out of the token list. Removing
// a token that is not present leaves the list unchanged.
func (u *User) RemoveToken(token string) {
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
}

// TokenIndex returns the position of the given token in the token
// list, or -1. Extend overwrites the slot in place, so position
// matters.
func (u *User) TokenIndex(token string) int {
	for i, t := range u.Tokens {
		if t == token {
			return i
		}
	}
	return -1
}

// HasToken reports whether the token is currently valid for this user.
func (u *User) HasToken(token string) bool {
	return u.TokenIndex(token) >= 0
}
