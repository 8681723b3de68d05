package uow

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// Instead of implementing full value objects, the entities use plain fields
// plus a free-form jsonb attributes payload ...

var (
	// ErrInvalidAttributesJSON is returned when an entity attributes payload is not valid JSON.
	ErrInvalidAttributesJSON = errors.New("entity attributes json is not valid")
)

// User is a domain entity eligible for staged mutation.
type User struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Attributes json.RawMessage
}

// BuildUser creates a new User, validating the attributes payload.
func BuildUser(id uuid.UUID, name string, email string, attributes json.RawMessage) (User, error) {
	if len(attributes) > 0 && !jsoniter.ConfigFastest.Valid(attributes) {
		return User{}, ErrInvalidAttributesJSON
	}

	return User{ID: id, Name: name, Email: email, Attributes: attributes}, nil
}

// IsValid is the structural validation hook used by callers to branch
// between commit and rollback before resolving a session.
func (u User) IsValid() bool {
	return u.Name != "" && u.Email != ""
}

// Shop is a domain entity eligible for staged mutation.
type Shop struct {
	ID         uuid.UUID
	Name       string
	Attributes json.RawMessage
}

// BuildShop creates a new Shop, validating the attributes payload.
func BuildShop(id uuid.UUID, name string, attributes json.RawMessage) (Shop, error) {
	if len(attributes) > 0 && !jsoniter.ConfigFastest.Valid(attributes) {
		return Shop{}, ErrInvalidAttributesJSON
	}

	return Shop{ID: id, Name: name, Attributes: attributes}, nil
}

// Order is a domain entity eligible for staged mutation.
type Order struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ShopID     uuid.UUID
	TotalCents int64
	Attributes json.RawMessage
}

// BuildOrder creates a new Order, validating the attributes payload.
func BuildOrder(id uuid.UUID, userID uuid.UUID, shopID uuid.UUID, totalCents int64, attributes json.RawMessage) (Order, error) {
	if len(attributes) > 0 && !jsoniter.ConfigFastest.Valid(attributes) {
		return Order{}, ErrInvalidAttributesJSON
	}

	return Order{ID: id, UserID: userID, ShopID: shopID, TotalCents: totalCents, Attributes: attributes}, nil
}
