package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Customer is a document in the `customers` collection.
type Customer struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name   string             `bson:"name" json:"name"`
	Phone  string             `bson:"phone" json:"phone"`
	IsGold bool               `bson:"isGold" json:"isGold"`
}

// CustomerSnapshot is the copy of a customer embedded into a rental.  It is
// taken once, when the rental is created, and never refreshed.
type CustomerSnapshot struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Name   string             `bson:"name" json:"name"`
	Phone  string             `bson:"phone" json:"phone"`
	IsGold bool               `bson:"isGold" json:"isGold"`
}

// Snapshot copies the fields a rental keeps about its customer.
func (c Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{ID: c.ID, Name: c.Name, Phone: c.Phone, IsGold: c.IsGold}
}
