package models

import "encoding/json"

// Property is the hotel property record from HotelPropertyRead. Only the
// name is modeled; the rest of the payload is passed through untouched for
// the report header.
type Property struct {
	ID   string `json:"propertyId"`
	Name string `json:"name"`

	Raw json.RawMessage `json:"-"`
}
