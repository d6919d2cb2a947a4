package models

// Address is a saved delivery address. At most one entry of a user's list is
// expected to carry IsDefault, but the upstream does not guarantee it; the
// selection rule simply picks the first default found.
type Address struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Type       string `json:"type"` // home, work or other
	Street     string `json:"street"`
	Apartment  string `json:"apartment,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// AddAddressRequest defines the body for creating a new address. The required
// fields are validated client-side here, before any upstream call is made.
type AddAddressRequest struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Type       string `json:"type" validate:"omitempty,oneof=home work other"`
	Street     string `json:"street" validate:"required"`
	Apartment  string `json:"apartment,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country,omitempty"`
	IsDefault  bool   `json:"is_default"`
}

// AddressListResponse carries the address list together with the index the
// UI should preselect: the first default by list order, else 0 when the list
// is non-empty, else -1.
type AddressListResponse struct {
	Addresses     []Address `json:"addresses"`
	SelectedIndex int       `json:"selected_index"`
}
