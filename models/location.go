package models

// PostOffice is one postal office inside a pincode area.
type PostOffice struct {
	Name string `json:"name"`
}

// PincodeArea is the locality set resolved for a 6-digit postal code.
type PincodeArea struct {
	AllPostOffices []PostOffice `json:"all_post_offices"`
	District       string       `json:"district"`
	State          string       `json:"state"`
}

// Locality is one selectable address option built from a pincode lookup.
type Locality struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// LocationRecord is a stored pickup or drop location from a prior booking.
type LocationRecord struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
