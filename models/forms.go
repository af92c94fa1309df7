package models

// Material is a load material type offered on the booking form.
type Material struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// VehicleModel is a truck specification offered on the booking form.
type VehicleModel struct {
	ID        int    `json:"id"`
	ModelName string `json:"model_name"`
	Capacity  string `json:"capacity,omitempty"`
}

// PaymentMethodOption is one payment choice (e.g. cod, online).
type PaymentMethodOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BookingFormData is the form metadata fetched when a flow starts.
type BookingFormData struct {
	Materials      []Material            `json:"materials"`
	VehicleModels  []VehicleModel        `json:"vehicle_models"`
	PaymentMethods []PaymentMethodOption `json:"payment_methods"`
}
