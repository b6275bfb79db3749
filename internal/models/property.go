package models

// LookupRequest holds the address parameters accepted by the property details endpoint.
type LookupRequest struct {
	Street string `form:"street" binding:"required"`
	Unit   string `form:"unit"`
	City   string `form:"city"`
	State  string `form:"state"`
	Zip    string `form:"zip"`
}

// HasLocality reports whether the request carries enough information to locate a property:
// a zip code, or both a city and a state.
func (r LookupRequest) HasLocality() bool {
	return r.Zip != "" || (r.City != "" && r.State != "")
}

// PropertyDetails is everything this service reports about a property.
type PropertyDetails struct {
	HasSepticSystem bool `json:"has_septic_system"`
}

// PropertyRecord is the provider response reduced to the fields the service interprets.
type PropertyRecord struct {
	AddressMatched     bool
	APICode            int
	APICodeDescription string
	Sewer              string
	HasSewer           bool
}
