package domain

// Place is a geocoding result for a location query.
type Place struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`       // Short name, e.g. "Blue Note"
	PlaceName string  `json:"place_name"` // Full formatted name with region/country
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}
