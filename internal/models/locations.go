package models

// District is a static administrative region used by the checkout form.
// IsMetro marks the primary metro region, which gets the lower flat
// delivery charge.
type District struct {
	Name    string `json:"name"`
	IsMetro bool   `json:"isMetro"`
}

// Districts is the static lookup table of administrative regions
var Districts = []District{
	{Name: "Dhaka", IsMetro: true},
	{Name: "Chattogram"},
	{Name: "Khulna"},
	{Name: "Rajshahi"},
	{Name: "Sylhet"},
	{Name: "Barishal"},
	{Name: "Rangpur"},
	{Name: "Mymensingh"},
	{Name: "Comilla"},
	{Name: "Gazipur"},
	{Name: "Narayanganj"},
	{Name: "Bogura"},
	{Name: "Cox's Bazar"},
	{Name: "Jashore"},
	{Name: "Dinajpur"},
	{Name: "Tangail"},
}

// FindDistrict looks up a district by name; returns nil if unknown
func FindDistrict(name string) *District {
	for i := range Districts {
		if Districts[i].Name == name {
			return &Districts[i]
		}
	}
	return nil
}
