// Package stats defines read-only dashboard aggregates. These are derived
// views; the occupancy counters they report come straight from the
// write-through Property.OccupiedUnits column, never recomputed.
package stats

// AdminOverview summarizes the platform for the admin dashboard.
type AdminOverview struct {
	TotalUsers      int `json:"total_users"`
	TotalProperties int `json:"total_properties"`
	TotalLandlords  int `json:"total_landlords"`
	TotalTenants    int `json:"total_tenants"`
}

// LandlordOverview summarizes a landlord's portfolio.
type LandlordOverview struct {
	TotalProperties int     `json:"total_properties"`
	TotalUnits      int     `json:"total_units"`
	OccupiedUnits   int     `json:"occupied_units"`
	ExpectedRent    float64 `json:"expected_rent"` // sum of rent over occupied units
}
