package model

// Assignment joins a customer with its cluster label and original features.
type Assignment struct {
	CustomerID string `json:"customerId"`
	Label      Label  `json:"cluster"`
	Features   Vector `json:"features"`
}

// Summary describes a single cluster in the units of the original features.
type Summary struct {
	Label      Label    `json:"cluster"`
	Size       int      `json:"size"`
	Percentage float64  `json:"percentage"`
	Averages   Vector   `json:"averages"`
	Min        Vector   `json:"min"`
	Max        Vector   `json:"max"`
	Members    []string `json:"members"`
}
