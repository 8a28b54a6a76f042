package check_table_availability

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TableID         int64  `json:"tableId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}
