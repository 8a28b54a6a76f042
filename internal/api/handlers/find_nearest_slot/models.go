package find_nearest_slot

// NearestSlotResponse HTTP response model. StartTime пустой, если слота нет.
type NearestSlotResponse struct {
	Date      string  `json:"date"`
	From      string  `json:"from"`
	Found     bool    `json:"found"`
	StartTime *string `json:"startTime"`
}
