package domain

// Client гость ресторана. Ищется по точному совпадению имени.
type Client struct {
	ID   int64
	Name string
}
