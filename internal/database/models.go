package database

// Category groups items on the shared list.
type Category string

const (
	CategoryFood     Category = "food"
	CategoryDrink    Category = "drink"
	CategorySupplies Category = "supplies"
	CategoryOther    Category = "other"
)

// Event is a hosted gathering guests bring things to.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	HostName    string `json:"hostName"`
	CreatedAt   int64  `json:"createdAt"` // epoch milliseconds
}

// Item is a guest's pledge to bring something to an event.
type Item struct {
	ID        string   `json:"id"`
	EventID   string   `json:"eventId"`
	GuestName string   `json:"guestName"`
	ItemName  string   `json:"itemName"`
	Category  Category `json:"category"`
	CreatedAt int64    `json:"createdAt"` // epoch milliseconds
}
