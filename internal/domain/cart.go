package domain

// CartItem is one line in the session cart. Carts are session-scoped
// and not persisted across restarts.
type CartItem struct {
	LineID   string `json:"line_id"` // unique per line, assigned by the session
	CardID   int64  `json:"card_id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
	Package  string `json:"package,omitempty"`
}

// Hint is a "hint at a gift" submission: the user asks the shop to nudge
// a recipient about a product they liked.
type Hint struct {
	Name          string `json:"name" validate:"required"`
	ReceiverName  string `json:"receiver_name" validate:"required"`
	ReceiverPhone string `json:"receiver_phone" validate:"required"`
	Product       any    `json:"product"`
}

// Order is a checkout submission sent over the message channel.
type Order struct {
	Name            string     `json:"name" validate:"required"`
	Phone           string     `json:"phone" validate:"required"`
	Anonymous       bool       `json:"anonymous"`
	ReceiverName    string     `json:"receiver_name"`
	ReceiverPhone   string     `json:"receiver_phone"`
	TextOfPostcard  string     `json:"text_of_postcard"`
	Comment         string     `json:"comment"`
	Delivery        string     `json:"delivery"`
	City            string     `json:"city"`
	Address         string     `json:"address"`
	DateOfPost      string     `json:"date_of_post"`
	TimeOfPost      string     `json:"time_of_post"`
	RequestAddress  bool       `json:"request_address"`
	RequestDatetime bool       `json:"request_datetime"`
	Items           []CartItem `json:"items" validate:"required,min=1"`
}
