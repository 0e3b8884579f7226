package domain

// Card is a single catalog entry (a bouquet or gift) as served by the
// shop backend over the message channel.
type Card struct {
	ID          int64    `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`        // display string, e.g. "3 500 ₽"
	PriceNumber int64    `json:"price_number"` // numeric price for sorting/ranges
	Category    string   `json:"category,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Counts      []string `json:"counts,omitempty"`
	Packages    []string `json:"packages,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Prices      []string `json:"prices,omitempty"`
	ViewsCount  int64    `json:"views_count"`
	Images      []Image  `json:"images,omitempty"`
}

// Image is one photo attached to a card. The backend stores a full-size
// and a lazy (thumbnail) variant.
type Image struct {
	ID     int64  `json:"id"`
	CardID int64  `json:"card_id"`
	File   string `json:"file"`
	Lazy   string `json:"file_lazy"`
	Index  int    `json:"image_index"`
}

// Sort modes accepted by the cards/filter operation.
const (
	SortByViews     = 0
	SortByPriceAsc  = 1
	SortByPriceDesc = 2
)
