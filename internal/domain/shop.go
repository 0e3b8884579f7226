package domain

// ShopSettings is the business metadata record owned by the backend and
// cached locally per tenant. Field names follow the backend's wire format.
type ShopSettings struct {
	BusinessID       string     `json:"business_id"`
	BusinessName     string     `json:"business_name" validate:"required,max=120"`
	LogoURL          string     `json:"logo_url" validate:"omitempty,url"`
	Tagline          string     `json:"tagline" validate:"max=300"`
	Advantages       string     `json:"advantages"`
	PhoneNumber      string     `json:"phone_number" validate:"max=32"`
	TelegramURL      string     `json:"telegram_url" validate:"omitempty,url"`
	WhatsappURL      string     `json:"whatsapp_url" validate:"omitempty,url"`
	Address          string     `json:"address"`
	YandexMapURL     string     `json:"yandex_map_url" validate:"omitempty,url"`
	YandexReviewsURL string     `json:"yandex_reviews_url" validate:"omitempty,url"`
	CallToAction     string     `json:"call_to_action"`
	FAQ              []FAQEntry `json:"faq"`
}

// FAQEntry is one question/answer pair shown on the shop page.
type FAQEntry struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// OwnerCheck is the response of the backend's ownership-check endpoint.
// On success the shop metadata rides along with the boolean.
type OwnerCheck struct {
	IsOwner bool `json:"is_owner"`
	ShopSettings
}

// Theme is the UI theme persisted across reloads.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "Light"
	ThemeDark  Theme = "Dark"
)

// Valid reports whether the theme is one of the supported values.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
