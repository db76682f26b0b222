package models

// CartItem je jedna položka košíka. Cena je zmrazená v momente pridania
// do košíka a pri neskorších zmenách katalógu sa už neprepočítava.
type CartItem struct {
	PizzaID     int       `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Size        PizzaSize `json:"size"`
	Quantity    int       `json:"quantity"`
	Ingredients []string  `json:"ingredients"`
	Extras      []Extra   `json:"extras"`
	Image       string    `json:"image"`
}

// DeliveryType určuje spôsob prevzatia objednávky.
type DeliveryType string

const (
	DeliveryCourier DeliveryType = "DELIVERY"
	DeliveryPickup  DeliveryType = "PICKUP"
)

// CustomerInfo sú kontaktné a doručovacie údaje z objednávkového formulára.
// Email je nepovinný; bez neho sa len preskočí potvrdzovací e-mail.
type CustomerInfo struct {
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Street       string       `json:"street"`
	City         string       `json:"city"`
	CityPart     string       `json:"cityPart"`
	PostalCode   string       `json:"postalCode"`
	Notes        string       `json:"notes"`
	DeliveryType DeliveryType `json:"deliveryType"`
}

// Cart je agregát košíka jednej session. Súčty sa nikdy neukladajú,
// vždy sa počítajú nanovo z položiek.
type Cart struct {
	SessionID      string        `json:"session_id"`
	Items          []CartItem    `json:"items"`
	CustomerInfo   *CustomerInfo `json:"customerInfo"`
	OrderCompleted bool          `json:"orderCompleted"`
	OrderError     string        `json:"orderError,omitempty"`
}

// TotalQuantity vráti súčet kusov v košíku (vstup pre výpočet dopravy).
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
