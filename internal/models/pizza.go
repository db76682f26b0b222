package models

// Pizza predstavuje položku menu načítanú z katalógu.
// Po načítaní sa už nemení; zákazník si pri objednávke vyberá
// podmnožinu ingrediencií a prípadné extra prísady.
type Pizza struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
	Weight      string   `json:"weight,omitempty"`
	Allergens   string   `json:"allergens,omitempty"`
}

// Extra predstavuje platenú prísadu navyše.
type Extra struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
	Amount   string  `json:"amount,omitempty"`
}

// PizzaSize je typ cesta/základu pizze.
type PizzaSize string

const (
	SizeRegular    PizzaSize = "REGULAR"
	SizeCream      PizzaSize = "CREAM"
	SizeGlutenFree PizzaSize = "GLUTEN_FREE"
	SizeVegan      PizzaSize = "VEGAN"
	SizeThick      PizzaSize = "THICK"
)

// SizeOption popisuje variantu cesta pre zobrazenie v menu.
type SizeOption struct {
	Size       PizzaSize `json:"size"`
	Label      string    `json:"label"`
	PriceDelta float64   `json:"priceDelta"`
}

// ExtraCategory zoskupuje prísady rovnakej kategórie pre zobrazenie.
type ExtraCategory struct {
	Name  string  `json:"name"`
	Items []Extra `json:"items"`
}
