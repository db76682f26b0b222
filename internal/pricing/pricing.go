// Package pricing obsahuje čisté cenové pravidlá pizzerie: cenu položky,
// poplatok za dopravu a minimálne hodnoty objednávky podľa lokality.
// Žiadna funkcia tu nemá vedľajšie efekty ani I/O.
package pricing

import "github.com/EduardKrecmer/pizzeria/internal/models"

// SingleItemDeliveryFee je poplatok za rozvoz jednej pizze.
// Od dvoch kusov je rozvoz zadarmo.
const SingleItemDeliveryFee = 1.50

// sizeDeltas sú príplatky za typ cesta/základu.
var sizeDeltas = map[models.PizzaSize]float64{
	models.SizeRegular:    0,
	models.SizeCream:      0,
	models.SizeGlutenFree: 1.50,
	models.SizeVegan:      2.00,
	models.SizeThick:      1.00,
}

// SizeOptions vráti ponuku ciest v poradí pre zobrazenie.
func SizeOptions() []models.SizeOption {
	return []models.SizeOption{
		{Size: models.SizeRegular, Label: "Klasické cesto", PriceDelta: 0},
		{Size: models.SizeCream, Label: "Smotanový základ", PriceDelta: 0},
		{Size: models.SizeGlutenFree, Label: "Bezlepkové cesto", PriceDelta: 1.50},
		{Size: models.SizeVegan, Label: "Vegánska mozzarella", PriceDelta: 2.00},
		{Size: models.SizeThick, Label: "Hrubé cesto", PriceDelta: 1.00},
	}
}

// SizeDelta vráti príplatok za zvolené cesto. Neznáma hodnota (napr. zo
// staršieho uloženého košíka) znamená nulový príplatok, nie chybu —
// košík nesmie spadnúť na starých dátach.
func SizeDelta(size models.PizzaSize) float64 {
	return sizeDeltas[size]
}

// ItemUnitPrice zloží jednotkovú cenu položky: základ + cesto + prísady.
// Výsledok sa nezaokrúhľuje ani neorezáva na nulu.
func ItemUnitPrice(basePrice float64, size models.PizzaSize, extras []models.Extra) float64 {
	price := basePrice + SizeDelta(size)
	for _, extra := range extras {
		price += extra.Price
	}
	return price
}

// DeliveryFee vráti poplatok za dopravu. Osobný odber je vždy zadarmo,
// rozvoz je spoplatnený len pri jedinom kuse.
func DeliveryFee(deliveryType models.DeliveryType, totalQuantity int) float64 {
	if deliveryType == models.DeliveryPickup {
		return 0
	}
	if totalQuantity >= 2 {
		return 0
	}
	return SingleItemDeliveryFee
}

// MinimumOrderValue vráti minimálnu hodnotu objednávky pre danú lokalitu.
// Vzdialenejšie časti majú 20 €, Púchov 15 €, inde bez minima.
func MinimumOrderValue(city, cityPart string) float64 {
	if (city == "Púchov" && cityPart == "Čertov") ||
		(city == "Lazy pod Makytou" && cityPart == "Čertov") ||
		cityPart == "Hoštiná" {
		return 20
	}
	if city == "Púchov" {
		return 15
	}
	return 0
}

// Subtotal spočíta medzisúčet košíka zo zmrazených jednotkových cien.
func Subtotal(items []models.CartItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// Total je medzisúčet plus doprava. Dane sa nemodelujú.
func Total(subtotal, deliveryFee float64) float64 {
	return subtotal + deliveryFee
}
