package services

import (
	"log"

	"github.com/EduardKrecmer/pizzeria/internal/database"
	"github.com/EduardKrecmer/pizzeria/internal/models"
	"github.com/EduardKrecmer/pizzeria/internal/pricing"
)

// CartService spravuje košíky podľa session. Každá mutácia sa hneď
// zapíše do snapshot úložiska a zhodí príznaky minulej objednávky,
// aby starý úspech nepresiakol do novej objednávky.
type CartService struct {
	store *database.CartStore
}

// NewCartService vytvorí novú inštanciu CartService.
func NewCartService(store *database.CartStore) *CartService {
	return &CartService{store: store}
}

// GetCart vráti košík session; ak ešte neexistuje, založí prázdny.
func (cs *CartService) GetCart(sessionID string) *models.Cart {
	cart, err := cs.store.GetCart(sessionID)
	if err != nil {
		log.Printf("CartService.GetCart - Creating new cart for session: %s", sessionID)
		cart = &models.Cart{SessionID: sessionID, Items: []models.CartItem{}}
		if err := cs.store.SaveCart(cart); err != nil {
			log.Printf("CartService.GetCart - Error creating cart: %v", err)
		}
	}
	return cart
}

// AddItem pridá položku so zmrazenou jednotkovou cenou. Rovnaká pizza
// pridaná dvakrát vytvorí dve samostatné položky — zámerne sa nič
// nezlučuje, aby sa dali upravovať nezávisle.
func (cs *CartService) AddItem(sessionID string, pizza models.Pizza, size models.PizzaSize, quantity int, ingredients []string, extras []models.Extra) error {
	if quantity < 1 {
		quantity = 1
	}

	cart := cs.GetCart(sessionID)

	item := models.CartItem{
		PizzaID:     pizza.ID,
		Name:        pizza.Name,
		Price:       pricing.ItemUnitPrice(pizza.Price, size, extras),
		Size:        size,
		Quantity:    quantity,
		Ingredients: ingredients,
		Extras:      extras,
		Image:       pizza.Image,
	}
	cart.Items = append(cart.Items, item)
	resetOrderFlags(cart)

	log.Printf("CartService.AddItem - Session %s: added %q (size %s, qty %d, unit %.2f), cart has %d items",
		sessionID, pizza.Name, size, quantity, item.Price, len(cart.Items))
	return cs.store.SaveCart(cart)
}

// RemoveItem odstráni položku podľa pozície. Pozícia mimo rozsahu je
// tiché no-op, nie chyba.
func (cs *CartService) RemoveItem(sessionID string, index int) error {
	cart := cs.GetCart(sessionID)
	if index < 0 || index >= len(cart.Items) {
		log.Printf("CartService.RemoveItem - Session %s: index %d out of range, ignoring", sessionID, index)
		return nil
	}

	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	resetOrderFlags(cart)
	return cs.store.SaveCart(cart)
}

// UpdateQuantity nastaví počet kusov položky. Hodnoty pod 1 sa orežú
// na 1 — zníženie pod minimum nikdy položku neodstráni.
func (cs *CartService) UpdateQuantity(sessionID string, index, quantity int) error {
	cart := cs.GetCart(sessionID)
	if index < 0 || index >= len(cart.Items) {
		log.Printf("CartService.UpdateQuantity - Session %s: index %d out of range, ignoring", sessionID, index)
		return nil
	}

	if quantity < 1 {
		quantity = 1
	}
	cart.Items[index].Quantity = quantity
	resetOrderFlags(cart)
	return cs.store.SaveCart(cart)
}

// SetCustomerInfo nahradí kontaktné údaje v košíku vcelku. Prázdne PSČ
// sa doplní automaticky podľa obce.
func (cs *CartService) SetCustomerInfo(sessionID string, info models.CustomerInfo) error {
	if info.PostalCode == "" {
		info.PostalCode = pricing.PostalCodeForCity(info.City)
	}
	if info.DeliveryType == "" {
		info.DeliveryType = models.DeliveryCourier
	}

	cart := cs.GetCart(sessionID)
	cart.CustomerInfo = &info
	resetOrderFlags(cart)
	return cs.store.SaveCart(cart)
}

// Clear vyprázdni košík vrátane kontaktných údajov a príznakov.
func (cs *CartService) Clear(sessionID string) error {
	cart := cs.GetCart(sessionID)
	cart.Items = []models.CartItem{}
	cart.CustomerInfo = nil
	cart.OrderCompleted = false
	cart.OrderError = ""
	return cs.store.SaveCart(cart)
}

// SaveCart uloží košík po zmene vykonanej mimo služby (napr. príznaky
// objednávky v checkout pipeline).
func (cs *CartService) SaveCart(cart *models.Cart) error {
	return cs.store.SaveCart(cart)
}

// Subtotal je medzisúčet položiek, vždy počítaný nanovo.
func (cs *CartService) Subtotal(cart *models.Cart) float64 {
	return pricing.Subtotal(cart.Items)
}

// DeliveryFee vráti poplatok za dopravu podľa zvoleného spôsobu
// prevzatia a počtu kusov. Bez vyplnených údajov sa ráta s rozvozom.
func (cs *CartService) DeliveryFee(cart *models.Cart) float64 {
	deliveryType := models.DeliveryCourier
	if cart.CustomerInfo != nil && cart.CustomerInfo.DeliveryType != "" {
		deliveryType = cart.CustomerInfo.DeliveryType
	}
	return pricing.DeliveryFee(deliveryType, cart.TotalQuantity())
}

// Total je medzisúčet plus doprava.
func (cs *CartService) Total(cart *models.Cart) float64 {
	return pricing.Total(cs.Subtotal(cart), cs.DeliveryFee(cart))
}

// resetOrderFlags zhodí výsledok minulej objednávky po akejkoľvek mutácii.
func resetOrderFlags(cart *models.Cart) {
	cart.OrderCompleted = false
	cart.OrderError = ""
}
