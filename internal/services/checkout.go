package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/EduardKrecmer/pizzeria/internal/models"
	"github.com/EduardKrecmer/pizzeria/internal/pricing"
)

// ErrCartIncomplete znamená, že objednávku nie je z čoho zložiť —
// chýbajú položky alebo kontaktné údaje.
var ErrCartIncomplete = errors.New("Chýbajú údaje potrebné pre dokončenie objednávky")

var (
	phonePattern = regexp.MustCompile(`^[0-9\s\-+()]{9,15}$`)
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// OrderSubmitter je miesto, kam sa objednávka trvalo ukladá.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

// Notifier odosiela notifikácie o vytvorenej objednávke. Obe odoslania
// sú best-effort — ich zlyhanie už hotovú objednávku nemení.
type Notifier interface {
	SendCustomerConfirmation(order *models.Order) error
	SendRestaurantAlert(order *models.Order) error
}

// CheckoutService skladá a odosiela objednávky: validácia formulára,
// zloženie payloadu zo zmrazených cien, uloženie a dve nezávislé
// notifikácie po úspechu.
type CheckoutService struct {
	carts    *CartService
	orders   OrderSubmitter
	notifier Notifier
}

// NewCheckoutService vytvorí novú inštanciu CheckoutService.
func NewCheckoutService(carts *CartService, orders OrderSubmitter, notifier Notifier) *CheckoutService {
	return &CheckoutService{carts: carts, orders: orders, notifier: notifier}
}

// Validate skontroluje kontaktné údaje proti aktuálnemu košíku a vráti
// mapu pole → správa. Zbiera všetky porušenia naraz, prázdna mapa
// znamená platný formulár. Validácia je očakávaný výsledok, nie výnimka.
func (s *CheckoutService) Validate(cart *models.Cart, info models.CustomerInfo) map[string]string {
	violations := map[string]string{}

	if strings.TrimSpace(info.FirstName) == "" {
		violations["firstName"] = "Meno je povinné"
	}

	phone := strings.TrimSpace(info.Phone)
	if phone == "" {
		violations["phone"] = "Telefón je povinný"
	} else if !phonePattern.MatchString(phone) {
		violations["phone"] = "Neplatný formát telefónu"
	}

	// Email je nepovinný; kontroluje sa len tvar, ak je zadaný.
	if email := strings.TrimSpace(info.Email); email != "" && !emailPattern.MatchString(email) {
		violations["email"] = "Neplatný formát emailu"
	}

	if info.DeliveryType != models.DeliveryPickup {
		if strings.TrimSpace(info.City) == "" {
			violations["city"] = "Mesto je povinné"
		}
		if strings.TrimSpace(info.Street) == "" {
			violations["street"] = "Ulica a číslo sú povinné"
		}

		// Minimálna hodnota objednávky sa zisťuje vždy nanovo z aktuálnej
		// lokality — nikdy sa nekešuje.
		minimum := pricing.MinimumOrderValue(info.City, info.CityPart)
		if minimum > 0 {
			total := s.carts.Total(cart)
			if total < minimum {
				locality := info.City
				if info.CityPart != "" {
					locality += " (" + info.CityPart + ")"
				}
				violations["minimumOrder"] = fmt.Sprintf(
					"Minimálna hodnota objednávky pre %s je %g€. Aktuálna hodnota: %.2f€, chýba %.2f€",
					locality, minimum, total, minimum-total)
			}
		}
	}

	return violations
}

// PlaceOrder prevedie košík session na objednávku. Vráti buď vytvorenú
// objednávku, alebo mapu validačných porušení, alebo chybu uloženia.
// Pri chybe uloženia košík zostáva nedotknutý pre opakovaný pokus;
// vyprázdni sa až po úspechu.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string) (*models.Order, map[string]string, error) {
	cart := s.carts.GetCart(sessionID)

	if len(cart.Items) == 0 || cart.CustomerInfo == nil {
		log.Printf("CheckoutService.PlaceOrder - Session %s: cart incomplete", sessionID)
		return nil, nil, ErrCartIncomplete
	}

	info := *cart.CustomerInfo
	if violations := s.Validate(cart, info); len(violations) > 0 {
		log.Printf("CheckoutService.PlaceOrder - Session %s: %d validation violations", sessionID, len(violations))
		return nil, violations, nil
	}

	order := s.compose(cart, info)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		// Košík sa pri zlyhaní nemaže — zákazník skúsi odoslať znova.
		log.Printf("CheckoutService.PlaceOrder - Session %s: order save failed: %v", sessionID, err)
		cart.OrderCompleted = false
		cart.OrderError = "Nepodarilo sa vytvoriť objednávku"
		if saveErr := s.carts.SaveCart(cart); saveErr != nil {
			log.Printf("CheckoutService.PlaceOrder - Session %s: cart save failed: %v", sessionID, saveErr)
		}
		return nil, nil, err
	}

	log.Printf("CheckoutService.PlaceOrder - Session %s: order #%d created, total %.2f€", sessionID, order.ID, order.TotalAmount)

	// Objednávka je hotová momentom uloženia; notifikácie bežia mimo
	// transakčného kontraktu ako dve nezávislé goroutiny.
	s.notify(order)

	cart.Items = []models.CartItem{}
	cart.CustomerInfo = nil
	cart.OrderCompleted = true
	cart.OrderError = ""
	if err := s.carts.SaveCart(cart); err != nil {
		log.Printf("CheckoutService.PlaceOrder - Session %s: cart clear failed: %v", sessionID, err)
	}

	return order, nil, nil
}

// compose zloží payload objednávky z košíka. Položky sa kopírujú aj so
// zmrazenými cenami — cena v momente pridania platí, aj keby sa katalóg
// medzitým zmenil.
func (s *CheckoutService) compose(cart *models.Cart, info models.CustomerInfo) *models.Order {
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)

	name := strings.TrimSpace(info.FirstName + " " + info.LastName)
	subtotal := pricing.Subtotal(items)
	deliveryFee := s.carts.DeliveryFee(cart)

	return &models.Order{
		SessionID:          cart.SessionID,
		CustomerName:       name,
		CustomerEmail:      strings.TrimSpace(info.Email),
		CustomerPhone:      strings.TrimSpace(info.Phone),
		DeliveryAddress:    info.Street,
		DeliveryCity:       info.City,
		DeliveryCityPart:   info.CityPart,
		DeliveryPostalCode: info.PostalCode,
		DeliveryType:       info.DeliveryType,
		DeliveryFee:        deliveryFee,
		Notes:              info.Notes,
		Items:              items,
		TotalAmount:        pricing.Total(subtotal, deliveryFee),
	}
}

// notify spustí obe notifikácie ako samostatné goroutiny. Zlyhanie
// jednej nebráni druhej a žiadne z nich nemení výsledok objednávky —
// chyby sa iba logujú.
func (s *CheckoutService) notify(order *models.Order) {
	if order.CustomerEmail == "" {
		log.Printf("CheckoutService.notify - Order #%d has no customer email, skipping confirmation", order.ID)
	} else {
		go func() {
			if err := s.notifier.SendCustomerConfirmation(order); err != nil {
				log.Printf("CheckoutService.notify - Customer confirmation for order #%d failed: %v", order.ID, err)
			}
		}()
	}

	go func() {
		if err := s.notifier.SendRestaurantAlert(order); err != nil {
			log.Printf("CheckoutService.notify - Restaurant alert for order #%d failed: %v", order.ID, err)
		}
	}()
}
