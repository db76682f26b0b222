package database

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"

	"github.com/EduardKrecmer/pizzeria/internal/models"
)

// ErrCartNotFound sa vracia, keď session ešte nemá košík.
var ErrCartNotFound = errors.New("košík sa nenašiel")

// cartData je obsah snapshot súboru: košíky podľa session a zapamätané
// kontaktné údaje zákazníkov ("zapamätať údaje pre budúce objednávky").
type cartData struct {
	Carts          []models.Cart                  `json:"carts"`
	SavedCustomers map[string]models.CustomerInfo `json:"saved_customers"`
}

// CartStore ukladá košíky do JSON súboru. Zapíše sa po každej mutácii
// a načíta pri štarte procesu — košík tak prežije reštart.
type CartStore struct {
	mu       sync.RWMutex
	data     cartData
	filePath string
}

// NewCartStore otvorí snapshot súbor, prípadne ho inicializuje prázdny.
func NewCartStore(filePath string) (*CartStore, error) {
	store := &CartStore{
		filePath: filePath,
		data: cartData{
			Carts:          []models.Cart{},
			SavedCustomers: map[string]models.CustomerInfo{},
		},
	}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *CartStore) load() error {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return s.save()
	}

	fileData, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(fileData, &s.data); err != nil {
		// Poškodený alebo zastaraný snapshot nezhodí server — začne sa odznova.
		log.Printf("CartStore.load - Corrupted snapshot %s, starting empty: %v", s.filePath, err)
		s.data = cartData{Carts: []models.Cart{}, SavedCustomers: map[string]models.CustomerInfo{}}
		return s.save()
	}

	if s.data.SavedCustomers == nil {
		s.data.SavedCustomers = map[string]models.CustomerInfo{}
	}

	log.Printf("CartStore.load - Loaded %d carts from %s", len(s.data.Carts), s.filePath)
	return nil
}

// save zapíše celý snapshot na disk. Volá sa so zamknutým mutexom.
func (s *CartStore) save() error {
	fileData, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, fileData, 0644)
}

// GetCart vráti kópiu košíka danej session.
func (s *CartStore) GetCart(sessionID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.data.Carts {
		if s.data.Carts[i].SessionID == sessionID {
			cart := s.data.Carts[i]
			return &cart, nil
		}
	}
	return nil, ErrCartNotFound
}

// SaveCart uloží košík (vloží alebo prepíše) a zapíše snapshot.
func (s *CartStore) SaveCart(cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Carts {
		if s.data.Carts[i].SessionID == cart.SessionID {
			s.data.Carts[i] = *cart
			return s.save()
		}
	}
	s.data.Carts = append(s.data.Carts, *cart)
	return s.save()
}

// DeleteCart odstráni košík session. Neexistujúci košík nie je chyba.
func (s *CartStore) DeleteCart(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Carts {
		if s.data.Carts[i].SessionID == sessionID {
			s.data.Carts = append(s.data.Carts[:i], s.data.Carts[i+1:]...)
			return s.save()
		}
	}
	return nil
}

// SaveCustomer zapamätá kontaktné údaje zákazníka pre budúce objednávky.
func (s *CartStore) SaveCustomer(sessionID string, info models.CustomerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.SavedCustomers[sessionID] = info
	return s.save()
}

// GetCustomer vráti zapamätané údaje, alebo nil ak žiadne nie sú.
func (s *CartStore) GetCustomer(sessionID string) *models.CustomerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if info, ok := s.data.SavedCustomers[sessionID]; ok {
		return &info
	}
	return nil
}

// DeleteCustomer zabudne zapamätané údaje zákazníka.
func (s *CartStore) DeleteCustomer(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.SavedCustomers, sessionID)
	return s.save()
}
