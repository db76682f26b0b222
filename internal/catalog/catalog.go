// Package catalog načítava menu pizzerie z JSON súborov a drží ho v pamäti.
// Všetky nejednotné tvary dát (cena ako číslo aj ako reťazec so symbolom
// meny, chýbajúca kategória) sa normalizujú tu a ďalej už nepreniknú.
package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/EduardKrecmer/pizzeria/internal/models"
)

// DefaultCategory je kategória prísad bez vlastnej kategórie.
const DefaultCategory = "Ostatné"

// Catalog je read-only menu načítané pri štarte procesu.
type Catalog struct {
	pizzas []models.Pizza
	extras []models.Extra
	byID   map[int]*models.Pizza
}

// rawPizza a rawExtra prijímajú dáta tak, ako ležia v súboroch —
// cena môže byť číslo aj reťazec typu "7,90 €".
type rawPizza struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Image       string          `json:"image"`
	Tags        []string        `json:"tags"`
	Ingredients []string        `json:"ingredients"`
	Weight      string          `json:"weight"`
	Allergens   string          `json:"allergens"`
}

type rawExtra struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    json.RawMessage `json:"price"`
	Category string          `json:"category"`
	Amount   string          `json:"amount"`
}

// Load načíta pizzas.json a extras.json z daného adresára.
func Load(dataDir string) (*Catalog, error) {
	pizzas, err := loadPizzas(filepath.Join(dataDir, "pizzas.json"))
	if err != nil {
		return nil, fmt.Errorf("katalóg pizz sa nepodarilo načítať: %w", err)
	}

	extras, err := loadExtras(filepath.Join(dataDir, "extras.json"))
	if err != nil {
		return nil, fmt.Errorf("katalóg prísad sa nepodarilo načítať: %w", err)
	}

	byID := make(map[int]*models.Pizza, len(pizzas))
	for i := range pizzas {
		byID[pizzas[i].ID] = &pizzas[i]
	}

	log.Printf("Catalog.Load - Loaded %d pizzas and %d extras from %s", len(pizzas), len(extras), dataDir)
	return &Catalog{pizzas: pizzas, extras: extras, byID: byID}, nil
}

func loadPizzas(path string) ([]models.Pizza, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []rawPizza
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	pizzas := make([]models.Pizza, 0, len(raws))
	for _, r := range raws {
		pizzas = append(pizzas, models.Pizza{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       parsePrice(r.Price),
			Image:       r.Image,
			Tags:        r.Tags,
			Ingredients: r.Ingredients,
			Weight:      r.Weight,
			Allergens:   r.Allergens,
		})
	}
	return pizzas, nil
}

func loadExtras(path string) ([]models.Extra, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []rawExtra
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	extras := make([]models.Extra, 0, len(raws))
	for _, r := range raws {
		category := r.Category
		if category == "" {
			category = DefaultCategory
		}
		extras = append(extras, models.Extra{
			ID:       r.ID,
			Name:     r.Name,
			Price:    parsePrice(r.Price),
			Category: category,
			Amount:   r.Amount,
		})
	}
	return extras, nil
}

// parsePrice znesie číslo aj reťazec ("7.90", "7,90 €"). Nečitateľná
// hodnota sa berie ako nula, chýbajúca cena nesmie zhodiť katalóg.
func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		log.Printf("Catalog.parsePrice - Unreadable price %q, using 0", string(raw))
		return 0
	}

	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "€"))
	text = strings.ReplaceAll(text, ",", ".")
	number, err := strconv.ParseFloat(text, 64)
	if err != nil {
		log.Printf("Catalog.parsePrice - Unreadable price %q, using 0", text)
		return 0
	}
	return number
}

// Pizzas vráti celé menu.
func (c *Catalog) Pizzas() []models.Pizza {
	return c.pizzas
}

// PizzaByID vráti pizzu podľa ID, alebo nil ak neexistuje.
func (c *Catalog) PizzaByID(id int) *models.Pizza {
	return c.byID[id]
}

// Extras vráti všetky prísady.
func (c *Catalog) Extras() []models.Extra {
	return c.extras
}

// ExtrasByCategory zoskupí prísady podľa kategórie v poradí prvého výskytu.
func (c *Catalog) ExtrasByCategory() []models.ExtraCategory {
	order := []string{}
	groups := map[string][]models.Extra{}
	for _, extra := range c.extras {
		if _, ok := groups[extra.Category]; !ok {
			order = append(order, extra.Category)
		}
		groups[extra.Category] = append(groups[extra.Category], extra)
	}

	categories := make([]models.ExtraCategory, 0, len(order))
	for _, name := range order {
		categories = append(categories, models.ExtraCategory{Name: name, Items: groups[name]})
	}
	return categories
}
