package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/EduardKrecmer/pizzeria/internal/catalog"
	"github.com/EduardKrecmer/pizzeria/internal/database"
	"github.com/EduardKrecmer/pizzeria/internal/models"
	"github.com/EduardKrecmer/pizzeria/internal/pricing"
	"github.com/EduardKrecmer/pizzeria/internal/services"
)

// Limity objednávky kontrolované na hrane API.
const (
	maxOrderItems   = 20
	maxItemQuantity = 10
	maxOrderTotal   = 1000.0
)

const sessionCookie = "pizzeria_session"

// Handler obsluhuje HTTP požiadavky obchodu aj administrácie.
type Handler struct {
	catalog   *catalog.Catalog
	carts     *services.CartService
	checkout  *services.CheckoutService
	cartStore *database.CartStore
	orders    *database.OrderStore
	adminHash string
}

// NewHandler vytvorí novú inštanciu Handler.
func NewHandler(cat *catalog.Catalog, carts *services.CartService, checkout *services.CheckoutService, cartStore *database.CartStore, orders *database.OrderStore) *Handler {
	return &Handler{
		catalog:   cat,
		carts:     carts,
		checkout:  checkout,
		cartStore: cartStore,
		orders:    orders,
		adminHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

// sessionID vráti session z cookie, prípadne založí novú.
func (h *Handler) sessionID(c *gin.Context) string {
	sessionID, _ := c.Cookie(sessionCookie)
	if sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie(sessionCookie, sessionID, 3600*24*30, "/", "", false, true)
		log.Printf("Handler.sessionID - Created new session: %s", sessionID)
	}
	return sessionID
}

// --- Katalóg ---

// GetPizzas vráti celé menu.
func (h *Handler) GetPizzas(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Pizzas())
}

// GetPizza vráti jednu pizzu podľa ID.
func (h *Handler) GetPizza(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné ID pizze"})
		return
	}

	pizza := h.catalog.PizzaByID(id)
	if pizza == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Pizza sa nenašla"})
		return
	}
	c.JSON(http.StatusOK, pizza)
}

// GetExtras vráti všetky prísady ako plochý zoznam.
func (h *Handler) GetExtras(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Extras())
}

// GetExtraCategories vráti prísady zoskupené podľa kategórií.
func (h *Handler) GetExtraCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ExtrasByCategory())
}

// GetSizes vráti ponuku ciest s príplatkami.
func (h *Handler) GetSizes(c *gin.Context) {
	c.JSON(http.StatusOK, pricing.SizeOptions())
}

// GetLocalities vráti rozvozové obce s časťami a PSČ pre formulár.
func (h *Handler) GetLocalities(c *gin.Context) {
	type localityInfo struct {
		City       string   `json:"city"`
		CityParts  []string `json:"cityParts,omitempty"`
		PostalCode string   `json:"postalCode"`
	}

	cities := pricing.Cities()
	list := make([]localityInfo, 0, len(cities))
	for _, city := range cities {
		list = append(list, localityInfo{
			City:       city,
			CityParts:  pricing.CityParts(city),
			PostalCode: pricing.PostalCodeForCity(city),
		})
	}
	c.JSON(http.StatusOK, list)
}

// --- Košík ---

// cartResponse je košík doplnený o odvodené súčty. Súčty sa počítajú
// pri každom čítaní, v odpovedi nikdy neležia staré hodnoty.
func (h *Handler) cartResponse(cart *models.Cart) gin.H {
	return gin.H{
		"cart":        cart,
		"subtotal":    h.carts.Subtotal(cart),
		"deliveryFee": h.carts.DeliveryFee(cart),
		"total":       h.carts.Total(cart),
	}
}

// GetCart vráti košík aktuálnej session so súčtami.
func (h *Handler) GetCart(c *gin.Context) {
	cart := h.carts.GetCart(h.sessionID(c))
	c.JSON(http.StatusOK, h.cartResponse(cart))
}

// AddCartItem pridá pizzu do košíka.
func (h *Handler) AddCartItem(c *gin.Context) {
	sessionID := h.sessionID(c)

	var req struct {
		PizzaID     int      `json:"pizzaId"`
		Size        string   `json:"size"`
		Quantity    int      `json:"quantity"`
		Ingredients []string `json:"ingredients"`
		ExtraIDs    []int    `json:"extras"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("AddCartItem - JSON bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné údaje"})
		return
	}

	if req.Quantity > maxItemQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Množstvo musí byť číslo medzi 1 a 10"})
		return
	}

	pizza := h.catalog.PizzaByID(req.PizzaID)
	if pizza == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Pizza sa nenašla"})
		return
	}

	size := models.PizzaSize(req.Size)
	if size == "" {
		size = models.SizeRegular
	}

	ingredients := filterIngredients(pizza.Ingredients, req.Ingredients)
	extras := h.resolveExtras(req.ExtraIDs)

	if err := h.carts.AddItem(sessionID, *pizza, size, req.Quantity, ingredients, extras); err != nil {
		log.Printf("AddCartItem - Error adding to cart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Pizzu sa nepodarilo pridať do košíka"})
		return
	}

	cart := h.carts.GetCart(sessionID)
	c.JSON(http.StatusOK, h.cartResponse(cart))
}

// UpdateCartItem zmení počet kusov položky na danej pozícii.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sessionID := h.sessionID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatná pozícia položky"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné údaje"})
		return
	}
	if req.Quantity > maxItemQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Množstvo musí byť číslo medzi 1 a 10"})
		return
	}

	if err := h.carts.UpdateQuantity(sessionID, index, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Košík sa nepodarilo upraviť"})
		return
	}

	cart := h.carts.GetCart(sessionID)
	c.JSON(http.StatusOK, h.cartResponse(cart))
}

// RemoveCartItem odstráni položku na danej pozícii.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	sessionID := h.sessionID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatná pozícia položky"})
		return
	}

	if err := h.carts.RemoveItem(sessionID, index); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Položku sa nepodarilo odstrániť"})
		return
	}

	cart := h.carts.GetCart(sessionID)
	c.JSON(http.StatusOK, h.cartResponse(cart))
}

// ClearCart vyprázdni košík.
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID := h.sessionID(c)
	if err := h.carts.Clear(sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Košík sa nepodarilo vyprázdniť"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Košík je prázdny"})
}

// SetCustomerInfo uloží kontaktné údaje do košíka.
func (h *Handler) SetCustomerInfo(c *gin.Context) {
	sessionID := h.sessionID(c)

	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné údaje"})
		return
	}

	if err := h.carts.SetCustomerInfo(sessionID, info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Údaje sa nepodarilo uložiť"})
		return
	}

	cart := h.carts.GetCart(sessionID)
	c.JSON(http.StatusOK, h.cartResponse(cart))
}

// --- Zapamätané údaje zákazníka ---

// GetSavedCustomer vráti zapamätané kontaktné údaje session.
func (h *Handler) GetSavedCustomer(c *gin.Context) {
	info := h.cartStore.GetCustomer(h.sessionID(c))
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Žiadne uložené údaje"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// SaveCustomer zapamätá kontaktné údaje pre budúce objednávky.
func (h *Handler) SaveCustomer(c *gin.Context) {
	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné údaje"})
		return
	}

	if err := h.cartStore.SaveCustomer(h.sessionID(c), info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Údaje sa nepodarilo uložiť"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Údaje sú uložené pre budúce objednávky"})
}

// ForgetCustomer zabudne zapamätané údaje.
func (h *Handler) ForgetCustomer(c *gin.Context) {
	if err := h.cartStore.DeleteCustomer(h.sessionID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Údaje sa nepodarilo vymazať"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Údaje boli vymazané"})
}

// --- Objednávky ---

// CreateOrder odošle objednávku z aktuálneho košíka. Telo požiadavky
// môže niesť kontaktné údaje; vtedy sa pred odoslaním uložia do košíka.
func (h *Handler) CreateOrder(c *gin.Context) {
	sessionID := h.sessionID(c)

	if c.Request.ContentLength > 0 {
		var info models.CustomerInfo
		if err := c.ShouldBindJSON(&info); err != nil {
			log.Printf("CreateOrder - JSON bind error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné údaje"})
			return
		}
		if err := h.carts.SetCustomerInfo(sessionID, info); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Údaje sa nepodarilo uložiť"})
			return
		}
	}

	cart := h.carts.GetCart(sessionID)
	if len(cart.Items) > maxOrderItems {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Objednávka musí obsahovať 1-20 položiek"})
		return
	}
	if h.carts.Total(cart) > maxOrderTotal {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Celková suma musí byť medzi 0 a 1000€"})
		return
	}

	order, violations, err := h.checkout.PlaceOrder(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, services.ErrCartIncomplete) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Nepodarilo sa vytvoriť objednávku"})
		return
	}
	if len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné údaje", "errors": violations})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder vráti uloženú objednávku podľa ID.
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné ID objednávky"})
		return
	}

	order, err := h.orders.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Objednávka sa nenašla"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Objednávku sa nepodarilo načítať"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder zruší čakajúcu objednávku. Povolené len pre session,
// ktorá objednávku vytvorila, a len kým je v stave pending.
func (h *Handler) CancelOrder(c *gin.Context) {
	sessionID := h.sessionID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné ID objednávky"})
		return
	}

	order, err := h.orders.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Objednávka sa nenašla"})
		return
	}
	if order.SessionID != sessionID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Objednávku nie je možné zrušiť"})
		return
	}
	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusConflict, gin.H{"message": "Objednávka sa už pripravuje a nedá sa zrušiť"})
		return
	}

	if err := h.orders.UpdateOrderStatus(c.Request.Context(), id, models.OrderStatusCancelled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Objednávku sa nepodarilo zrušiť"})
		return
	}

	log.Printf("CancelOrder - Order #%d cancelled by session %s", id, sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "Objednávka bola zrušená"})
}

// --- Administrácia ---

// AdminAuthMiddleware púšťa ďalej len prihlásenú administráciu.
func (h *Handler) AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := c.Cookie("admin_session")
		if session == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Prihlásenie je povinné"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminLogin overí heslo proti bcrypt hashu z prostredia.
func (h *Handler) AdminLogin(c *gin.Context) {
	if h.adminHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Administrácia nie je nakonfigurovaná"})
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné údaje"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.adminHash), []byte(req.Password)); err != nil {
		log.Printf("AdminLogin - Failed login attempt from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Nesprávne heslo"})
		return
	}

	sessionID := uuid.New().String()
	c.SetCookie("admin_session", sessionID, 3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Prihlásenie úspešné"})
}

// AdminLogout odhlási administráciu.
func (h *Handler) AdminLogout(c *gin.Context) {
	c.SetCookie("admin_session", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Odhlásené"})
}

// AdminGetOrders vráti všetky objednávky od najnovšej.
func (h *Handler) AdminGetOrders(c *gin.Context) {
	orders, err := h.orders.GetAllOrders(c.Request.Context())
	if err != nil {
		log.Printf("AdminGetOrders - Error getting orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Objednávky sa nepodarilo načítať"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// AdminUpdateOrderStatus zmení stav objednávky.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatné ID objednávky"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !validStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Neplatný stav objednávky"})
		return
	}

	if err := h.orders.UpdateOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Objednávka sa nenašla"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Stav sa nepodarilo zmeniť"})
		return
	}

	log.Printf("AdminUpdateOrderStatus - Order #%d -> %s", id, req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Stav objednávky bol zmenený"})
}

// validStatus kontroluje povolené stavy objednávky.
func validStatus(status string) bool {
	switch status {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusDelivering,
		models.OrderStatusReady, models.OrderStatusCompleted, models.OrderStatusCancelled:
		return true
	}
	return false
}

// filterIngredients ponechá len ingrediencie, ktoré pizza naozaj má —
// výber je podmnožina receptu, nikdy nič navyše.
func filterIngredients(available, selected []string) []string {
	allowed := make(map[string]bool, len(available))
	for _, name := range available {
		allowed[name] = true
	}

	// Bez výberu sa berie celý recept.
	if selected == nil {
		return append([]string(nil), available...)
	}

	filtered := make([]string, 0, len(selected))
	for _, name := range selected {
		if allowed[name] {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// resolveExtras premení ID prísad na snapshoty z katalógu. Neznáme ID
// sa ticho preskočia.
func (h *Handler) resolveExtras(ids []int) []models.Extra {
	byID := make(map[int]models.Extra)
	for _, extra := range h.catalog.Extras() {
		byID[extra.ID] = extra
	}

	extras := make([]models.Extra, 0, len(ids))
	for _, id := range ids {
		if extra, ok := byID[id]; ok {
			extras = append(extras, extra)
		} else {
			log.Printf("Handler.resolveExtras - Unknown extra id %d, skipping", id)
		}
	}
	return extras
}

// Health je jednoduchý stavový endpoint pre monitoring.
func (h *Handler) Health(c *gin.Context) {
	if err := h.orders.Ping(context.Background()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Databáza nie je dostupná"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
