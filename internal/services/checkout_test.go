package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduardKrecmer/pizzeria/internal/models"
)

// fakeSubmitter ukladá objednávky do pamäte, prípadne vracia nastavenú chybu.
type fakeSubmitter struct {
	mu     sync.Mutex
	orders []*models.Order
	err    error
}

func (f *fakeSubmitter) CreateOrder(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	order.ID = len(f.orders) + 1
	order.Status = models.OrderStatusPending
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, order)
	return nil
}

// fakeNotifier počíta odoslania a vie simulovať zlyhanie jednej strany.
type fakeNotifier struct {
	mu              sync.Mutex
	customerSent    int
	restaurantSent  int
	customerError   error
	restaurantError error
}

func (f *fakeNotifier) SendCustomerConfirmation(*models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customerSent++
	return f.customerError
}

func (f *fakeNotifier) SendRestaurantAlert(*models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restaurantSent++
	return f.restaurantError
}

func (f *fakeNotifier) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.customerSent, f.restaurantSent
}

func newTestCheckout(t *testing.T) (*CheckoutService, *CartService, *fakeSubmitter, *fakeNotifier) {
	t.Helper()
	carts := newTestCartService(t)
	submitter := &fakeSubmitter{}
	notifier := &fakeNotifier{}
	return NewCheckoutService(carts, submitter, notifier), carts, submitter, notifier
}

func validCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		FirstName:    "Ján",
		LastName:     "Novák",
		Email:        "jan.novak@example.com",
		Phone:        "0901 234 567",
		Street:       "Moravská 12",
		City:         "Beluša",
		DeliveryType: models.DeliveryCourier,
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	checkout, carts, _, _ := newTestCheckout(t)
	cart := carts.GetCart("s1")

	violations := checkout.Validate(cart, models.CustomerInfo{
		Email:        "zly-email",
		DeliveryType: models.DeliveryCourier,
	})

	assert.Equal(t, "Meno je povinné", violations["firstName"])
	assert.Equal(t, "Telefón je povinný", violations["phone"])
	assert.Equal(t, "Neplatný formát emailu", violations["email"])
	assert.Equal(t, "Mesto je povinné", violations["city"])
	assert.Equal(t, "Ulica a číslo sú povinné", violations["street"])
}

func TestValidatePhoneFormat(t *testing.T) {
	checkout, carts, _, _ := newTestCheckout(t)
	cart := carts.GetCart("s1")

	info := validCustomer()
	info.Phone = "abc"
	violations := checkout.Validate(cart, info)
	assert.Equal(t, "Neplatný formát telefónu", violations["phone"])

	info.Phone = "+421 901 234 567"
	assert.NotContains(t, checkout.Validate(cart, info), "phone")
}

func TestValidateEmailOptional(t *testing.T) {
	checkout, carts, _, _ := newTestCheckout(t)
	cart := carts.GetCart("s1")

	info := validCustomer()
	info.Email = ""
	assert.NotContains(t, checkout.Validate(cart, info), "email")
}

func TestValidatePickupSkipsAddress(t *testing.T) {
	checkout, carts, _, _ := newTestCheckout(t)
	cart := carts.GetCart("s1")

	info := models.CustomerInfo{
		FirstName:    "Ján",
		Phone:        "0901234567",
		DeliveryType: models.DeliveryPickup,
	}
	assert.Empty(t, checkout.Validate(cart, info))
}

func TestValidateMinimumOrder(t *testing.T) {
	checkout, carts, _, _ := newTestCheckout(t)
	require.NoError(t, carts.AddItem("s1", margherita, models.SizeRegular, 2, nil, nil))
	cart := carts.GetCart("s1")

	info := validCustomer()
	info.City = "Púchov"
	info.CityPart = "Čertov"

	// 13.00 € < 20 €, chýba 7.00 €
	violations := checkout.Validate(cart, info)
	assert.Equal(t,
		"Minimálna hodnota objednávky pre Púchov (Čertov) je 20€. Aktuálna hodnota: 13.00€, chýba 7.00€",
		violations["minimumOrder"])

	// Bez minima prejde tá istá objednávka bez výhrad.
	info.City = "Beluša"
	info.CityPart = ""
	assert.Empty(t, checkout.Validate(cart, info))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	checkout, _, _, _ := newTestCheckout(t)

	_, _, err := checkout.PlaceOrder(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrCartIncomplete)
}

func TestPlaceOrderMissingCustomerInfo(t *testing.T) {
	checkout, carts, _, _ := newTestCheckout(t)
	require.NoError(t, carts.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))

	_, _, err := checkout.PlaceOrder(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrCartIncomplete)
}

func TestPlaceOrderValidationKeepsCart(t *testing.T) {
	checkout, carts, submitter, _ := newTestCheckout(t)
	require.NoError(t, carts.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))
	info := validCustomer()
	info.Phone = ""
	require.NoError(t, carts.SetCustomerInfo("s1", info))

	order, violations, err := checkout.PlaceOrder(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Contains(t, violations, "phone")

	assert.Empty(t, submitter.orders)
	assert.Len(t, carts.GetCart("s1").Items, 1)
}

func TestPlaceOrderSuccess(t *testing.T) {
	checkout, carts, submitter, notifier := newTestCheckout(t)
	require.NoError(t, carts.AddItem("s1", margherita, models.SizeGlutenFree, 1, nil, nil))
	require.NoError(t, carts.SetCustomerInfo("s1", validCustomer()))

	order, violations, err := checkout.PlaceOrder(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, violations)
	require.NotNil(t, order)

	assert.Equal(t, "Ján Novák", order.CustomerName)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	// 8.00 (položka) + 1.50 (rozvoz jedného kusu)
	assert.InDelta(t, 9.50, order.TotalAmount, 0.001)
	assert.InDelta(t, 1.50, order.DeliveryFee, 0.001)
	require.Len(t, submitter.orders, 1)

	// Košík sa po úspechu vyprázdni a označí.
	cart := carts.GetCart("s1")
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.CustomerInfo)
	assert.True(t, cart.OrderCompleted)
	assert.Empty(t, cart.OrderError)

	// Obe notifikácie dobehnú na pozadí.
	assert.Eventually(t, func() bool {
		customer, restaurant := notifier.counts()
		return customer == 1 && restaurant == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPlaceOrderSaveFailureKeepsCart(t *testing.T) {
	checkout, carts, submitter, notifier := newTestCheckout(t)
	submitter.err = errors.New("databáza nedostupná")

	require.NoError(t, carts.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))
	require.NoError(t, carts.SetCustomerInfo("s1", validCustomer()))

	order, _, err := checkout.PlaceOrder(context.Background(), "s1")
	assert.Error(t, err)
	assert.Nil(t, order)

	// Položky zostávajú pre opakovaný pokus, chyba je v košíku viditeľná.
	cart := carts.GetCart("s1")
	assert.Len(t, cart.Items, 1)
	assert.False(t, cart.OrderCompleted)
	assert.Equal(t, "Nepodarilo sa vytvoriť objednávku", cart.OrderError)

	// Bez uloženej objednávky sa nič neodosiela.
	time.Sleep(50 * time.Millisecond)
	customer, restaurant := notifier.counts()
	assert.Zero(t, customer)
	assert.Zero(t, restaurant)
}

func TestPlaceOrderNotificationFailureDoesNotUndoOrder(t *testing.T) {
	checkout, carts, submitter, notifier := newTestCheckout(t)
	notifier.restaurantError = errors.New("SMTP nedostupné")

	require.NoError(t, carts.AddItem("s1", margherita, models.SizeRegular, 2, nil, nil))
	require.NoError(t, carts.SetCustomerInfo("s1", validCustomer()))

	order, violations, err := checkout.PlaceOrder(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, violations)
	require.NotNil(t, order)

	// Objednávka platí aj so zlyhanou notifikáciou reštaurácii.
	assert.Len(t, submitter.orders, 1)
	assert.True(t, carts.GetCart("s1").OrderCompleted)

	assert.Eventually(t, func() bool {
		customer, restaurant := notifier.counts()
		return customer == 1 && restaurant == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPlaceOrderWithoutEmailSkipsConfirmation(t *testing.T) {
	checkout, carts, _, notifier := newTestCheckout(t)

	info := validCustomer()
	info.Email = ""
	require.NoError(t, carts.AddItem("s1", margherita, models.SizeRegular, 2, nil, nil))
	require.NoError(t, carts.SetCustomerInfo("s1", info))

	order, violations, err := checkout.PlaceOrder(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, violations)
	require.NotNil(t, order)

	assert.Eventually(t, func() bool {
		_, restaurant := notifier.counts()
		return restaurant == 1
	}, time.Second, 10*time.Millisecond)

	customer, _ := notifier.counts()
	assert.Zero(t, customer)
}

func TestPlaceOrderFreezesPricesInOrder(t *testing.T) {
	checkout, carts, submitter, _ := newTestCheckout(t)

	require.NoError(t, carts.AddItem("s1", margherita, models.SizeVegan, 2, nil,
		[]models.Extra{{ID: 5, Name: "Šunka", Price: 1.20}}))
	require.NoError(t, carts.SetCustomerInfo("s1", validCustomer()))

	order, _, err := checkout.PlaceOrder(context.Background(), "s1")
	require.NoError(t, err)

	require.Len(t, submitter.orders, 1)
	require.Len(t, order.Items, 1)
	// 6.50 + 2.00 (vegánska) + 1.20 (šunka) = 9.70 za kus
	assert.InDelta(t, 9.70, order.Items[0].Price, 0.001)
	assert.InDelta(t, 19.40, order.TotalAmount, 0.001)
}
