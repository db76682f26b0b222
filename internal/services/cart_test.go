package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduardKrecmer/pizzeria/internal/database"
	"github.com/EduardKrecmer/pizzeria/internal/models"
)

func newTestCartService(t *testing.T) *CartService {
	t.Helper()
	store, err := database.NewCartStore(filepath.Join(t.TempDir(), "carts.json"))
	require.NoError(t, err)
	return NewCartService(store)
}

var margherita = models.Pizza{
	ID:          1,
	Name:        "Margherita",
	Price:       6.50,
	Ingredients: []string{"paradajková drť", "mozzarella", "bazalka"},
}

func TestAddItemFreezesUnitPrice(t *testing.T) {
	cs := newTestCartService(t)

	extras := []models.Extra{{ID: 5, Name: "Šunka", Price: 1.20}}
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeGlutenFree, 1, nil, extras))

	cart := cs.GetCart("s1")
	require.Len(t, cart.Items, 1)
	// 6.50 + 1.50 (bezlepkové) + 1.20 (šunka)
	assert.InDelta(t, 9.20, cart.Items[0].Price, 0.001)

	// Zmena katalógovej ceny po pridaní sa položky už nedotkne.
	drahsia := margherita
	drahsia.Price = 9.99
	require.NoError(t, cs.AddItem("s2", drahsia, models.SizeRegular, 1, nil, nil))
	assert.InDelta(t, 9.20, cs.GetCart("s1").Items[0].Price, 0.001)
}

func TestAddItemNeverMergesLines(t *testing.T) {
	cs := newTestCartService(t)

	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))

	cart := cs.GetCart("s1")
	assert.Len(t, cart.Items, 2)
}

func TestAddItemClampsQuantity(t *testing.T) {
	cs := newTestCartService(t)

	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 0, nil, nil))
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, -3, nil, nil))

	cart := cs.GetCart("s1")
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 1, cart.Items[1].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	cs := newTestCartService(t)
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))

	require.NoError(t, cs.UpdateQuantity("s1", 0, 4))
	assert.Equal(t, 4, cs.GetCart("s1").Items[0].Quantity)

	// Pod minimum sa oreže na 1, položka nemizne.
	require.NoError(t, cs.UpdateQuantity("s1", 0, 0))
	cart := cs.GetCart("s1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// Pozícia mimo rozsahu je tiché no-op.
	require.NoError(t, cs.UpdateQuantity("s1", 7, 2))
	assert.Len(t, cs.GetCart("s1").Items, 1)
}

func TestRemoveItem(t *testing.T) {
	cs := newTestCartService(t)
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeThick, 1, nil, nil))

	require.NoError(t, cs.RemoveItem("s1", 0))
	cart := cs.GetCart("s1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, models.SizeThick, cart.Items[0].Size)

	require.NoError(t, cs.RemoveItem("s1", 5))
	assert.Len(t, cs.GetCart("s1").Items, 1)
}

func TestMutationsResetOrderFlags(t *testing.T) {
	cs := newTestCartService(t)

	cart := cs.GetCart("s1")
	cart.OrderCompleted = true
	cart.OrderError = "Nepodarilo sa vytvoriť objednávku"
	require.NoError(t, cs.SaveCart(cart))

	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))
	cart = cs.GetCart("s1")
	assert.False(t, cart.OrderCompleted)
	assert.Empty(t, cart.OrderError)
}

func TestSetCustomerInfoDerivesPostalCode(t *testing.T) {
	cs := newTestCartService(t)

	require.NoError(t, cs.SetCustomerInfo("s1", models.CustomerInfo{
		FirstName: "Ján",
		City:      "Púchov",
	}))

	info := cs.GetCart("s1").CustomerInfo
	require.NotNil(t, info)
	assert.Equal(t, "020 01", info.PostalCode)
	assert.Equal(t, models.DeliveryCourier, info.DeliveryType)

	// Ručne zadané PSČ sa neprepisuje.
	require.NoError(t, cs.SetCustomerInfo("s1", models.CustomerInfo{
		City:       "Púchov",
		PostalCode: "999 99",
	}))
	assert.Equal(t, "999 99", cs.GetCart("s1").CustomerInfo.PostalCode)
}

func TestTotalsSingleItemDelivery(t *testing.T) {
	cs := newTestCartService(t)
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))

	cart := cs.GetCart("s1")
	assert.InDelta(t, 6.50, cs.Subtotal(cart), 0.001)
	assert.InDelta(t, 1.50, cs.DeliveryFee(cart), 0.001)
	assert.InDelta(t, 8.00, cs.Total(cart), 0.001)
}

func TestTotalsTwoItemsFreeDelivery(t *testing.T) {
	cs := newTestCartService(t)
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeThick, 1, nil, nil))

	cart := cs.GetCart("s1")
	assert.Zero(t, cs.DeliveryFee(cart))
	assert.InDelta(t, 14.00, cs.Total(cart), 0.001)
}

func TestTotalsPickupAlwaysFree(t *testing.T) {
	cs := newTestCartService(t)
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 1, nil, nil))
	require.NoError(t, cs.SetCustomerInfo("s1", models.CustomerInfo{
		FirstName:    "Ján",
		DeliveryType: models.DeliveryPickup,
	}))

	cart := cs.GetCart("s1")
	assert.Zero(t, cs.DeliveryFee(cart))
	assert.InDelta(t, 6.50, cs.Total(cart), 0.001)
}

func TestClear(t *testing.T) {
	cs := newTestCartService(t)
	require.NoError(t, cs.AddItem("s1", margherita, models.SizeRegular, 2, nil, nil))
	require.NoError(t, cs.SetCustomerInfo("s1", models.CustomerInfo{FirstName: "Ján"}))

	require.NoError(t, cs.Clear("s1"))

	cart := cs.GetCart("s1")
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.CustomerInfo)
	assert.False(t, cart.OrderCompleted)
}
