package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduardKrecmer/pizzeria/internal/models"
)

func newTestCartStore(t *testing.T) (*CartStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carts.json")
	store, err := NewCartStore(path)
	require.NoError(t, err)
	return store, path
}

func sampleCart(sessionID string) *models.Cart {
	return &models.Cart{
		SessionID: sessionID,
		Items: []models.CartItem{
			{
				PizzaID:     1,
				Name:        "Margherita",
				Price:       8.00,
				Size:        models.SizeGlutenFree,
				Quantity:    2,
				Ingredients: []string{"paradajková drť", "mozzarella"},
				Extras:      []models.Extra{{ID: 5, Name: "Šunka", Price: 1.20, Category: "Mäso"}},
			},
		},
		CustomerInfo: &models.CustomerInfo{
			FirstName:    "Ján",
			Phone:        "0901 234 567",
			City:         "Púchov",
			Street:       "Moravská 12",
			DeliveryType: models.DeliveryCourier,
		},
	}
}

func TestCartStoreSaveAndGet(t *testing.T) {
	store, _ := newTestCartStore(t)

	cart := sampleCart("session-1")
	require.NoError(t, store.SaveCart(cart))

	got, err := store.GetCart("session-1")
	require.NoError(t, err)
	assert.Equal(t, cart, got)
}

func TestCartStoreGetUnknownSession(t *testing.T) {
	store, _ := newTestCartStore(t)

	_, err := store.GetCart("neznáma")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartStoreSaveOverwrites(t *testing.T) {
	store, _ := newTestCartStore(t)

	cart := sampleCart("session-1")
	require.NoError(t, store.SaveCart(cart))

	cart.Items[0].Quantity = 5
	require.NoError(t, store.SaveCart(cart))

	got, err := store.GetCart("session-1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Items[0].Quantity)
}

func TestCartStoreSurvivesRestart(t *testing.T) {
	store, path := newTestCartStore(t)

	cart := sampleCart("session-1")
	require.NoError(t, store.SaveCart(cart))

	// Nový store nad tým istým súborom — simulácia reštartu servera.
	reopened, err := NewCartStore(path)
	require.NoError(t, err)

	got, err := reopened.GetCart("session-1")
	require.NoError(t, err)
	assert.Equal(t, cart, got)
}

func TestCartStoreCorruptedSnapshotStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carts.json")
	require.NoError(t, os.WriteFile(path, []byte("{nevalidný json"), 0644))

	store, err := NewCartStore(path)
	require.NoError(t, err)

	_, err = store.GetCart("session-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartStoreDeleteCart(t *testing.T) {
	store, _ := newTestCartStore(t)

	require.NoError(t, store.SaveCart(sampleCart("session-1")))
	require.NoError(t, store.DeleteCart("session-1"))

	_, err := store.GetCart("session-1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	// Opakované mazanie nie je chyba.
	assert.NoError(t, store.DeleteCart("session-1"))
}

func TestCartStoreSavedCustomers(t *testing.T) {
	store, path := newTestCartStore(t)

	info := models.CustomerInfo{
		FirstName:  "Ján",
		LastName:   "Novák",
		Phone:      "0901 234 567",
		City:       "Púchov",
		PostalCode: "020 01",
	}
	require.NoError(t, store.SaveCustomer("session-1", info))

	got := store.GetCustomer("session-1")
	require.NotNil(t, got)
	assert.Equal(t, info, *got)

	// Zapamätané údaje prežijú reštart.
	reopened, err := NewCartStore(path)
	require.NoError(t, err)
	require.NotNil(t, reopened.GetCustomer("session-1"))

	require.NoError(t, store.DeleteCustomer("session-1"))
	assert.Nil(t, store.GetCustomer("session-1"))
}
