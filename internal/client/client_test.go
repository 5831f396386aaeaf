package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/borbabeats/sistema-comandas/internal/client"
	"github.com/borbabeats/sistema-comandas/internal/config"
	"github.com/borbabeats/sistema-comandas/internal/db"
	"github.com/borbabeats/sistema-comandas/internal/models"
	"github.com/borbabeats/sistema-comandas/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// startServer runs the real router over an in-memory store, so client tests
// exercise the wire format end to end.
func startServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(conn))
	srv := httptest.NewServer(server.New(conn, config.Config{}))
	t.Cleanup(srv.Close)
	return srv, conn
}

func seedCatalog(t *testing.T, conn *gorm.DB) (models.Plate, models.Beverage) {
	t.Helper()
	p := models.Plate{Name: "Burger", Description: "House burger", Price: 12.50, Type: models.FoodSandwich}
	require.NoError(t, conn.Create(&p).Error)
	b := models.Beverage{Name: "Limonada", Description: "Fresh lemonade", Price: 9, Type: models.BeverageJuice}
	require.NoError(t, conn.Create(&b).Error)
	return p, b
}

func TestMenuIsCachedUntilRefresh(t *testing.T) {
	srv, conn := startServer(t)
	seedCatalog(t, conn)
	c := client.New(srv.URL, 5*time.Second)
	ctx := context.Background()

	menu, err := c.Menu(ctx)
	require.NoError(t, err)
	assert.Len(t, menu.Plates, 1)
	assert.Len(t, menu.Beverages, 1)
	assert.Empty(t, menu.Desserts)

	// A catalog change is invisible until the cache is refreshed.
	require.NoError(t, conn.Create(&models.Dessert{Name: "Pudim", Description: "milk flan", Price: 16}).Error)
	cached, err := c.Menu(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached.Desserts)

	fresh, err := c.RefreshMenu(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Desserts, 1)

	// Invalidate forces the next Menu call back to the API.
	require.NoError(t, conn.Create(&models.Dessert{Name: "Mousse", Description: "chocolate mousse", Price: 14}).Error)
	c.InvalidateMenu()
	after, err := c.Menu(ctx)
	require.NoError(t, err)
	assert.Len(t, after.Desserts, 2)
}

func TestCreateOrderRoundTrip(t *testing.T) {
	srv, conn := startServer(t)
	plate, bev := seedCatalog(t, conn)
	c := client.New(srv.URL, 5*time.Second)
	ctx := context.Background()

	obs := "no onions"
	order, err := c.CreateOrder(ctx, client.CreateOrderRequest{
		ClientName:   "Alice",
		PlateID:      &plate.ID,
		BeverageID:   &bev.ID,
		Observations: &obs,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 21.50, order.Total)
	require.NotNil(t, order.Observations)
	assert.Equal(t, "no onions", *order.Observations)

	got, err := c.Order(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	list, err := c.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAdvanceOrderStatus(t *testing.T) {
	srv, conn := startServer(t)
	plate, _ := seedCatalog(t, conn)
	c := client.New(srv.URL, 5*time.Second)
	ctx := context.Background()

	order, err := c.CreateOrder(ctx, client.CreateOrderRequest{ClientName: "Bob", PlateID: &plate.ID})
	require.NoError(t, err)

	advanced, err := c.AdvanceOrderStatus(ctx, order.ID, models.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, advanced.Status)

	// Skipping ahead is refused by the server and decoded into an APIError.
	_, err = c.AdvanceOrderStatus(ctx, order.ID, models.StatusDelivered)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid_transition", apiErr.Code)
	assert.NotEmpty(t, apiErr.Message)
}

func TestAPIErrorCarriesServerCode(t *testing.T) {
	srv, _ := startServer(t)
	c := client.New(srv.URL, 5*time.Second)

	_, err := c.Order(context.Background(), 99)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestCreateOrderValidationError(t *testing.T) {
	srv, _ := startServer(t)
	c := client.New(srv.URL, 5*time.Second)

	_, err := c.CreateOrder(context.Background(), client.CreateOrderRequest{ClientName: "Carol"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "at least one item")
}
