package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbonfim/DeliveryApp/configs"
	"github.com/wbonfim/DeliveryApp/internal/mockapi"
	"github.com/wbonfim/DeliveryApp/internal/store"
	"github.com/wbonfim/DeliveryApp/pkg/logger"
)

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), nil, &out))
	assert.Contains(t, out.String(), "usage: delivery <command>")
	assert.Contains(t, out.String(), "restaurants [-search term]")

	out.Reset()
	err := run(context.Background(), []string{"fly"}, &out)
	assert.EqualError(t, err, `unknown command "fly"`)
}

func TestCommands_Session(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	router, err := mockapi.New(ctx, mockapi.Config{Logger: logger.Nop()})
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	defer srv.Close()

	config, err := configs.LoadConfigFrom(map[string]string{
		"DELIVERY_API_URL": srv.URL + mockapi.DefaultPrefix,
		"STORAGE_DRIVER":   "file",
		"STORAGE_FILE":     filepath.Join(t.TempDir(), "session.json"),
		"LOG_LEVEL":        "disabled",
	})
	require.NoError(t, err)

	// Each invocation is a fresh process sharing only the stored credential.
	exec := func(cmd func(context.Context, *app, []string) error, args ...string) (string, error) {
		var out bytes.Buffer
		a, err := newApp(ctx, config, &out)
		require.NoError(t, err)
		err = cmd(ctx, a, args)
		return out.String(), err
	}

	out, err := exec(cmdRestaurants, "-category", "Pizza")
	require.NoError(t, err)
	assert.Contains(t, out, "Pizzaria Bella Napoli")
	assert.NotContains(t, out, "Burger Palace")

	_, err = exec(cmdCart)
	assert.ErrorIs(t, err, store.ErrAuthRequired)

	_, err = exec(cmdLogin, "-email", "not-an-email", "-password", "123456")
	assert.EqualError(t, err, "email must be a valid email")

	out, err = exec(cmdLogin, "-email", "cliente1@email.com", "-password", mockapi.SeedPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, João Silva!")

	out, err = exec(cmdWhoami)
	require.NoError(t, err)
	assert.Contains(t, out, "cliente1@email.com")

	out, err = exec(cmdAdd, "-product", "1", "-qty", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Big Burger")
	assert.Contains(t, out, "R$ 49.80")

	out, err = exec(cmdOrder,
		"-payment", "pix", "-street", "Rua das Flores", "-number", "123",
		"-neighborhood", "Centro", "-city", "São Paulo", "-state", "SP", "-zip", "01000-000")
	require.NoError(t, err)
	assert.Contains(t, out, "Order ORD-")
	assert.Contains(t, out, "R$ 55.70")

	out, err = exec(cmdCart)
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")

	out, err = exec(cmdOrders)
	require.NoError(t, err)
	assert.Contains(t, out, "pending")

	_, err = exec(cmdLogout)
	require.NoError(t, err)

	_, err = exec(cmdWhoami)
	assert.ErrorIs(t, err, store.ErrAuthRequired)
}
