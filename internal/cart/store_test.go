package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgredis "github.com/cutiefy/cutiefy-backend/pkg/redis"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlot struct {
	values map[string]string
	getErr error
	setErr error
}

func newFakeSlot() *fakeSlot {
	return &fakeSlot{values: make(map[string]string)}
}

func (f *fakeSlot) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return v, nil
}

func (f *fakeSlot) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = string(value.([]byte))
	return nil
}

func (f *fakeSlot) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeSlot) CartKey(sessionID string) string {
	return "cutiefy:cart:" + sessionID
}

// assertLinesEqual compares lines field by field. Prices compare by value:
// the JSON codec does not preserve the decimal exponent, so 149.00 reloads
// as 149 and reflect equality would reject it.
func assertLinesEqual(t *testing.T, want, got []Line) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ItemID, got[i].ItemID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].ImageURL, got[i].ImageURL)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].Price.Equal(got[i].Price), "line %d price: want %s got %s", i, want[i].Price, got[i].Price)
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, err := NewRedisStore(newFakeSlot(), time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	cart := &Cart{}
	cart.AddItem(LineItem{ItemID: uuid.New(), Name: "Satin Bow", Price: decimal.RequireFromString("199.00"), ImageURL: "https://cdn.cutiefy.in/bow.jpg"})
	cart.AddItem(LineItem{ItemID: uuid.New(), Name: "Heart Studs", Price: decimal.RequireFromString("349.00")})
	cart.UpdateQuantity(cart.Lines[0].ItemID, 4)

	require.NoError(t, store.Save(ctx, "sess-1", cart))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assertLinesEqual(t, cart.Lines, loaded.Lines)
	assert.Equal(t, 5, loaded.TotalItems())
	assert.Equal(t, "1145.00", loaded.TotalPrice().StringFixed(2))
}

func TestRedisStoreUnknownSessionIsEmptyCart(t *testing.T) {
	store, err := NewRedisStore(newFakeSlot(), time.Hour)
	require.NoError(t, err)

	cart, err := store.Load(context.Background(), "missing")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestRedisStoreDelete(t *testing.T) {
	store, err := NewRedisStore(newFakeSlot(), time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	cart := &Cart{}
	cart.AddItem(LineItem{ItemID: uuid.New(), Name: "a", Price: decimal.New(10, 0)})
	require.NoError(t, store.Save(ctx, "sess-1", cart))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestRedisStoreWrapsBackendErrors(t *testing.T) {
	slot := newFakeSlot()
	slot.getErr = errors.New("connection refused")
	store, err := NewRedisStore(slot, time.Hour)
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "sess-1")
	require.Error(t, err)
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cart := &Cart{}
	cart.AddItem(LineItem{ItemID: uuid.New(), Name: "a", Price: decimal.New(10, 0)})
	require.NoError(t, store.Save(ctx, "sess-1", cart))

	cart.Lines[0].Quantity = 99

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Lines[0].Quantity)
}
