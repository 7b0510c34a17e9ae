package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/checkout"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/event"
	"github.com/example/storefront/internal/otp"
	"github.com/example/storefront/internal/payment"
	"github.com/example/storefront/internal/storage"
	"github.com/example/storefront/internal/voucher"
)

type capturePublisher struct {
	mu        sync.Mutex
	envelopes []event.Envelope
}

func (p *capturePublisher) Publish(ctx context.Context, key string, env event.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.envelopes = append(p.envelopes, env)
	return nil
}

func (p *capturePublisher) lastOTPCode(t *testing.T) string {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.envelopes) - 1; i >= 0; i-- {
		if p.envelopes[i].Type == event.TypeOTPRequested {
			var payload event.OTPRequested
			require.NoError(t, json.Unmarshal(p.envelopes[i].Data, &payload))
			return payload.Code
		}
	}
	t.Fatal("no OTPRequested event published")
	return ""
}

func newTestRouter() (http.Handler, *capturePublisher) {
	publisher := &capturePublisher{}
	carts := cart.NewManager(storage.NewMemoryStorage())
	orders := order.NewHistory()
	checkoutSvc := checkout.NewOrchestrator(
		carts,
		otp.NewService(publisher),
		voucher.NewService(),
		payment.NewService(),
		orders,
		publisher,
	)

	jwtService := auth.NewJWTService("test-secret-key-that-is-long-enough-123", 15*time.Minute, time.Hour)
	router := NewRouter(RouterConfig{
		Handlers:     NewHandlers(carts, catalog.NewService(), checkoutSvc, orders),
		AuthHandlers: NewAuthHandlers(auth.NewRegistry(), jwtService),
		JWTService:   jwtService,
	})
	return router, publisher
}

func doJSON(t *testing.T, router http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		r.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ============================================
// Catalog Tests
// ============================================

func TestAPI_GetProducts(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/products", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var packages []catalog.Package
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &packages))
	assert.NotEmpty(t, packages)
}

func TestAPI_GetProducts_AddonFilter(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/products?addon=true", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var packages []catalog.Package
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &packages))
	require.NotEmpty(t, packages)
	for _, p := range packages {
		assert.True(t, p.IsAddon())
	}
}

func TestAPI_GetProduct_NotFound(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/products/pkg-unknown", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_GetCategories(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/categories", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var categories []catalog.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 3)
}

// ============================================
// Cart Tests
// ============================================

func TestAPI_GetCart_Empty(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/cart", "user-1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.TotalItems)
	// Empty views serialize as [] rather than null.
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestAPI_AddToCart_BareIDEnrichedFromCatalog(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Website Basic", resp.Items[0].Name)
	assert.Equal(t, 1500000, resp.Items[0].Price)
	assert.True(t, resp.Items[0].Selected)
}

func TestAPI_AddToCart_UnknownBareID(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-unknown"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_AddToCart_MergesQuantity(t *testing.T) {
	router, _ := newTestRouter()

	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})
	w := doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})

	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Qty)
	assert.Equal(t, 3000000, resp.TotalPrice)
}

func TestAPI_UpdateCartItem_QtyAndSelection(t *testing.T) {
	router, _ := newTestRouter()
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})

	w := doJSON(t, router, http.MethodPatch, "/cart/items/pkg-website-basic", "user-1", map[string]any{"qty": 3, "selected": false})

	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Qty)
	assert.False(t, resp.Items[0].Selected)
	assert.Equal(t, 0, resp.SelectedCount)
}

func TestAPI_UpdateCartItem_ZeroQtyRemoves(t *testing.T) {
	router, _ := newTestRouter()
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})

	w := doJSON(t, router, http.MethodPatch, "/cart/items/pkg-website-basic", "user-1", map[string]any{"qty": 0})

	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
}

func TestAPI_CartSplitsProductsAndAddons(t *testing.T) {
	router, _ := newTestRouter()
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "addon-cdn"})

	w := doJSON(t, router, http.MethodGet, "/cart", "user-1", nil)

	resp := decodeCart(t, w)
	require.Len(t, resp.Products, 1)
	require.Len(t, resp.Addons, 1)
	assert.Equal(t, "pkg-website-basic", resp.Products[0].ID)
	assert.Equal(t, "addon-cdn", resp.Addons[0].ID)
}

func TestAPI_RemoveSelectedItems(t *testing.T) {
	router, _ := newTestRouter()
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "addon-cdn"})
	doJSON(t, router, http.MethodPatch, "/cart/items/addon-cdn", "user-1", map[string]any{"selected": false})

	w := doJSON(t, router, http.MethodDelete, "/cart/selected", "user-1", nil)

	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "addon-cdn", resp.Items[0].ID)
}

func TestAPI_CartsIsolatedPerUser(t *testing.T) {
	router, _ := newTestRouter()
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})

	w := doJSON(t, router, http.MethodGet, "/cart", "user-2", nil)

	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
}

// ============================================
// Checkout Flow Tests
// ============================================

func TestAPI_CheckoutFullFlow(t *testing.T) {
	router, publisher := newTestRouter()
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "addon-cdn"})

	w := doJSON(t, router, http.MethodPost, "/checkout", "user-1", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/checkout/contact", "user-1", map[string]any{
		"name": "Budi Santoso", "email": "budi@example.com", "whatsapp": "+628123456789",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/checkout/otp/send", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	code := publisher.lastOTPCode(t)
	w = doJSON(t, router, http.MethodPost, "/checkout/otp/verify", "user-1", map[string]any{"code": code})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"verified":true`)

	w = doJSON(t, router, http.MethodPost, "/checkout/voucher", "user-1", map[string]any{"code": "DISKON10"})
	require.Equal(t, http.StatusOK, w.Code)
	var voucherResult voucher.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &voucherResult))
	assert.True(t, voucherResult.Valid)

	w = doJSON(t, router, http.MethodPost, "/checkout/method", "user-1", map[string]any{"method": "Bank Transfer"})
	require.Equal(t, http.StatusOK, w.Code)
	var instruction payment.Instruction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &instruction))
	assert.Equal(t, 1575000, instruction.Amount)

	w = doJSON(t, router, http.MethodGet, "/checkout/payment", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched payment.Instruction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, instruction.Reference, fetched.Reference)

	w = doJSON(t, router, http.MethodPost, "/checkout/payment/confirm", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recorded order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recorded))
	assert.Regexp(t, `^ORD-\d{6}$`, recorded.ID)

	// The purchased items are gone from the cart.
	w = doJSON(t, router, http.MethodGet, "/cart", "user-1", nil)
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
}

func TestAPI_StartCheckout_EmptySelection(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/checkout", "user-1", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_GetCheckout_NoSession(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/checkout", "user-1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_GetPaymentInstruction_BeforeChoosingMethod(t *testing.T) {
	router, _ := newTestRouter()
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})
	doJSON(t, router, http.MethodPost, "/checkout", "user-1", nil)

	w := doJSON(t, router, http.MethodGet, "/checkout/payment", "user-1", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPI_ChooseMethod_BeforeVerification(t *testing.T) {
	router, _ := newTestRouter()
	doJSON(t, router, http.MethodPost, "/cart/items", "user-1", map[string]any{"id": "pkg-website-basic"})
	doJSON(t, router, http.MethodPost, "/checkout", "user-1", nil)

	w := doJSON(t, router, http.MethodPost, "/checkout/method", "user-1", map[string]any{"method": "Bank Transfer"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

// ============================================
// Auth Tests
// ============================================

func TestAPI_RegisterAndMe(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Budi Santoso", "email": "budi@example.com", "whatsapp": "+628123456789", "password": "securepassword123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "access_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "budi@example.com")
}

func TestAPI_SubmitContact_PrefilledFromAccount(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Budi Santoso", "email": "budi@example.com", "whatsapp": "+628123456789", "password": "securepassword123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "access_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	doAuthed := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		r := httptest.NewRequest(method, path, &buf)
		r.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)
		return rec
	}

	doAuthed(http.MethodPost, "/cart/items", map[string]any{"id": "pkg-website-basic"})
	rec := doAuthed(http.MethodPost, "/checkout", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// An empty body is enough; the contact fields come from the account.
	rec = doAuthed(http.MethodPost, "/checkout/contact", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doAuthed(http.MethodGet, "/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var session checkout.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "Budi Santoso", session.Contact.Name)
	assert.Equal(t, "budi@example.com", session.Contact.Email)
	assert.Equal(t, "+628123456789", session.Contact.WhatsApp)
}

func TestAPI_Login_WrongPassword(t *testing.T) {
	router, _ := newTestRouter()
	doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Budi", "email": "budi@example.com", "password": "securepassword123",
	})

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "budi@example.com", "password": "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_Orders_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/orders", "user-1", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodDelete, "/products", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
