package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/checkout"
	"github.com/example/storefront/internal/domain/order"
)

type Handlers struct {
	carts    *cart.Manager
	catalog  *catalog.Service
	checkout *checkout.Orchestrator
	orders   *order.History
}

func NewHandlers(carts *cart.Manager, catalogSvc *catalog.Service, checkoutSvc *checkout.Orchestrator, orders *order.History) *Handlers {
	return &Handlers{
		carts:    carts,
		catalog:  catalogSvc,
		checkout: checkoutSvc,
		orders:   orders,
	}
}

// Catalog Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	filter := catalog.Filter{Category: r.URL.Query().Get("category")}
	if raw := r.URL.Query().Get("addon"); raw != "" {
		isAddon := raw == "true"
		filter.Addon = &isAddon
	}

	packages := h.catalog.List(filter)
	if packages == nil {
		packages = []catalog.Package{}
	}
	respondJSON(w, http.StatusOK, packages)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	pkg, err := h.catalog.Get(id)
	if err != nil {
		respondJSONError(w, "Product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, pkg)
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Categories())
}

// Cart Handlers

// CartResponse carries the line items together with every derived view the
// header, sidebar and checkout summary need.
type CartResponse struct {
	Items         []cart.Item `json:"items"`
	Products      []cart.Item `json:"products"`
	Addons        []cart.Item `json:"addons"`
	TotalItems    int         `json:"total_items"`
	TotalPrice    int         `json:"total_price"`
	SelectedCount int         `json:"selected_count"`
	SelectedTotal int         `json:"selected_total"`
}

func (h *Handlers) cartResponse(s *cart.Store) CartResponse {
	products, addons := s.Split()
	resp := CartResponse{
		Items:         s.Items(),
		Products:      products,
		Addons:        addons,
		TotalItems:    s.TotalItems(),
		TotalPrice:    s.TotalPrice(),
		SelectedCount: s.SelectedCount(),
		SelectedTotal: s.SelectedTotal(),
	}
	if resp.Items == nil {
		resp.Items = []cart.Item{}
	}
	if resp.Products == nil {
		resp.Products = []cart.Item{}
	}
	if resp.Addons == nil {
		resp.Addons = []cart.Item{}
	}
	return resp
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Store(r.Context(), getUserID(r))
	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cart.Item
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		respondJSONError(w, "Product id is required", http.StatusBadRequest)
		return
	}

	// Clients may send a bare id; fill descriptive fields from the catalog.
	if req.Name == "" {
		pkg, err := h.catalog.Get(req.ID)
		if err != nil {
			respondJSONError(w, "Product not found", http.StatusNotFound)
			return
		}
		req.Name = pkg.Name
		req.Price = pkg.Price
		req.Image = pkg.Image
	}

	store := h.carts.Store(r.Context(), getUserID(r))
	store.Add(r.Context(), req)
	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/cart/items/")

	var req struct {
		Qty      *int  `json:"qty"`
		Selected *bool `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	store := h.carts.Store(r.Context(), getUserID(r))
	if req.Qty != nil {
		store.SetQuantity(r.Context(), id, *req.Qty)
	}
	if req.Selected != nil {
		store.ToggleSelection(r.Context(), id, *req.Selected)
	}
	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/cart/items/")
	store := h.carts.Store(r.Context(), getUserID(r))
	store.Remove(r.Context(), id)
	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

func (h *Handlers) SelectAllItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selected bool `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	store := h.carts.Store(r.Context(), getUserID(r))
	store.SelectAll(r.Context(), req.Selected)
	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

func (h *Handlers) RemoveSelectedItems(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Store(r.Context(), getUserID(r))
	store.RemoveSelected(r.Context())
	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Store(r.Context(), getUserID(r))
	store.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.cartResponse(store))
}

// Checkout Handlers

func (h *Handlers) StartCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.checkout.Start(r.Context(), getUserID(r))
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (h *Handlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.checkout.Session(getUserID(r))
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var contact checkout.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Logged-in buyers do not re-enter what the account already knows.
	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		if contact.Name == "" {
			contact.Name = claims.Name
		}
		if contact.Email == "" {
			contact.Email = claims.Email
		}
		if contact.WhatsApp == "" {
			contact.WhatsApp = claims.WhatsApp
		}
	}

	if err := h.checkout.SubmitContact(r.Context(), getUserID(r), contact); err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Contact saved"})
}

func (h *Handlers) SendOTP(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.SendCode(r.Context(), getUserID(r)); err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Code sent"})
}

func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	verified, err := h.checkout.VerifyCode(r.Context(), getUserID(r), req.Code)
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"verified": verified})
}

func (h *Handlers) ApplyVoucher(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.checkout.ApplyVoucher(r.Context(), getUserID(r), req.Code)
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) ChoosePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	instruction, err := h.checkout.ChooseMethod(r.Context(), getUserID(r), req.Method)
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instruction)
}

func (h *Handlers) GetPaymentInstruction(w http.ResponseWriter, r *http.Request) {
	session, err := h.checkout.Session(getUserID(r))
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	if session.Instruction == nil {
		respondCheckoutError(w, checkout.ErrNoInstruction)
		return
	}
	respondJSON(w, http.StatusOK, session.Instruction)
}

func (h *Handlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	confirmed, err := h.checkout.ConfirmPayment(r.Context(), getUserID(r))
	if err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, confirmed)
}

// Order Handlers

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.orders.ListByUser(getUserID(r))
	respondJSON(w, http.StatusOK, orders)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func respondCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrSessionNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, checkout.ErrNoSelection),
		errors.Is(err, checkout.ErrContactIncomplete),
		errors.Is(err, checkout.ErrUnknownMethod):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, checkout.ErrNotVerified),
		errors.Is(err, checkout.ErrNoInstruction),
		errors.Is(err, checkout.ErrNotConfirmed):
		respondJSONError(w, err.Error(), http.StatusConflict)
	default:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// getUserID extracts user ID from JWT context or falls back to X-User-ID header
func getUserID(r *http.Request) string {
	// First try to get from JWT context
	if userID := middleware.GetUserID(r.Context()); userID != "" {
		return userID
	}

	// Fall back to X-User-ID header for guest sessions
	if userID := r.Header.Get("X-User-ID"); userID != "" {
		return userID
	}

	return "default-user"
}
