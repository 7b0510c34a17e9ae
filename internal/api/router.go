package api

import (
	"log"
	"net/http"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/auth"
)

// RouterConfig bundles the dependencies the router needs.
type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	JWTService   *auth.JWTService
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.AuthMiddleware(cfg.JWTService)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg.JWTService)

	// Auth
	mux.HandleFunc("/auth/register", methodHandler(http.MethodPost, cfg.AuthHandlers.Register))
	mux.HandleFunc("/auth/login", methodHandler(http.MethodPost, cfg.AuthHandlers.Login))
	mux.HandleFunc("/auth/refresh", methodHandler(http.MethodPost, cfg.AuthHandlers.Refresh))
	mux.HandleFunc("/auth/logout", methodHandler(http.MethodPost, cfg.AuthHandlers.Logout))
	mux.Handle("/auth/me", requireAuth(methodHandler(http.MethodGet, cfg.AuthHandlers.Me)))

	// Catalog
	mux.HandleFunc("/products", methodHandler(http.MethodGet, cfg.Handlers.GetProducts))
	mux.HandleFunc("/products/", methodHandler(http.MethodGet, cfg.Handlers.GetProduct))
	mux.HandleFunc("/categories", methodHandler(http.MethodGet, cfg.Handlers.GetCategories))

	// Cart
	mux.Handle("/cart", optionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg.Handlers.GetCart(w, r)
		case http.MethodDelete:
			cfg.Handlers.ClearCart(w, r)
		default:
			methodNotAllowed(w)
		}
	})))
	mux.Handle("/cart/items", optionalAuth(methodHandler(http.MethodPost, cfg.Handlers.AddToCart)))
	mux.Handle("/cart/items/", optionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			cfg.Handlers.UpdateCartItem(w, r)
		case http.MethodDelete:
			cfg.Handlers.RemoveFromCart(w, r)
		default:
			methodNotAllowed(w)
		}
	})))
	mux.Handle("/cart/selection", optionalAuth(methodHandler(http.MethodPost, cfg.Handlers.SelectAllItems)))
	mux.Handle("/cart/selected", optionalAuth(methodHandler(http.MethodDelete, cfg.Handlers.RemoveSelectedItems)))

	// Checkout
	mux.Handle("/checkout", optionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			cfg.Handlers.StartCheckout(w, r)
		case http.MethodGet:
			cfg.Handlers.GetCheckout(w, r)
		default:
			methodNotAllowed(w)
		}
	})))
	mux.Handle("/checkout/contact", optionalAuth(methodHandler(http.MethodPost, cfg.Handlers.SubmitContact)))
	mux.Handle("/checkout/otp/send", optionalAuth(methodHandler(http.MethodPost, cfg.Handlers.SendOTP)))
	mux.Handle("/checkout/otp/verify", optionalAuth(methodHandler(http.MethodPost, cfg.Handlers.VerifyOTP)))
	mux.Handle("/checkout/voucher", optionalAuth(methodHandler(http.MethodPost, cfg.Handlers.ApplyVoucher)))
	mux.Handle("/checkout/method", optionalAuth(methodHandler(http.MethodPost, cfg.Handlers.ChoosePaymentMethod)))
	mux.Handle("/checkout/payment", optionalAuth(methodHandler(http.MethodGet, cfg.Handlers.GetPaymentInstruction)))
	mux.Handle("/checkout/payment/confirm", optionalAuth(methodHandler(http.MethodPost, cfg.Handlers.ConfirmPayment)))

	// Orders (dashboard)
	mux.Handle("/orders", requireAuth(methodHandler(http.MethodGet, cfg.Handlers.GetOrders)))

	return withLogging(mux)
}

func methodHandler(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			methodNotAllowed(w)
			return
		}
		handler(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
