package handler

import (
	"net/http"

	"github.com/aokpower/ari-cart/internal/application/ari"
	"github.com/aokpower/ari-cart/internal/domain/storefront"
	"github.com/aokpower/ari-cart/internal/infrastructure/logger"
	"github.com/aokpower/ari-cart/internal/infrastructure/notify"
	"github.com/aokpower/ari-cart/internal/infrastructure/shopify"
	"github.com/aokpower/ari-cart/internal/interfaces/http/dto"
	"github.com/aokpower/ari-cart/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ARIHandler exposes the add-to-cart action to host pages. Every request runs
// in its own cart session seeded with the caller's storefront cookies.
type ARIHandler struct {
	BaseHandler
	lookup   storefront.PartLookup
	carts    *shopify.Client
	selector string
	opts     []ari.Option
}

// NewARIHandler creates a new ARIHandler
func NewARIHandler(lookup storefront.PartLookup, carts *shopify.Client, selector string, opts ...ari.Option) *ARIHandler {
	return &ARIHandler{
		lookup:   lookup,
		carts:    carts,
		selector: selector,
		opts:     opts,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *ARIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ari/cart", h.AddToCart)
	rg.GET("/cart/count", h.CartCount)
}

// AddToCart runs one add-to-cart invocation. The parameter string comes from
// the params field (JSON or form) or, when that is empty, the raw query.
func (h *ARIHandler) AddToCart(c *gin.Context) {
	var req dto.AddToCartRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			if middleware.IsBodyTooLarge(err) {
				middleware.AbortBodyTooLarge(c)
				return
			}
			h.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}
	raw := req.Params
	if raw == "" {
		raw = c.Request.URL.RawQuery
	}

	badge := notify.NewCountBadge(h.selector)
	session, err := h.carts.Session(badge, c.Request.Cookies())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	reqLogger := logger.GetGinLogger(c)
	recorder := notify.NewRecorder()
	notifier := notify.Fanout{recorder, notify.NewLogNotifier(reqLogger)}

	opts := append([]ari.Option{ari.WithLogger(reqLogger)}, h.opts...)
	out := ari.NewService(h.lookup, session, notifier, opts...).Run(c.Request.Context(), raw)

	h.forwardCookies(c, session)

	resp := dto.ToAddToCartResponse(out, recorder.Notifications(), badge)
	if out.Err != nil {
		h.Failed(c, resp, out.Err)
		return
	}
	h.Success(c, resp)
}

// CartCount reads the caller's cart and reports its item count
func (h *ARIHandler) CartCount(c *gin.Context) {
	badge := notify.NewCountBadge(h.selector)
	session, err := h.carts.Session(badge, c.Request.Cookies())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	count, err := session.UpdateCartCount(c.Request.Context())
	if err != nil {
		logger.GetGinLogger(c).Warn("Failed to refresh cart count", zap.Error(err))
		h.HandleError(c, err)
		return
	}
	h.forwardCookies(c, session)

	h.Success(c, dto.CartCountResponse{
		ItemCount: count,
		Selector:  badge.Selector(),
		Text:      badge.Text(),
	})
}

// forwardCookies hands the storefront session cookies back to the caller so
// the next request continues the same cart
func (h *ARIHandler) forwardCookies(c *gin.Context, session *shopify.Client) {
	for _, ck := range session.Cookies() {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
