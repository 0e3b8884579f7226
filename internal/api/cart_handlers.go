package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/http/response"
)

// CartAddRequest adds one card to the cart with its chosen options.
type CartAddRequest struct {
	CardID   int64  `json:"card_id"`
	Quantity int    `json:"quantity"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Package  string `json:"package"`
}

// CheckoutRequest is the order form. Cart lines are taken from the
// session, not the request.
type CheckoutRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Anonymous       bool   `json:"anonymous"`
	ReceiverName    string `json:"receiver_name"`
	ReceiverPhone   string `json:"receiver_phone"`
	TextOfPostcard  string `json:"text_of_postcard"`
	Comment         string `json:"comment"`
	Delivery        string `json:"delivery"`
	City            string `json:"city"`
	Address         string `json:"address"`
	DateOfPost      string `json:"date_of_post"`
	TimeOfPost      string `json:"time_of_post"`
	RequestAddress  bool   `json:"request_address"`
	RequestDatetime bool   `json:"request_datetime"`
}

func (s *Server) cartView(tenantID string) CartView {
	return CartView{
		TenantID: tenantID,
		Items:    s.session.CartItems(),
		Count:    s.session.CartCount(),
	}
}

// handleCart renders the cart screen.
func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.cartView(chi.URLParam(r, "tenantID")), s.logger)
}

// handleCartAdd fetches the card and adds a line to the session cart.
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req CartAddRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if req.CardID == 0 {
		response.BadRequest(w, "card_id is required", s.logger)
		return
	}

	card, err := s.catalog.GetCard(r.Context(), req.CardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	lineID := s.session.AddToCart(domain.CartItem{
		CardID:   card.ID,
		Title:    card.Title,
		Price:    card.Price,
		Quantity: req.Quantity,
		Color:    req.Color,
		Size:     req.Size,
		Package:  req.Package,
	})

	response.Created(w, map[string]any{
		"line_id": lineID,
		"cart":    s.cartView(chi.URLParam(r, "tenantID")),
	}, s.logger)
}

// handleCartRemove deletes one cart line.
func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")
	if !s.session.RemoveFromCart(lineID) {
		response.NotFound(w, "Cart line not found", s.logger)
		return
	}
	response.Success(w, s.cartView(chi.URLParam(r, "tenantID")), s.logger)
}

// handleCheckout submits the cart as an order and clears it on success.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	order := domain.Order{
		Name:            req.Name,
		Phone:           req.Phone,
		Anonymous:       req.Anonymous,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		TextOfPostcard:  req.TextOfPostcard,
		Comment:         req.Comment,
		Delivery:        req.Delivery,
		City:            req.City,
		Address:         req.Address,
		DateOfPost:      req.DateOfPost,
		TimeOfPost:      req.TimeOfPost,
		RequestAddress:  req.RequestAddress,
		RequestDatetime: req.RequestDatetime,
		Items:           s.session.CartItems(),
	}
	if err := s.validator.Validate(order); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	id, err := s.catalog.SubmitOrder(r.Context(), order)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.session.ClearCart()
	response.Created(w, map[string]any{"order_id": id}, s.logger)
}

// handleHint submits a hint-at-a-gift request.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var hint domain.Hint
	if err := json.UnmarshalRead(r.Body, &hint); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(hint); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	id, err := s.catalog.SubmitHint(r.Context(), hint)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, map[string]any{"hint_id": id}, s.logger)
}
