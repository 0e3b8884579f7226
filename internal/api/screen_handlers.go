package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shopboxapp/shopbox-client/internal/catalog"
	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/errors"
	"github.com/shopboxapp/shopbox-client/internal/http/response"
)

// homeCardLimit mirrors the storefront's initial page size.
const homeCardLimit = 6

// handleHome renders the storefront for a tenant. While the channel is
// still connecting the view reports Connected=false and carries no
// cards, which the screen shows as its loading state.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	// Deep links funnel through search.
	if rawID := r.URL.Query().Get("card_id"); rawID != "" {
		http.Redirect(w, r, "/"+tenantID+"/search?card_id="+rawID, http.StatusFound)
		return
	}

	view := StorefrontView{
		TenantID:  tenantID,
		IsOwner:   s.session.IsOwner(),
		Theme:     s.session.Theme(),
		Connected: s.session.Connected(),
		CartCount: s.session.CartCount(),
		Cards:     []domain.Card{},
	}

	if settings, ok := s.store.ShopSettings(); ok {
		view.Shop = &settings
	}

	if !view.Connected {
		response.Success(w, view, s.logger)
		return
	}

	cards, err := s.catalog.FilterCards(r.Context(), catalog.Query{
		Limit: homeCardLimit,
		Sort:  domain.SortByViews,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	view.Cards = cards

	if view.Shop == nil {
		settings, err := s.catalog.GetSettings(r.Context(), tenantID)
		if err != nil {
			s.logger.Warn("fetching shop settings", "tenant", tenantID, "error", err)
		} else {
			view.Shop = &settings
			if err := s.store.SetShopSettings(settings); err != nil {
				s.logger.Warn("caching shop settings", "error", err)
			}
		}
	}

	response.Success(w, view, s.logger)
}

// handleSearch renders the search screen. A card_id query parameter is
// a deep link to a single card: the card is fetched and the view's
// canonical path strips the parameter.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	view := SearchView{
		TenantID: tenantID,
		IsOwner:  s.session.IsOwner(),
		Cards:    []domain.Card{},
	}

	if rawID := r.URL.Query().Get("card_id"); rawID != "" {
		cardID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid card id", s.logger)
			return
		}
		card, err := s.catalog.GetCard(r.Context(), cardID)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		view.Card = &card
		view.CanonicalPath = "/" + tenantID + "/search"
		response.Success(w, view, s.logger)
		return
	}

	query, err := searchQuery(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	cards, err := s.catalog.FilterCards(r.Context(), query)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	view.Cards = cards
	response.Success(w, view, s.logger)
}

// searchQuery builds a card filter from search screen parameters.
func searchQuery(r *http.Request) (catalog.Query, error) {
	q := catalog.Query{Filters: map[string]any{}}
	params := r.URL.Query()

	if title := params.Get("q"); title != "" {
		q.Filters["title"] = map[string]any{"$regex": title, "$options": "i"}
	}
	if category := params.Get("category"); category != "" {
		q.Filters["category"] = category
	}
	if raw := params.Get("sort"); raw != "" {
		sort, err := strconv.Atoi(raw)
		if err != nil || sort < domain.SortByViews || sort > domain.SortByPriceDesc {
			return q, badParam("sort")
		}
		q.Sort = sort
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return q, badParam("limit")
		}
		q.Limit = limit
	}
	minRaw, maxRaw := params.Get("price_min"), params.Get("price_max")
	if minRaw != "" || maxRaw != "" {
		lo, err := parsePrice(minRaw, 0)
		if err != nil {
			return q, badParam("price_min")
		}
		hi, err := parsePrice(maxRaw, 1<<31)
		if err != nil {
			return q, badParam("price_max")
		}
		q.PriceRange = []int64{lo, hi}
	}
	if len(q.Filters) == 0 {
		q.Filters = nil
	}
	return q, nil
}

func badParam(name string) error {
	return errors.Validation("invalid " + name + " parameter")
}

func parsePrice(raw string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// handleCardRedirect turns a single-card deep link into the search
// screen with the card selected.
func (s *Server) handleCardRedirect(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	itemID := chi.URLParam(r, "itemID")
	http.Redirect(w, r, "/"+tenantID+"/search?card_id="+itemID, http.StatusFound)
}

// handleWelcomeScreen renders the onboarding screen shown outside any
// tenant context.
func (s *Server) handleWelcomeScreen(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]any{
		"screen": "welcome",
		"theme":  s.session.Theme(),
	}, s.logger)
}

// handleNotFoundScreen renders the oups screen.
func (s *Server) handleNotFoundScreen(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if r.URL.Path != "/oups" {
		status = http.StatusNotFound
	}
	response.JSON(w, status, map[string]string{"screen": "oups"}, s.logger)
}

// ThemeRequest selects the UI theme.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// handleSetTheme persists the theme choice.
func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.session.SetTheme(domain.Theme(req.Theme)); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]string{"theme": req.Theme}, s.logger)
}

// handleTap resolves a tap on one of the fixed screen controls. The
// request blocks until the debounce window settles: the tap that
// completes a double pair answers "double" right away, a lone tap
// answers "single" once the window elapses, and a tap later consumed
// by its pair answers 202 "superseded".
func (s *Server) handleTap(w http.ResponseWriter, r *http.Request) {
	control := r.FormValue("control")
	if control == "" {
		response.BadRequest(w, "Missing control id", s.logger)
		return
	}

	resolved := make(chan string, 1)
	s.session.Tap(control,
		func() { resolved <- "single" },
		func() { resolved <- "double" },
	)

	settle := time.NewTimer(s.session.TapWindow() * 2)
	defer settle.Stop()

	select {
	case action := <-resolved:
		response.Success(w, TapResult{Control: control, Action: action}, s.logger)
	case <-settle.C:
		response.JSON(w, http.StatusAccepted, TapResult{Control: control, Action: "superseded"}, s.logger)
	case <-r.Context().Done():
	}
}
