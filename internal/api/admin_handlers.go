package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shopboxapp/shopbox-client/internal/catalog"
	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/http/response"
)

// CardForm is the add/edit form: the card fields plus image data URLs
// in slot order.
type CardForm struct {
	catalog.CardDraft
	Images []string `json:"images,omitempty"`
}

// ImageAddRequest attaches one image to a card slot.
type ImageAddRequest struct {
	Index   int    `json:"index"`
	DataURL string `json:"data_url"`
}

// LogoUploadRequest carries a logo image as a data URL.
type LogoUploadRequest struct {
	ImageData string `json:"image_data"`
}

// handleAddScreen renders the empty add-card form.
func (s *Server) handleAddScreen(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}
	response.Success(w, EditView{TenantID: chi.URLParam(r, "tenantID")}, s.logger)
}

// handleCreateCard creates a card, then uploads any attached images.
func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}

	var form CardForm
	if err := json.UnmarshalRead(r.Body, &form); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if form.Title == "" {
		response.BadRequest(w, "title is required", s.logger)
		return
	}

	id, err := s.catalog.CreateCard(r.Context(), form.CardDraft)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	for i, dataURL := range form.Images {
		if err := s.catalog.AddImage(r.Context(), id, i, dataURL); err != nil {
			s.logger.Warn("uploading card image", "card_id", id, "index", i, "error", err)
		}
	}

	response.Created(w, map[string]any{"card_id": id}, s.logger)
}

// handleEditScreen renders the edit form pre-filled with the card.
func (s *Server) handleEditScreen(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}

	cardID, ok := s.itemID(w, r)
	if !ok {
		return
	}
	card, err := s.catalog.GetCard(r.Context(), cardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, EditView{TenantID: chi.URLParam(r, "tenantID"), Card: &card}, s.logger)
}

// handleUpdateCard saves edited card fields.
func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}

	cardID, ok := s.itemID(w, r)
	if !ok {
		return
	}
	var form CardForm
	if err := json.UnmarshalRead(r.Body, &form); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	tenantID := chi.URLParam(r, "tenantID")
	if err := s.catalog.UpdateCard(r.Context(), cardID, tenantID, form.CardDraft); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]any{"card_id": cardID}, s.logger)
}

// handleDeleteCard removes a card.
func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}

	cardID, ok := s.itemID(w, r)
	if !ok {
		return
	}
	if err := s.catalog.DeleteCard(r.Context(), cardID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleAddImage attaches an image to an existing card.
func (s *Server) handleAddImage(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}

	cardID, ok := s.itemID(w, r)
	if !ok {
		return
	}
	var req ImageAddRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if req.DataURL == "" {
		response.BadRequest(w, "data_url is required", s.logger)
		return
	}

	if err := s.catalog.AddImage(r.Context(), cardID, req.Index, req.DataURL); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, map[string]any{"card_id": cardID, "index": req.Index}, s.logger)
}

// handleDeleteImage detaches an image.
func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}

	imageID, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid image id", s.logger)
		return
	}
	if err := s.catalog.DeleteImage(imageID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleGetSettings renders the shop settings form.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}

	tenantID := chi.URLParam(r, "tenantID")
	settings, err := s.catalog.GetSettings(r.Context(), tenantID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := s.store.SetShopSettings(settings); err != nil {
		s.logger.Warn("caching shop settings", "error", err)
	}
	response.Success(w, settings, s.logger)
}

// handleUpdateSettings saves the shop settings and refreshes the cache.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}

	var settings domain.ShopSettings
	if err := json.UnmarshalRead(r.Body, &settings); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	settings.BusinessID = chi.URLParam(r, "tenantID")
	if err := s.validator.Validate(settings); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.catalog.UpdateSettings(r.Context(), settings); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := s.store.SetShopSettings(settings); err != nil {
		s.logger.Warn("caching shop settings", "error", err)
	}
	response.Success(w, settings, s.logger)
}

// handleUploadLogo uploads the shop logo and returns its stored URL.
func (s *Server) handleUploadLogo(w http.ResponseWriter, r *http.Request) {
	if !s.requireOwner(w) {
		return
	}

	var req LogoUploadRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if req.ImageData == "" {
		response.BadRequest(w, "image_data is required", s.logger)
		return
	}

	logoURL, err := s.catalog.UploadLogo(r.Context(), chi.URLParam(r, "tenantID"), req.ImageData)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, map[string]string{"logo_url": logoURL}, s.logger)
}

// itemID parses the card id route parameter.
func (s *Server) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid card id", s.logger)
		return 0, false
	}
	return id, true
}
