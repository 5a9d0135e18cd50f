package transport

import (
	"net/http"

	"talkmap/internal/domain"
	"talkmap/internal/state"
)

// ViewHandler exposes the transient dashboard state: selection, filters,
// form and the marker picked on the map.
type ViewHandler struct {
	store *state.EventStore
	mux   *http.ServeMux
}

func NewViewHandler(store *state.EventStore) *ViewHandler {
	h := &ViewHandler{
		store: store,
		mux:   http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *ViewHandler) routes() {
	h.mux.HandleFunc("GET /{$}", h.handleView)
	h.mux.HandleFunc("GET /stats", h.handleStats)

	h.mux.HandleFunc("PUT /selection/{id}", h.handleSelect)
	h.mux.HandleFunc("DELETE /selection", h.handleDeselect)

	h.mux.HandleFunc("POST /filters/types/{type}", h.handleToggleType)
	h.mux.HandleFunc("PUT /filters/types", h.handleSetTypes)
	h.mux.HandleFunc("DELETE /filters/types", h.handleClearTypes)
	h.mux.HandleFunc("PUT /filters/dates", h.handleSetDates)
	h.mux.HandleFunc("DELETE /filters/dates", h.handleClearDates)

	h.mux.HandleFunc("POST /form", h.handleOpenForm)
	h.mux.HandleFunc("DELETE /form", h.handleCloseForm)
	h.mux.HandleFunc("POST /marker", h.handleMarker)
}

func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// handleView returns the whole dashboard state
// @Summary Get Dashboard View
// @Tags view
// @Produce json
// @Success 200 {object} domain.APIResponse{data=state.View}
// @Router /view [get]
func (h *ViewHandler) handleView(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.View())
}

// handleStats summarises the filtered events
// @Summary Get Statistics
// @Tags view
// @Produce json
// @Success 200 {object} domain.APIResponse{data=domain.Stats}
// @Router /view/stats [get]
func (h *ViewHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Stats())
}

// @Summary Select Event
// @Tags view
// @Param id path string true "Event Id"
// @Success 200 {object} domain.APIResponse{data=state.View}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /view/selection/{id} [put]
func (h *ViewHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	event, ok := h.store.EventByID(r.PathValue("id"))
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	h.store.SelectEvent(&event)
	respondJSON(w, http.StatusOK, h.store.View())
}

// @Summary Clear Selection
// @Tags view
// @Success 200 {object} domain.APIResponse{data=state.View}
// @Router /view/selection [delete]
func (h *ViewHandler) handleDeselect(w http.ResponseWriter, r *http.Request) {
	h.store.SelectEvent(nil)
	respondJSON(w, http.StatusOK, h.store.View())
}

// @Summary Toggle Type Filter
// @Tags view
// @Param type path string true "Event Type"
// @Success 200 {object} domain.APIResponse{data=domain.Filter}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /view/filters/types/{type} [post]
func (h *ViewHandler) handleToggleType(w http.ResponseWriter, r *http.Request) {
	t := domain.EventType(r.PathValue("type"))
	if !t.Valid() {
		respondError(w, domain.ErrValidation("Unknown event type: "+string(t)))
		return
	}
	h.store.ToggleFilter(t)
	respondJSON(w, http.StatusOK, h.store.Filter())
}

// @Summary Replace Type Filter
// @Tags view
// @Accept json
// @Param filter body domain.TypeFilterDTO true "Types"
// @Success 200 {object} domain.APIResponse{data=domain.Filter}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /view/filters/types [put]
func (h *ViewHandler) handleSetTypes(w http.ResponseWriter, r *http.Request) {
	var dto domain.TypeFilterDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, err)
		return
	}
	if err := domain.Validate.Struct(dto); err != nil {
		respondError(w, domain.ErrValidation(err.Error()))
		return
	}
	h.store.SetFilterTypes(dto.Types)
	respondJSON(w, http.StatusOK, h.store.Filter())
}

// @Summary Clear Type Filter
// @Tags view
// @Success 200 {object} domain.APIResponse{data=domain.Filter}
// @Router /view/filters/types [delete]
func (h *ViewHandler) handleClearTypes(w http.ResponseWriter, r *http.Request) {
	h.store.ClearFilters()
	respondJSON(w, http.StatusOK, h.store.Filter())
}

// @Summary Set Date Filter
// @Tags view
// @Accept json
// @Param filter body domain.DateFilterDTO true "Date window"
// @Success 200 {object} domain.APIResponse{data=domain.Filter}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /view/filters/dates [put]
func (h *ViewHandler) handleSetDates(w http.ResponseWriter, r *http.Request) {
	var dto domain.DateFilterDTO
	if err := decodeJSON(r, &dto); err != nil {
		respondError(w, err)
		return
	}
	if err := domain.Validate.Struct(dto); err != nil {
		respondError(w, domain.ErrValidation(err.Error()))
		return
	}
	h.store.SetDateFilter(dto.From, dto.To)
	respondJSON(w, http.StatusOK, h.store.Filter())
}

// @Summary Clear Date Filter
// @Tags view
// @Success 200 {object} domain.APIResponse{data=domain.Filter}
// @Router /view/filters/dates [delete]
func (h *ViewHandler) handleClearDates(w http.ResponseWriter, r *http.Request) {
	h.store.ClearDateFilter()
	respondJSON(w, http.StatusOK, h.store.Filter())
}

// handleOpenForm opens the form on an event, or in create mode without one
// @Summary Open Form
// @Tags view
// @Accept json
// @Param form body domain.FormDTO false "Event to edit"
// @Success 200 {object} domain.APIResponse{data=state.FormState}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /view/form [post]
func (h *ViewHandler) handleOpenForm(w http.ResponseWriter, r *http.Request) {
	var dto domain.FormDTO
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &dto); err != nil {
			respondError(w, err)
			return
		}
	}
	if dto.EventID == "" {
		h.store.OpenForm(nil)
		respondJSON(w, http.StatusOK, h.store.Form())
		return
	}
	event, ok := h.store.EventByID(dto.EventID)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	h.store.OpenForm(&event)
	respondJSON(w, http.StatusOK, h.store.Form())
}

// @Summary Close Form
// @Tags view
// @Success 200 {object} domain.APIResponse{data=state.FormState}
// @Router /view/form [delete]
func (h *ViewHandler) handleCloseForm(w http.ResponseWriter, r *http.Request) {
	h.store.CloseForm()
	respondJSON(w, http.StatusOK, h.store.Form())
}

// handleMarker records a position picked on the map and opens the create form
// @Summary Set New Marker
// @Tags view
// @Accept json
// @Param marker body domain.LatLng true "Position"
// @Success 200 {object} domain.APIResponse{data=state.FormState}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /view/marker [post]
func (h *ViewHandler) handleMarker(w http.ResponseWriter, r *http.Request) {
	var pos domain.LatLng
	if err := decodeJSON(r, &pos); err != nil {
		respondError(w, err)
		return
	}
	if pos.Lat < -90 || pos.Lat > 90 || pos.Lng < -180 || pos.Lng > 180 {
		respondError(w, domain.ErrValidation("Position out of range"))
		return
	}
	h.store.SetNewMarkerPosition(pos.Lat, pos.Lng)
	respondJSON(w, http.StatusOK, h.store.Form())
}
