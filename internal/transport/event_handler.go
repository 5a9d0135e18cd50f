package transport

import (
	"fmt"
	"net/http"

	"talkmap/internal/domain"
	"talkmap/internal/service"
	"talkmap/internal/state"
)

// maxUploadMemory bounds the multipart form kept in memory
const maxUploadMemory = 32 << 20

type EventHandler struct {
	store  *state.EventStore
	images *service.ImageService
	mux    *http.ServeMux
}

func NewEventHandler(store *state.EventStore, images *service.ImageService) *EventHandler {
	h := &EventHandler{
		store:  store,
		images: images,
		mux:    http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *EventHandler) routes() {
	// Collection routes (matched at root of stripped prefix)
	h.mux.HandleFunc("GET /{$}", h.handleList)
	h.mux.HandleFunc("GET /all", h.handleListAll)
	h.mux.HandleFunc("POST /{$}", h.handleCreate)

	// Item routes (matched with path value)
	h.mux.HandleFunc("GET /{id}", h.handleGet)
	h.mux.HandleFunc("PUT /{id}", h.handleUpdate)
	h.mux.HandleFunc("DELETE /{id}", h.handleDelete)
	h.mux.HandleFunc("POST /{id}/images", h.handleUploadImages)
	h.mux.HandleFunc("DELETE /{id}/images", h.handleDeleteImage)
}

func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// handleList lists the events passing the active dashboard filter
// @Summary List Filtered Events
// @Description Events matching the active type selection and date window, newest first
// @Tags events
// @Produce json
// @Success 200 {object} domain.APIResponse{data=[]domain.Event}
// @Router /events [get]
func (h *EventHandler) handleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.FilteredEvents())
}

// handleListAll lists every event
// @Summary List All Events
// @Tags events
// @Produce json
// @Success 200 {object} domain.APIResponse{data=[]domain.Event}
// @Router /events/all [get]
func (h *EventHandler) handleListAll(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Events())
}

// handleGet retrieves a single event
// @Summary Get Event
// @Tags events
// @Produce json
// @Param id path string true "Event Id"
// @Success 200 {object} domain.APIResponse{data=domain.Event}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /events/{id} [get]
func (h *EventHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	event, ok := h.store.EventByID(r.PathValue("id"))
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// handleCreate creates a new event
// @Summary Create Event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body domain.EventInput true "Event Data"
// @Success 201 {object} domain.APIResponse{data=string} "Returns Event Id"
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /events [post]
func (h *EventHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.EventInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, err)
		return
	}
	id, err := h.store.CreateEvent(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, id)
}

// handleUpdate updates fields of an existing event
// @Summary Update Event
// @Description Only the provided fields change; id and createdAt are immutable
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event Id"
// @Param event body domain.EventPatch true "Fields to update"
// @Success 200 {object} domain.APIResponse{data=string}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /events/{id} [put]
func (h *EventHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch domain.EventPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}
	if err := h.store.UpdateEvent(r.Context(), r.PathValue("id"), patch); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "Updated successfully")
}

// handleDelete deletes an event
// @Summary Delete Event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event Id"
// @Success 200 {object} domain.APIResponse{data=string}
// @Router /events/{id} [delete]
func (h *EventHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "Deleted successfully")
}

// handleUploadImages uploads images and appends their URLs to the event
// @Summary Upload Event Images
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event Id"
// @Param images formData file true "Image files"
// @Success 201 {object} domain.APIResponse{data=[]string}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /events/{id}/images [post]
func (h *EventHandler) handleUploadImages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	event, ok := h.store.EventByID(id)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, domain.ErrValidation("Invalid multipart body"))
		return
	}
	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		respondError(w, domain.ErrValidation("No images provided"))
		return
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondError(w, domain.ErrValidation(fmt.Sprintf("Cannot read %s", fh.Filename)))
			return
		}
		defer f.Close()
		uploads = append(uploads, service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	urls, err := h.images.UploadImages(r.Context(), id, uploads)
	if len(urls) > 0 {
		images := append(append([]string{}, event.Images...), urls...)
		if uerr := h.store.UpdateEvent(r.Context(), id, domain.EventPatch{Images: &images}); uerr != nil && err == nil {
			err = uerr
		}
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, urls)
}

// handleDeleteImage deletes an image and removes it from the event
// @Summary Delete Event Image
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event Id"
// @Param url query string true "Image URL"
// @Success 200 {object} domain.APIResponse{data=string}
// @Failure 404 {object} domain.APIResponse{error=string} "Unknown event or image not attached to it"
// @Router /events/{id}/images [delete]
func (h *EventHandler) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		respondError(w, domain.ErrValidation("Missing url query parameter"))
		return
	}
	event, ok := h.store.EventByID(id)
	if !ok {
		respondError(w, domain.ErrNotFound)
		return
	}

	// only blobs attached to this event may be deleted through it
	images := make([]string, 0, len(event.Images))
	for _, u := range event.Images {
		if u != imageURL {
			images = append(images, u)
		}
	}
	if len(images) == len(event.Images) {
		respondError(w, fmt.Errorf("image not attached to event %s: %w", id, domain.ErrNotFound))
		return
	}

	if err := h.images.DeleteImage(r.Context(), imageURL); err != nil {
		respondError(w, err)
		return
	}
	if err := h.store.UpdateEvent(r.Context(), id, domain.EventPatch{Images: &images}); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "Deleted successfully")
}
