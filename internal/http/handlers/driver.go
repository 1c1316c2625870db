package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"service-driver/internal/apperr"
	"service-driver/internal/logx"
)

// MissingSetHeader lists requested ids that were not found by the bulk lookup.
const MissingSetHeader = "X-MISSING-SET"

// DriverHandler serves HTTP endpoints for driver resources.
type DriverHandler struct {
	logger logx.Logger
	uc     driverUsecase
}

// NewDriverHandler wires a driverUsecase into HTTP handlers.
func NewDriverHandler(logger logx.Logger, uc driverUsecase) *DriverHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DriverHandler{logger: logger, uc: uc}
}

// GetByID handles GET /api/driver/{id}.
func (h *DriverHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}

	d, err := h.uc.GetByID(r.Context(), id)
	switch {
	case err != nil:
		writeAppError(h.logger, w, r, err)
	case d == nil:
		writeAppError(h.logger, w, r, apperr.DriverNotFound(id))
	default:
		writeJSON(h.logger, w, r, http.StatusOK, modelToResponse(*d))
	}
}

// GetAll handles GET /api/driver/all.
func (h *DriverHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.GetAll(r.Context())
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, modelsToResponse(list))
}

// GetByIDs handles GET /api/driver?id=1&id=2. Ids that were not found are
// reported in X-MISSING-SET; the status is always 200.
func (h *DriverHandler) GetByIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := idsFromQuery(r, "id")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}

	list, err := h.uc.GetByIDs(r.Context(), ids)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}

	found := make(map[int64]struct{}, len(list))
	for _, d := range list {
		found[d.ID] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		w.Header().Set(MissingSetHeader, joinIDs(missing))
	}

	writeJSON(h.logger, w, r, http.StatusOK, modelsToResponse(list))
}

// Create handles POST /api/driver.
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req driverDTO
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if errs := validateDriver(req); len(errs) > 0 {
		writeAppError(h.logger, w, r, errs)
		return
	}

	created, err := h.uc.Create(r.Context(), req.toModel())
	switch {
	case err != nil:
		writeAppError(h.logger, w, r, err)
	case created == nil:
		writeError(h.logger, w, r, http.StatusBadRequest, "driver was not created")
	default:
		w.Header().Set("Location", "/api/driver/"+strconv.FormatInt(created.ID, 10))
		writeJSON(h.logger, w, r, http.StatusCreated, modelToResponse(*created))
	}
}

// Update handles PUT /api/driver/{id}.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}

	var req driverDTO
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if errs := validateDriver(req); len(errs) > 0 {
		writeAppError(h.logger, w, r, errs)
		return
	}

	updated, err := h.uc.Update(r.Context(), id, req.toModel())
	switch {
	case err != nil:
		writeAppError(h.logger, w, r, err)
	case updated == nil:
		writeAppError(h.logger, w, r, apperr.DriverNotFound(id))
	default:
		writeJSON(h.logger, w, r, http.StatusOK, modelToResponse(*updated))
	}
}

// Delete handles DELETE /api/driver/{id}. A missing driver yields 404 and
// nothing is deleted.
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}

	existing, err := h.uc.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	if existing == nil {
		writeAppError(h.logger, w, r, apperr.DriverNotFound(id))
		return
	}

	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeText(h.logger, w, r, http.StatusOK, fmt.Sprintf("Driver with ID %d successfully deleted.", id))
}
