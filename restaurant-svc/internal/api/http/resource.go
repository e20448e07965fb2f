package httpapi

import (
	"context"
	"net/http"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/gorilla/mux"
)

type crudService[T any] interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// resource serves the CRUD routes of an entity addressed by a numeric id.
type resource[T any] struct {
	h     *Handler
	svc   crudService[T]
	setID func(*T, int64)
	// reset clears owned collections and embedded references of a stored
	// value before a PATCH body is applied to it.
	reset func(*T)
}

func registerResource[T any](r *mux.Router, path string, res resource[T]) {
	r.HandleFunc(path, res.list).Methods(http.MethodGet)
	r.HandleFunc(path, res.create).Methods(http.MethodPost)
	r.HandleFunc(path+"/{id}", res.get).Methods(http.MethodGet)
	r.HandleFunc(path+"/{id}", res.replace).Methods(http.MethodPut)
	r.HandleFunc(path+"/{id}", res.patch).Methods(http.MethodPatch)
	r.HandleFunc(path+"/{id}", res.delete).Methods(http.MethodDelete)
}

func (res resource[T]) list(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	items, err := res.svc.List(r.Context(), page)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (res resource[T]) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	item, err := res.svc.Get(r.Context(), id)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (res resource[T]) create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := decodeBody(r, &item); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	res.setID(&item, 0)
	if err := res.svc.Create(r.Context(), &item); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (res resource[T]) replace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	var item T
	if err := decodeBody(r, &item); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	res.setID(&item, id)
	if err := res.svc.Update(r.Context(), &item); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// patch applies the body on top of the stored value, so absent fields keep
// their current value and an explicit null clears a nullable one.
func (res resource[T]) patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	current, err := res.svc.Get(r.Context(), id)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	if res.reset != nil {
		res.reset(current)
	}
	if err := decodeBody(r, current); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	res.setID(current, id)
	if err := res.svc.Update(r.Context(), current); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (res resource[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	if err := res.svc.Delete(r.Context(), id); err != nil {
		res.h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
