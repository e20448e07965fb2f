package httpapi

import (
	"net/http"

	"restaurant-backend/restaurant-svc/internal/domain"
)

func setDishKey(r *http.Request) (domain.SetDishKey, error) {
	setMealID, err := pathID(r, "setMealId")
	if err != nil {
		return domain.SetDishKey{}, err
	}
	dishID, err := pathID(r, "dishId")
	if err != nil {
		return domain.SetDishKey{}, err
	}
	return domain.SetDishKey{SetMealID: setMealID, DishID: dishID}, nil
}

func (h *Handler) listSetDishes(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items, err := h.SetDishes.List(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getSetDish(w http.ResponseWriter, r *http.Request) {
	key, err := setDishKey(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sd, err := h.SetDishes.Get(r.Context(), key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sd)
}

// createSetDish takes the key from the body, either as "id" or from the
// embedded setMeal and dish references.
func (h *Handler) createSetDish(w http.ResponseWriter, r *http.Request) {
	var sd domain.SetDish
	if err := decodeBody(r, &sd); err != nil {
		h.writeError(w, r, err)
		return
	}
	if sd.ID.SetMealID == 0 && sd.SetMeal != nil {
		sd.ID.SetMealID = sd.SetMeal.ID
	}
	if sd.ID.DishID == 0 && sd.Dish != nil {
		sd.ID.DishID = sd.Dish.ID
	}
	if err := h.SetDishes.Create(r.Context(), &sd); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sd)
}

func (h *Handler) replaceSetDish(w http.ResponseWriter, r *http.Request) {
	key, err := setDishKey(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var sd domain.SetDish
	if err := decodeBody(r, &sd); err != nil {
		h.writeError(w, r, err)
		return
	}
	sd.ID = key
	sd.SetMeal, sd.Dish = nil, nil
	if err := h.SetDishes.Update(r.Context(), &sd); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sd)
}

func (h *Handler) patchSetDish(w http.ResponseWriter, r *http.Request) {
	key, err := setDishKey(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	current, err := h.SetDishes.Get(r.Context(), key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	current.SetMeal, current.Dish = nil, nil
	if err := decodeBody(r, current); err != nil {
		h.writeError(w, r, err)
		return
	}
	current.ID = key
	current.SetMeal, current.Dish = nil, nil
	if err := h.SetDishes.Update(r.Context(), current); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (h *Handler) deleteSetDish(w http.ResponseWriter, r *http.Request) {
	key, err := setDishKey(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.SetDishes.Delete(r.Context(), key); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
