package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"
	"restaurant-backend/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Customers    service.CustomerServiceInterface
	Tables       service.TableServiceInterface
	Dishes       service.DishServiceInterface
	SetMeals     service.SetMealServiceInterface
	SetDishes    service.SetDishServiceInterface
	Orders       service.OrderServiceInterface
	OrderDetails service.OrderDetailsServiceInterface
	Sales        service.SalesServiceInterface
}

type Handler struct {
	Services
	log *logrus.Entry
}

func NewHandler(services Services, log *logrus.Entry) *Handler {
	return &Handler{Services: services, log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	registerResource(api, "/customers", resource[domain.Customer]{
		h:     h,
		svc:   h.Customers,
		setID: func(c *domain.Customer, id int64) { c.ID = id },
	})
	registerResource(api, "/tables", resource[domain.TableInfo]{
		h:     h,
		svc:   h.Tables,
		setID: func(t *domain.TableInfo, id int64) { t.ID = id },
	})
	registerResource(api, "/dishes", resource[domain.Dish]{
		h:     h,
		svc:   h.Dishes,
		setID: func(d *domain.Dish, id int64) { d.ID = id },
	})

	api.HandleFunc("/sets/{id}/setDishes", h.getSetMealDishes).Methods(http.MethodGet)
	registerResource(api, "/sets", resource[domain.SetMeal]{
		h:     h,
		svc:   h.SetMeals,
		setID: func(s *domain.SetMeal, id int64) { s.ID = id },
		reset: func(s *domain.SetMeal) { s.SetDishes = nil },
	})

	api.HandleFunc("/orders/{id}/orderDetails", h.getOrderLines).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods(http.MethodGet)
	registerResource(api, "/orders", resource[domain.OrderInfo]{
		h:     h,
		svc:   h.Orders,
		setID: func(o *domain.OrderInfo, id int64) { o.ID = id },
		reset: func(o *domain.OrderInfo) { o.OrderDetails = nil },
	})
	registerResource(api, "/orderDetails", resource[domain.OrderDetails]{
		h:     h,
		svc:   h.OrderDetails,
		setID: func(d *domain.OrderDetails, id int64) { d.ID = id },
		reset: func(d *domain.OrderDetails) { d.Dish, d.SetMeal = nil, nil },
	})

	api.HandleFunc("/setDishes", h.listSetDishes).Methods(http.MethodGet)
	api.HandleFunc("/setDishes", h.createSetDish).Methods(http.MethodPost)
	api.HandleFunc("/setDishes/{setMealId}/{dishId}", h.getSetDish).Methods(http.MethodGet)
	api.HandleFunc("/setDishes/{setMealId}/{dishId}", h.replaceSetDish).Methods(http.MethodPut)
	api.HandleFunc("/setDishes/{setMealId}/{dishId}", h.patchSetDish).Methods(http.MethodPatch)
	api.HandleFunc("/setDishes/{setMealId}/{dishId}", h.deleteSetDish).Methods(http.MethodDelete)

	api.HandleFunc("/sales/today", h.getSalesToday).Methods(http.MethodGet)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "restaurant-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getSetMealDishes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	dishes, err := h.SetMeals.SetDishes(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(dishes))
}

func (h *Handler) getOrderLines(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	lines, err := h.Orders.Lines(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(lines))
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	png, err := h.Orders.QRCode(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) getSalesToday(w http.ResponseWriter, r *http.Request) {
	report, err := h.Sales.Today(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrMalformed):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		requestLogger(r, h.log).WithError(err).Error("request failed")
		message = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decodeBody(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", domain.ErrMalformed, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrMalformed, name)
	}
	return id, nil
}

func pageFromQuery(r *http.Request) (domain.PageRequest, error) {
	query := r.URL.Query()
	number, size := 0, 0
	var err error
	if raw := query.Get("page"); raw != "" {
		if number, err = strconv.Atoi(raw); err != nil {
			return domain.PageRequest{}, fmt.Errorf("%w: invalid page", domain.ErrMalformed)
		}
	}
	if raw := query.Get("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil {
			return domain.PageRequest{}, fmt.Errorf("%w: invalid size", domain.ErrMalformed)
		}
	}
	return domain.NewPageRequest(number, size), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
