package handlers

import (
	"net/http"

	"github.com/EO-DataHub/eodhp-resource-services/api/services"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/gorilla/mux"
)

// Register adds every API route to r. Handlers report failures through eh.
func Register(r *mux.Router, users *services.UserService, products *services.ProductService, eh *ErrorHandler) {

	// Users
	r.HandleFunc("/users", eh.Wrap(GetUsers(users))).Methods(http.MethodGet)
	r.HandleFunc("/users", eh.Wrap(CreateUser(users))).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", eh.Wrap(GetUser(users))).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", eh.Wrap(UpdateUser(users))).Methods(http.MethodPatch)
	r.HandleFunc("/users/{id}", eh.Wrap(DeleteUser(users))).Methods(http.MethodDelete)

	// Products
	r.HandleFunc("/products", eh.Wrap(GetProducts(products))).Methods(http.MethodGet)
	r.HandleFunc("/products", eh.Wrap(CreateProduct(products))).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", eh.Wrap(GetProduct(products))).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", eh.Wrap(UpdateProduct(products))).Methods(http.MethodPatch)
	r.HandleFunc("/products/{id}", eh.Wrap(DeleteProduct(products))).Methods(http.MethodDelete)

	r.HandleFunc("/placeholder", eh.Wrap(GetPlaceholder())).Methods(http.MethodGet)
	r.HandleFunc("/health", Health).Methods(http.MethodGet)
}

// Health reports that the process is serving requests.
func Health(w http.ResponseWriter, r *http.Request) {
	WriteResponse(w, http.StatusOK, models.NewResponse("status", "ok"))
}
