package handlers

import (
	"fmt"
	"net/http"

	"github.com/EO-DataHub/eodhp-resource-services/api/services"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/gorilla/mux"
)

// GetProducts lists products, filtered by the category, minPrice and
// maxPrice query parameters.
func GetProducts(svc *services.ProductService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		filter := services.ParseProductFilter(r.Context(), r.URL.Query())

		products, err := svc.List(r.Context(), filter)
		if err != nil {
			return err
		}
		WriteResponse(w, http.StatusOK, models.NewListResponse("products", products))
		return nil
	}
}

func GetProduct(svc *services.ProductService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		product, err := svc.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			return err
		}
		WriteResponse(w, http.StatusOK, models.NewResponse("product", product))
		return nil
	}
}

func CreateProduct(svc *services.ProductService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		payload, err := decodeRecord(r)
		if err != nil {
			return err
		}

		product, err := svc.Create(r.Context(), payload)
		if err != nil {
			return err
		}

		id, _ := product.IntID()
		location := fmt.Sprintf("%s/%d", r.URL.Path, id)
		WriteResponse(w, http.StatusCreated, models.NewResponse("product", product), location)
		return nil
	}
}

func UpdateProduct(svc *services.ProductService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		payload, err := decodeRecord(r)
		if err != nil {
			return err
		}

		product, err := svc.Update(r.Context(), mux.Vars(r)["id"], payload)
		if err != nil {
			return err
		}
		WriteResponse(w, http.StatusOK, models.NewResponse("product", product))
		return nil
	}
}

func DeleteProduct(svc *services.ProductService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		product, err := svc.Delete(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			return err
		}
		WriteResponse(w, http.StatusOK, models.NewResponse("product", product))
		return nil
	}
}
