package handlers

import (
	"fmt"
	"net/http"

	"github.com/EO-DataHub/eodhp-resource-services/api/services"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/gorilla/mux"
)

func GetUsers(svc *services.UserService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		users, err := svc.List(r.Context())
		if err != nil {
			return err
		}
		WriteResponse(w, http.StatusOK, models.NewListResponse("users", users))
		return nil
	}
}

func GetUser(svc *services.UserService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := svc.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			return err
		}
		WriteResponse(w, http.StatusOK, models.NewResponse("user", user))
		return nil
	}
}

func CreateUser(svc *services.UserService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		payload, err := decodeRecord(r)
		if err != nil {
			return err
		}

		user, err := svc.Create(r.Context(), payload)
		if err != nil {
			return err
		}

		id, _ := user.StringID()
		location := fmt.Sprintf("%s/%s", r.URL.Path, id)
		WriteResponse(w, http.StatusCreated, models.NewResponse("user", user), location)
		return nil
	}
}

func UpdateUser(svc *services.UserService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		payload, err := decodeRecord(r)
		if err != nil {
			return err
		}

		user, err := svc.Update(r.Context(), mux.Vars(r)["id"], payload)
		if err != nil {
			return err
		}
		WriteResponse(w, http.StatusOK, models.NewResponse("user", user))
		return nil
	}
}

func DeleteUser(svc *services.UserService) AppHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := svc.Delete(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			return err
		}
		WriteResponse(w, http.StatusOK, models.NewResponse("user", user))
		return nil
	}
}
