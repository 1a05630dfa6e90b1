package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/EO-DataHub/eodhp-resource-services/api/services"
	"github.com/EO-DataHub/eodhp-resource-services/models"
)

// WriteResponse writes response as JSON with the given status code.
func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most curent data
	w.Header().Set("Cache-Control", "max-age=0")

	// Conditionally set the Location header if provided
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// decodeRecord reads a request body that must hold a single JSON object.
func decodeRecord(r *http.Request) (models.Record, error) {
	var payload models.Record
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		return nil, services.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return payload, nil
}
