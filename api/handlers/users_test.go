package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers() []models.Record {
	return []models.Record{
		{"id": "1", "name": "Ada Lovelace", "email": "ada@example.com", "role": "admin"},
		{"id": "2", "name": "Grace Hopper", "email": "grace@example.com", "role": "user"},
	}
}

func TestGetUsers(t *testing.T) {
	api := newTestAPI(t, seedUsers(), nil)

	w := api.do(t, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)
	require.NotNil(t, env.Results)
	assert.Equal(t, 2, *env.Results)

	users := dataRecords(t, env, "users")
	require.Len(t, users, 2)
	assert.Equal(t, "1", users[0]["id"])
	assert.Equal(t, "2", users[1]["id"])
}

func TestGetUser(t *testing.T) {
	api := newTestAPI(t, seedUsers(), nil)

	w := api.do(t, http.MethodGet, "/users/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.Nil(t, env.Results)
	assert.Equal(t, "Grace Hopper", dataRecord(t, env, "user")["name"])
}

func TestGetUser_NotFound(t *testing.T) {
	api := newTestAPI(t, seedUsers(), nil)

	w := api.do(t, http.MethodGet, "/users/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", resp.Message)
	assert.Empty(t, resp.Stack)
}

func TestCreateUser(t *testing.T) {
	api := newTestAPI(t, seedUsers(), nil)

	w := api.do(t, http.MethodPost, "/users", map[string]any{"name": "Linus", "role": "user"})
	assert.Equal(t, http.StatusCreated, w.Code)

	user := dataRecord(t, decodeEnvelope(t, w), "user")
	id, ok := user.StringID()
	require.True(t, ok)
	assert.Equal(t, "/users/"+id, w.Header().Get("Location"))
	assert.Equal(t, "Linus", user["name"])

	stored, err := api.store.Load(context.Background(), "users")
	require.NoError(t, err)
	assert.Len(t, stored, 3)
	assert.Equal(t, user, stored[2])
}

func TestCreateUser_InvalidPayload(t *testing.T) {
	api := newTestAPI(t, seedUsers(), nil)

	for _, body := range []string{"", "not json", "null", `["a"]`} {
		w := api.do(t, http.MethodPost, "/users", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Invalid request payload", decodeError(t, w).Message, body)
	}

	stored, err := api.store.Load(context.Background(), "users")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestUpdateUser(t *testing.T) {
	api := newTestAPI(t, seedUsers(), nil)

	w := api.do(t, http.MethodPatch, "/users/1", map[string]any{"id": "hijack", "role": "owner"})
	assert.Equal(t, http.StatusOK, w.Code)

	user := dataRecord(t, decodeEnvelope(t, w), "user")
	assert.Equal(t, "1", user["id"])
	assert.Equal(t, "owner", user["role"])
	assert.Equal(t, "Ada Lovelace", user["name"])

	w = api.do(t, http.MethodPatch, "/users/hijack", map[string]any{"role": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser(t *testing.T) {
	api := newTestAPI(t, []models.Record{{"id": "1", "name": "Ada"}}, nil)

	w := api.do(t, http.MethodDelete, "/users/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Record{"id": "1", "name": "Ada"}, dataRecord(t, decodeEnvelope(t, w), "user"))

	stored, err := api.store.Load(context.Background(), "users")
	require.NoError(t, err)
	assert.Empty(t, stored)

	w = api.do(t, http.MethodGet, "/users/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodDelete, "/users/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
