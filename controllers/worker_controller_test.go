package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officina-stampa/fulfillment-api/models"
)

func TestWorkerLogin(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)

	require.NoError(t, db.Create(&models.Worker{Username: "mario", AccessCode: "1234"}).Error)

	router := newTestRouter("")
	router.POST("/api/v1/worker-login", WorkerLogin)

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name:       "valid credentials",
			body:       map[string]interface{}{"username": "mario", "access_code": "1234"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong code",
			body:       map[string]interface{}{"username": "mario", "access_code": "9999"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown worker",
			body:       map[string]interface{}{"username": "luigi", "access_code": "1234"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing fields",
			body:       map[string]interface{}{"username": "mario"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/v1/worker-login", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				data := decodeEnvelope(t, w)["data"].(map[string]interface{})
				assert.Equal(t, "mario", data["username"])
				_, leaked := data["access_code"]
				assert.False(t, leaked)
			}
		})
	}
}

func TestCreateWorker_DuplicateUsernameConflicts(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)

	router := newTestRouter("auth0|admin")
	router.POST("/api/v1/workers", CreateWorker)

	body := map[string]interface{}{"username": "mario", "access_code": "1234"}

	w := performRequest(router, http.MethodPost, "/api/v1/workers", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/workers", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWorkerJSONNeverExposesAccessCode(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)

	require.NoError(t, db.Create(&models.Worker{Username: "mario", AccessCode: "1234"}).Error)

	router := newTestRouter("auth0|admin")
	router.GET("/api/v1/workers", ListWorkers)

	w := performRequest(router, http.MethodGet, "/api/v1/workers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "1234")
}
