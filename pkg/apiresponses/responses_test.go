/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apiresponses

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondNotFound(c, "table", "airlineStats")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, c.IsAborted())
	body := decode(t, w)
	assert.Equal(t, 404, body.Code)
	assert.Equal(t, "table airlineStats not found", body.Error)
}

func TestRespondBadRequestAndConflict(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondBadRequest(c, "path is required")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, APIError{Code: 400, Error: "path is required"}, decode(t, w))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	RespondConflict(c, "version mismatch")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 409, decode(t, w).Code)
}

func TestRespondInternalError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondInternalError(c, "read fixtures", errors.New("disk gone"), zap.New(core).Sugar())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "failed to read fixtures", body.Error)
	assert.NotContains(t, w.Body.String(), "disk gone")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "disk gone", logs.All()[0].ContextMap()["error"])
}

func TestRespondInternalErrorNilLogger(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondInternalError(c, "x", errors.New("y"), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRespondStatus(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondStatus(c, "Successfully deleted path: /a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Successfully deleted path: /a"}`, w.Body.String())
}
