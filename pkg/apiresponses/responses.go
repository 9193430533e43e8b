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
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIError is the error body returned by controller endpoints.
type APIError struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func respond(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, APIError{Code: status, Error: message})
}

// RespondNotFound sends a 404 naming the missing resource.
func RespondNotFound(c *gin.Context, resourceType, resourceName string) {
	respond(c, http.StatusNotFound, fmt.Sprintf("%s %s not found", resourceType, resourceName))
}

func RespondBadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message)
}

func RespondConflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, message)
}

// RespondInternalError logs err and sends a 500 that does not leak it.
func RespondInternalError(c *gin.Context, operation string, err error, log *zap.SugaredLogger) {
	if log != nil {
		log.Errorw("Request failed", "operation", operation, "error", err)
	}
	respond(c, http.StatusInternalServerError, "failed to "+operation)
}

// RespondStatus sends the {"status": ...} acknowledgement used by write
// endpoints.
func RespondStatus(c *gin.Context, status string) {
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func RespondTooManyRequests(c *gin.Context) {
	respond(c, http.StatusTooManyRequests, "rate limit exceeded, retry later")
}
