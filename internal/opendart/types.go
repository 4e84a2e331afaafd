// Package opendart provides a client for the OpenDART (Financial Supervisory Service) disclosure API.
package opendart

import (
	"fmt"

	"github.com/ternarybob/dartview/internal/models"
)

// Status codes returned in the body of every OpenDART response
const (
	StatusOK           = "000"
	StatusUnregistered = "010"
	StatusKeyDisabled  = "011"
	StatusIPBlocked    = "012"
	StatusNoData       = "013"
	StatusRateLimited  = "020"
	StatusInvalidInput = "100"
	StatusMaintenance  = "800"
	StatusUndefined    = "900"
)

// statusMessages maps OpenDART status codes to user-facing messages
var statusMessages = map[string]string{
	StatusUnregistered: "등록되지 않은 API 키입니다.",
	StatusKeyDisabled:  "사용할 수 없는 API 키입니다.",
	StatusIPBlocked:    "접근할 수 없는 IP입니다.",
	StatusNoData:       "조회된 데이터가 없습니다.",
	StatusRateLimited:  "요청 제한을 초과했습니다.",
	StatusInvalidInput: "입력 값이 부적절합니다.",
	StatusMaintenance:  "시스템 점검 중입니다.",
	StatusUndefined:    "정의되지 않은 오류가 발생했습니다.",
}

// StatusMessage returns the message for status, or a generic message carrying the code
func StatusMessage(status string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("API 오류 (코드: %s)", status)
}

// statementResponse is the body of fnlttSinglAcnt.json
type statementResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	List    []models.LineItem `json:"list"`
}

// APIError is a non-success status reported in an OpenDART response body
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenDART API error: %s (status: %s)", e.Message, e.Status)
}

// HTTPError is a non-2xx transport response
type HTTPError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s for %s", e.StatusCode, e.Body, e.Endpoint)
}
