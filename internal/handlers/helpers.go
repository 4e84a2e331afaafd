package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// Fixed user-facing messages
const (
	msgCompanyNotFound  = "해당 회사를 찾을 수 없습니다."
	msgEmptyQuery       = "검색어를 입력해주세요."
	msgTooManyYears     = "최대 5년까지만 조회 가능합니다."
	msgNoFinancialData  = "재무 데이터를 가져올 수 없습니다."
	msgResourceNotFound = "요청한 리소스를 찾을 수 없습니다."
	msgUnhealthy        = "데이터베이스에 연결할 수 없습니다."
)

// MsgInternalError is returned for recovered panics
const MsgInternalError = "서버 내부 오류가 발생했습니다."

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes the standard success envelope.
func WriteSuccess(w http.ResponseWriter, data interface{}, message string) error {
	body := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	if message != "" {
		body["message"] = message
	}
	return WriteJSON(w, http.StatusOK, body)
}

// WriteError writes the standard failure envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// WriteInternalError appends the cause to a localized prefix, e.g. "조회 중 오류가 발생했습니다: <err>".
func WriteInternalError(w http.ResponseWriter, prefix string, err error) error {
	return WriteError(w, http.StatusInternalServerError, prefix+": "+err.Error())
}

// GetLimitParam reads the "limit" query parameter.
// Missing, unparsable or non-positive values yield def; larger values are capped at max.
func GetLimitParam(r *http.Request, def, max int) int {
	limit := def
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > max {
		limit = max
	}
	return limit
}

// GetQueryOr returns the trimmed query parameter or def when it is absent or blank.
func GetQueryOr(r *http.Request, name, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(name)); v != "" {
		return v
	}
	return def
}

// SplitList splits a comma separated parameter, trimming entries and dropping blanks.
// Order is preserved.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
