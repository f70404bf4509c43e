package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/royal450/DaillyEarners2/utils"
)

// ValidateJSON decodes a JSON payload into dst and runs utils.ValidateStruct.
// It expects Content-Type: application/json and rejects unknown fields.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		utils.WriteJSON(w, http.StatusUnsupportedMediaType, utils.APIResponse{Success: false, Message: "Content-Type must be application/json"})
		return http.ErrNotSupported
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	r = r.WithContext(ctx)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return err
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Validation failed", Data: err.Error()})
		return err
	}
	return nil
}
