package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/vaporvista/storefront-backend/pkg/errors"
	"github.com/vaporvista/storefront-backend/pkg/logger"
	"github.com/vaporvista/storefront-backend/pkg/types"
)

// WriteJSON writes a success envelope with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.SuccessEnvelope{Data: data})
}

// WriteError maps a coded error onto the HTTP surface. Unrecognized
// errors are treated as internal and never leak their message.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	coded := pkgerrors.As(err)

	code := pkgerrors.CodeInternal
	if coded != nil {
		code = coded.Code()
	}

	meta := pkgerrors.MetadataFor(code)

	apiErr := types.APIError{
		Code:    string(code),
		Message: meta.PublicMessage,
	}
	if coded != nil && meta.DetailsAllowed {
		if msg := coded.Message(); msg != "" {
			apiErr.Message = msg
		}
		apiErr.Details = coded.Details()
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code":  string(code),
			"http_status": meta.HTTPStatus,
		})
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.error")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(types.ErrorEnvelope{Error: apiErr})
}
