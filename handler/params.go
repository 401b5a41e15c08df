package handler

import (
	"net/http"
	"venue-review-api/common"
	"venue-review-api/model"
	"venue-review-api/schema"
)

// pathID reads the {id} segment. A malformed id names no resource, so it is a 404.
func pathID(r *http.Request) (int, *common.AppError) {
	v, err := schema.Validate(schema.FromPath(r, "id"), model.IDSchema)
	if err != nil {
		return 0, common.NewValidationError(http.StatusNotFound, err)
	}
	id, _ := v.Int("id")
	return id, nil
}

func photoPath(r *http.Request) (int, string, *common.AppError) {
	v, err := schema.Validate(schema.FromPath(r, "id", "photoFilename"), model.PhotoPathSchema)
	if err != nil {
		return 0, "", common.NewValidationError(http.StatusNotFound, err)
	}
	id, _ := v.Int("id")
	name, _ := v.String("photoFilename")
	return id, name, nil
}

func decodeBody(r *http.Request, s schema.Schema) (schema.Values, *common.AppError) {
	inputs, err := schema.FromJSON(r.Body)
	if err != nil {
		return nil, common.NewValidationError(http.StatusBadRequest, err)
	}
	v, err := schema.Validate(inputs, s)
	if err != nil {
		return nil, common.NewValidationError(http.StatusBadRequest, err)
	}
	return v, nil
}

// callerID returns the user resolved by RequireAuth.
func callerID(r *http.Request) (int, *common.AppError) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		return 0, common.NewAppError(http.StatusUnauthorized, "Unauthorized", nil)
	}
	return id, nil
}
