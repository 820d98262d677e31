package validators

import (
	"net/http"

	pkgerrors "github.com/cutiefy/cutiefy-backend/pkg/errors"
	"github.com/google/uuid"
)

// OptionalUUIDQuery parses an optional uuid query parameter. An absent or
// empty parameter returns nil.
func OptionalUUIDQuery(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return &id, nil
}

// PathUUID parses a required uuid path segment.
func PathUUID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
