package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

type registerRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(minUsernameLength, 0)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, 0)),
		validation.Field(&r.Roles, validation.By(validRoles)),
	)
}

func (r registerRequest) input() services.RegisterInput {
	return services.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Roles:    toRoles(r.Roles),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// updateRequest carries optional fields; absent JSON keys stay nil.
type updateRequest struct {
	Username *string  `json:"username"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Roles    []string `json:"roles"`
	IsActive *bool    `json:"is_active"`
}

func (r updateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.NilOrNotEmpty, validation.Length(minUsernameLength, 0)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(minPasswordLength, 0)),
		validation.Field(&r.Roles, validation.By(validRoles)),
	)
}

func (r updateRequest) patch() models.UserPatch {
	return models.UserPatch{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Roles:    toRoles(r.Roles),
		IsActive: r.IsActive,
	}
}

// validRoles accepts nil (field absent) but not an explicit empty list.
func validRoles(value interface{}) error {
	roles, _ := value.([]string)
	if roles == nil {
		return nil
	}
	if len(roles) == 0 {
		return errors.New("must contain at least one role")
	}
	for _, r := range roles {
		if !models.Role(r).IsValid() {
			return fmt.Errorf("must be one of user, moderator, admin; got %q", r)
		}
	}
	return nil
}

func toRoles(values []string) []models.Role {
	if values == nil {
		return nil
	}
	roles := make([]models.Role, len(values))
	for i, v := range values {
		roles[i] = models.Role(v)
	}
	return roles
}

var errBadJSON = errors.New("malformed JSON body")

// decodeJSON reads one JSON object from the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: body exceeds %d bytes", errBadJSON, maxErr.Limit)
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadJSON)
		}
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return nil
}
