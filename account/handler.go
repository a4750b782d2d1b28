package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"
)

var errMalformedRequest = errors.New("malformed request body")

type accountRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Phone                string `json:"phone,omitempty"`
}

type validateCredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type idResponse struct {
	ID ID `json:"id"`
}

type accountResponse struct {
	ID        ID        `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

//RegisterRoutes mounts the JSON account API on router
func RegisterRoutes(router *httprouter.Router, svc Service) {
	router.Handler(http.MethodPost, "/v1/accounts", RegisterAccountHandler(svc))
	router.Handler(http.MethodGet, "/v1/accounts/:id", GetAccountHandler(svc))
	router.Handler(http.MethodPut, "/v1/accounts/:id", UpdateAccountHandler(svc))
	router.Handler(http.MethodPost, "/v1/sessions", LoginHandler(svc))
}

func RegisterAccountHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		req, err := decodeAccountRequest(r.Body)
		if err != nil {
			encodeError(errMalformedRequest, w, r)
			return
		}

		id, err := svc.CreateAccount(r.Context(), req.details())
		if err != nil {
			encodeError(err, w, r)
			return
		}

		hlog.FromRequest(r).Info().Str("account_id", string(id)).Msg("account created")
		w.Header().Set("Location", fmt.Sprintf("%s/%s", r.URL.Path, id))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(idResponse{ID: id})
	})
}

func UpdateAccountHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		req, err := decodeAccountRequest(r.Body)
		if err != nil {
			encodeError(errMalformedRequest, w, r)
			return
		}

		id := ID(httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err := svc.UpdateAccount(r.Context(), id, req.details()); err != nil {
			encodeError(err, w, r)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func GetAccountHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		id := ID(httprouter.ParamsFromContext(r.Context()).ByName("id"))

		acc, err := svc.GetAccount(r.Context(), id)
		if err != nil {
			encodeError(err, w, r)
			return
		}

		_ = json.NewEncoder(w).Encode(accountResponse{
			ID:        acc.ID,
			Username:  acc.Username,
			Email:     acc.Email,
			Phone:     acc.Phone,
			CreatedAt: acc.CreatedAt,
			UpdatedAt: acc.UpdatedAt,
		})
	})
}

func LoginHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var req validateCredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			encodeError(errMalformedRequest, w, r)
			return
		}

		id, err := svc.CheckCredentials(r.Context(), req.Username, req.Password)
		if err != nil {
			encodeError(err, w, r)
			return
		}

		_ = json.NewEncoder(w).Encode(idResponse{ID: id})
	})
}

//StatusFor maps an account error to the HTTP status reported for it
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errMalformedRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrExistingUsername), errors.Is(err, ErrExistingEmail):
		return http.StatusConflict
	case errors.Is(err, ErrPasswordMismatch), errors.Is(err, ErrPasswordTooLong):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func encodeError(err error, w http.ResponseWriter, r *http.Request) {
	code := StatusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("account operation failed")
		msg = http.StatusText(code)
	}

	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": msg,
	})
}

func decodeAccountRequest(body io.Reader) (accountRequest, error) {
	req := accountRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return accountRequest{}, err
	}
	return req, nil
}

func (req accountRequest) details() Details {
	return Details{
		Username:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Phone:                req.Phone,
	}
}
