// Package web serves the HTML registration, login and profile pages.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/jimiolaniyan/useraccounts/account"
)

type Handler struct {
	svc   account.Service
	views views
}

func NewHandler(svc account.Service) (*Handler, error) {
	v, err := loadViews()
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, views: v}, nil
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/", http.RedirectHandler("/user/login", http.StatusFound))
	// httprouter can't mix static and named segments, so login and new share /user/:id.
	router.HandlerFunc(http.MethodGet, "/user/:id", h.getUser)
	router.HandlerFunc(http.MethodPost, "/user/:id", h.postUser)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	switch accountID(r) {
	case "login":
		h.render(w, r, http.StatusOK, viewLogin, page{})
	case "new":
		h.render(w, r, http.StatusOK, viewNew, page{})
	default:
		h.profile(w, r)
	}
}

func (h *Handler) postUser(w http.ResponseWriter, r *http.Request) {
	switch accountID(r) {
	case "login":
		h.login(w, r)
	case "new":
		h.register(w, r)
	default:
		h.updateProfile(w, r)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	id, err := h.svc.CheckCredentials(r.Context(), r.PostFormValue("username"), r.PostFormValue("pwd"))
	if err != nil {
		h.fail(w, r, viewLogin, page{}, err)
		return
	}

	http.Redirect(w, r, "/user/"+string(id), http.StatusSeeOther)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	id, err := h.svc.CreateAccount(r.Context(), formDetails(r))
	if err != nil {
		h.fail(w, r, viewNew, page{}, err)
		return
	}

	hlog.FromRequest(r).Info().Str("account_id", string(id)).Msg("account created")
	http.Redirect(w, r, "/user/login", http.StatusSeeOther)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.GetAccount(r.Context(), accountID(r))
	if err != nil {
		h.fail(w, r, viewUser, page{}, err)
		return
	}

	h.render(w, r, http.StatusOK, viewUser, page{Account: acc})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id := accountID(r)
	if err := h.svc.UpdateAccount(r.Context(), id, formDetails(r)); err != nil {
		acc, getErr := h.svc.GetAccount(r.Context(), id)
		if getErr != nil {
			err = getErr
		}
		h.fail(w, r, viewUser, page{Account: acc}, err)
		return
	}

	acc, err := h.svc.GetAccount(r.Context(), id)
	if err != nil {
		h.fail(w, r, viewUser, page{}, err)
		return
	}
	h.render(w, r, http.StatusOK, viewUser, page{Account: acc, Alert: alertUpdated})
}

// fail renders view with the alert for err, or the not found page for unknown accounts.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, view string, p page, err error) {
	status := account.StatusFor(err)
	log := hlog.FromRequest(r)

	switch {
	case errors.Is(err, account.ErrNotFound):
		h.render(w, r, status, viewNotFound, page{Alert: alertNotFound})
		return
	case status == http.StatusInternalServerError:
		log.Error().Err(err).Str("view", view).Msg("account operation failed")
	default:
		log.Debug().Err(err).Str("view", view).Msg("account operation rejected")
	}

	p.Alert = alertFor(err)
	h.render(w, r, status, view, p)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, view string, p page) {
	if err := h.views.render(w, status, view, p); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

//AccessLog wraps next with zerolog request logging
func AccessLog(log zerolog.Logger, next http.Handler) http.Handler {
	h := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(next)
	h = hlog.RequestIDHandler("request_id", "X-Request-Id")(h)
	return hlog.NewHandler(log)(h)
}

func formDetails(r *http.Request) account.Details {
	return account.Details{
		Username:             r.PostFormValue("username"),
		Email:                r.PostFormValue("email"),
		Password:             r.PostFormValue("pwd"),
		PasswordConfirmation: r.PostFormValue("vfypwd"),
		Phone:                r.PostFormValue("phone"),
	}
}

func accountID(r *http.Request) account.ID {
	return account.ID(httprouter.ParamsFromContext(r.Context()).ByName("id"))
}
