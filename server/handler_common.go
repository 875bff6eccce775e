package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"ripple/dal"
	"ripple/dto"
	"ripple/shared"
	"ripple/texts"
)

const (
	apiKeyHeader      = "X-API-KEY"
	viewerIdHeader    = "X-Viewer-Id"
	metricsAuthHeader = "Authorization"
	internalErrorStr  = "500 Internal Server Error"
	badRequestStr     = "400 Invalid Request"
	notFoundStr       = "404 Not Found"
	badApiKeyStr      = "401 Missing or Invalid API Key"
	badAuthorization  = "401 Missing or Invalid Authorization"
	noViewerStr       = "401 No Signed-In Viewer"
	forbiddenStr      = "403 Not Permitted"
	tooManyStr        = "429 Too Many Requests"
	handleTakenStr    = "That username is already taken"
	maxBodyBytes      = 64 * 1024
)

// Defines a single HTTP handler (endpoint)
type handlerDef struct {
	method  string
	pattern string
	handler func(http.ResponseWriter, *http.Request)
}

// IHandlerGroup groups together multiple HTTP handler definitions.
type IHandlerGroup interface {
	Prefix() string
	GroupDefs() []handlerDef
	AuthMW() func(next http.Handler) http.Handler
}

type ctxKey int

const viewerKey ctxKey = iota

func withViewer(ctx context.Context, viewer *dal.Account) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// viewerFrom returns nil for anonymous requests.
func viewerFrom(ctx context.Context) *dal.Account {
	viewer, _ := ctx.Value(viewerKey).(*dal.Account)
	return viewer
}

func viewerIdFrom(ctx context.Context) string {
	if viewer := viewerFrom(ctx); viewer != nil {
		return viewer.Id
	}
	return ""
}

// Returns the JSON serialized object as the response body; handles errors.
func writeJsonResponse(logger shared.ILogger, w http.ResponseWriter, resp interface{}) {
	writeJsonStatus(logger, w, resp, http.StatusOK)
}

func writeJsonStatus(logger shared.ILogger, w http.ResponseWriter, resp interface{}, code int) {
	var err error
	var respJson []byte
	if respJson, err = json.Marshal(resp); err != nil {
		logger.Warnf("Failed to serialize response: %v", err)
		writeErrorResponse(logger, w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = fmt.Fprintln(w, string(respJson)); err != nil {
		logger.Warnf("Failed to write response: %v", err)
	}
}

func writeErrorResponse(logger shared.ILogger, w http.ResponseWriter, msg string, code int) {
	writeErrorResp(logger, w, dto.ErrorResp{Error: msg, Status: code})
}

func writeErrorResp(logger shared.ILogger, w http.ResponseWriter, resp dto.ErrorResp) {
	respJson, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(resp.Status)
	if _, err := fmt.Fprintln(w, string(respJson)); err != nil {
		logger.Warnf("Failed to write error response: %v", err)
	}
}

// writeServiceError maps the domain error taxonomy onto HTTP statuses.
// Anything unrecognized is a backing-store failure and is not described to the caller.
func writeServiceError(logger shared.ILogger, txt texts.ITexts, w http.ResponseWriter, r *http.Request, err error) {
	var vErr *shared.ValidationError
	var conflict *shared.SlotConflictError
	var authErr *shared.AuthorizationError
	var nfErr *shared.NotFoundError
	var taken *shared.HandleTakenError
	var noViewer *shared.UnauthenticatedError

	switch {
	case errors.As(err, &vErr):
		writeErrorResponse(logger, w, vErr.Error(), http.StatusBadRequest)
	case errors.As(err, &conflict):
		msg := txt.WithVals("slot_conflict.txt", map[string]string{"period": string(conflict.Slot.Period)})
		writeErrorResp(logger, w, dto.ErrorResp{Error: msg, Status: http.StatusConflict, Period: conflict.Slot.Period})
	case errors.As(err, &taken):
		writeErrorResponse(logger, w, handleTakenStr, http.StatusConflict)
	case errors.As(err, &authErr):
		writeErrorResponse(logger, w, forbiddenStr, http.StatusForbidden)
	case errors.As(err, &nfErr):
		writeErrorResponse(logger, w, notFoundStr, http.StatusNotFound)
	case errors.As(err, &noViewer):
		writeErrorResponse(logger, w, noViewerStr, http.StatusUnauthorized)
	default:
		logger.Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
		writeErrorResponse(logger, w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	logger.Infof("%s %s rejected: %v", r.Method, r.URL.Path, err)
}

func readBody(logger shared.ILogger, w http.ResponseWriter, r *http.Request) []byte {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		logger.Warnf("Failed to read request body: %v", err)
		writeErrorResponse(logger, w, badRequestStr, http.StatusBadRequest)
		return nil
	}
	return body
}

// readJson decodes the request body into obj; on failure it has already written a 400.
func readJson[T any](logger shared.ILogger, w http.ResponseWriter, r *http.Request, obj *T) bool {
	body := readBody(logger, w, r)
	if body == nil {
		return false
	}
	if err := json.Unmarshal(body, obj); err != nil {
		logger.Infof("Invalid JSON in %s %s: %v", r.Method, r.URL.Path, err)
		writeErrorResponse(logger, w, badRequestStr, http.StatusBadRequest)
		return false
	}
	return true
}
