package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/spaolacci/murmur3"
	"net/http"
	"ripple/dal"
	"ripple/dto"
	"ripple/logic"
	"ripple/shared"
	"ripple/texts"
	"time"
)

type viewerMode int

const (
	viewerNone viewerMode = iota
	viewerOptional
	viewerRequired
)

type viewerHandler func(w http.ResponseWriter, r *http.Request, viewer *dal.Account)

type apiHandlerGroup struct {
	cfg      *shared.Config
	logger   shared.ILogger
	idb      shared.IdBuilder
	clock    shared.IClock
	txt      texts.ITexts
	metrics  logic.IMetrics
	dir      logic.IDirectory
	graph    logic.ISocialGraph
	drops    logic.IDropStore
	eng      logic.IEngagement
	threads  logic.IRippleThreads
	timeline logic.ITimeline
	profile  logic.IProfilePage
	limiter  *writeLimiter
}

func NewApiHandlerGroup(
	cfg *shared.Config,
	logger shared.ILogger,
	clock shared.IClock,
	txt texts.ITexts,
	metrics logic.IMetrics,
	dir logic.IDirectory,
	graph logic.ISocialGraph,
	drops logic.IDropStore,
	eng logic.IEngagement,
	threads logic.IRippleThreads,
	timeline logic.ITimeline,
	profile logic.IProfilePage,
) IHandlerGroup {
	res := apiHandlerGroup{
		cfg:      cfg,
		logger:   logger,
		idb:      shared.IdBuilder{Host: cfg.Host},
		clock:    clock,
		txt:      txt,
		metrics:  metrics,
		dir:      dir,
		graph:    graph,
		drops:    drops,
		eng:      eng,
		threads:  threads,
		timeline: timeline,
		profile:  profile,
		limiter:  newWriteLimiter(cfg),
	}
	return &res
}

func (hg *apiHandlerGroup) Prefix() string {
	return "/api"
}

func (hg *apiHandlerGroup) GroupDefs() []handlerDef {
	return []handlerDef{
		hg.def("GET", "/timeline", "timeline", viewerRequired, hg.getTimeline),
		hg.def("GET", "/composer", "composer", viewerRequired, hg.getComposer),
		hg.def("POST", "/drops", "create_drop", viewerRequired, hg.postDrop),
		hg.def("PUT", "/drops/{id}", "edit_drop", viewerRequired, hg.putDrop),
		hg.def("DELETE", "/drops/{id}", "delete_drop", viewerRequired, hg.deleteDrop),
		hg.def("POST", "/drops/{id}/heart", "toggle_heart", viewerRequired, hg.postHeart),
		hg.def("POST", "/drops/{id}/ripples", "create_ripple", viewerRequired, hg.postRipple),
		hg.def("DELETE", "/ripples/{id}", "delete_ripple", viewerRequired, hg.deleteRipple),
		hg.def("GET", "/profiles/{handle}", "profile", viewerOptional, hg.getProfile),
		hg.def("GET", "/profiles/{handle}/following", "following", viewerOptional, hg.getFollowing),
		hg.def("PUT", "/follows/{accountId}", "follow", viewerRequired, hg.putFollow),
		hg.def("DELETE", "/follows/{accountId}", "unfollow", viewerRequired, hg.deleteFollow),
		hg.def("GET", "/search", "search", viewerRequired, hg.getSearch),
		hg.def("PUT", "/me/handle", "set_handle", viewerRequired, hg.putHandle),
		hg.def("PUT", "/accounts/{id}", "upsert_account", viewerNone, hg.putAccount),
	}
}

// def wraps a handler with request metrics, viewer resolution and write throttling.
func (hg *apiHandlerGroup) def(method, pattern, label string, mode viewerMode, h viewerHandler) handlerDef {
	return handlerDef{method, pattern, func(w http.ResponseWriter, r *http.Request) {
		obs := hg.metrics.StartApiRequest(label)
		defer obs.Finish()
		hg.logger.Infof("%s %s", r.Method, r.URL.Path)

		viewer := viewerFrom(r.Context())
		if mode == viewerRequired && viewer == nil {
			writeServiceError(hg.logger, hg.txt, w, r, &shared.UnauthenticatedError{})
			return
		}
		if method != "GET" && viewer != nil && !hg.limiter.allow(viewer.Id, time.Now()) {
			hg.logger.Warnf("Write rate limit hit by %s: %s %s", viewer.Id, r.Method, r.URL.Path)
			writeErrorResponse(hg.logger, w, tooManyStr, http.StatusTooManyRequests)
			return
		}
		h(w, r, viewer)
	}}
}

func (hg *apiHandlerGroup) AuthMW() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return hg.authMW(next)
	}
}

// authMW checks the API key of the trusted front end, then resolves the viewer it vouches for.
func (hg *apiHandlerGroup) authMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var apiKey = r.Header.Get(apiKeyHeader)
		found := false
		for _, key := range hg.cfg.Secrets.ApiKeys {
			if apiKey != "" && apiKey == key {
				found = true
			}
		}
		if !found {
			keyPart := apiKey
			if len(apiKey) > 4 {
				keyPart = apiKey[:4] + "..."
			}
			hg.logger.Warnf("API request with missing or invalid key '%s': %s", keyPart, r.URL.Path)
			writeErrorResponse(hg.logger, w, badApiKeyStr, http.StatusUnauthorized)
			return
		}
		viewerId := r.Header.Get(viewerIdHeader)
		if viewerId == "" {
			next.ServeHTTP(w, r)
			return
		}
		viewer, err := hg.dir.ProfileById(r.Context(), viewerId)
		if err != nil {
			var nfErr *shared.NotFoundError
			if errors.As(err, &nfErr) {
				err = &shared.UnauthenticatedError{}
			}
			writeServiceError(hg.logger, hg.txt, w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), viewer)))
	})
}

// location prefers an explicit zone, then the tz query parameter, then the configured default.
func (hg *apiHandlerGroup) location(r *http.Request, explicit string) *time.Location {
	zone := explicit
	if zone == "" {
		zone = r.URL.Query().Get("tz")
	}
	return shared.ResolveLocation(zone, hg.cfg.DefaultTimeZone)
}

func (hg *apiHandlerGroup) getTimeline(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	ctx := r.Context()
	items, err := hg.timeline.BuildTimeline(ctx, viewer.Id)
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	today := shared.TodayAt(hg.clock.Now(), hg.location(r, ""))
	used, err := hg.timeline.UsedSlots(ctx, viewer.Id, today)
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	resp := dto.TimelineResp{Items: items, UsedSlots: used}
	if len(items) == 0 {
		resp.EmptyHint = hg.txt.Get("empty_timeline.txt")
	}
	writeTaggedJson(hg.logger, w, r, resp)
}

// writeTaggedJson sets an ETag derived from the body and answers 304 when the client has it.
func writeTaggedJson(logger shared.ILogger, w http.ResponseWriter, r *http.Request, resp interface{}) {
	body, err := json.Marshal(resp)
	if err != nil {
		logger.Warnf("Failed to serialize response: %v", err)
		writeErrorResponse(logger, w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	etag := fmt.Sprintf(`"%016x"`, murmur3.Sum64(body))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = fmt.Fprintln(w, string(body)); err != nil {
		logger.Warnf("Failed to write response: %v", err)
	}
}

func (hg *apiHandlerGroup) getComposer(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	state, err := hg.timeline.ComposerState(r.Context(), viewer.Id, hg.location(r, ""))
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, state)
}

func (hg *apiHandlerGroup) postDrop(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	var req dto.CreateDropReq
	if !readJson(hg.logger, w, r, &req) {
		return
	}
	slot := shared.SlotAt(hg.clock.Now(), hg.location(r, req.TimeZone))
	drop, err := hg.drops.Create(r.Context(), viewer.Id, req.Body, slot)
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonStatus(hg.logger, w, logic.DropToDto(drop), http.StatusCreated)
}

func (hg *apiHandlerGroup) putDrop(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	var req dto.EditDropReq
	if !readJson(hg.logger, w, r, &req) {
		return
	}
	drop, err := hg.drops.Edit(r.Context(), mux.Vars(r)["id"], viewer.Id, req.Body)
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, logic.DropToDto(drop))
}

func (hg *apiHandlerGroup) deleteDrop(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	if err := hg.drops.Delete(r.Context(), mux.Vars(r)["id"], viewer.Id); err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (hg *apiHandlerGroup) postHeart(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	state, err := hg.eng.Toggle(r.Context(), mux.Vars(r)["id"], viewer.Id)
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, state)
}

func (hg *apiHandlerGroup) postRipple(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	var req dto.CreateRippleReq
	if !readJson(hg.logger, w, r, &req) {
		return
	}
	view, err := hg.threads.Create(r.Context(), mux.Vars(r)["id"], viewer.Id, req.Body)
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonStatus(hg.logger, w, view, http.StatusCreated)
}

func (hg *apiHandlerGroup) deleteRipple(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	if err := hg.threads.Delete(r.Context(), mux.Vars(r)["id"], viewer.Id); err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
