package server

import (
	"github.com/gorilla/mux"
	"net/http"
	"ripple/dal"
	"ripple/dto"
	"ripple/logic"
)

const cannotFollowSelfStr = "400 Cannot Follow Yourself"

func (hg *apiHandlerGroup) getProfile(w http.ResponseWriter, r *http.Request, _ *dal.Account) {
	page, err := hg.profile.Profile(r.Context(), viewerIdFrom(r.Context()), mux.Vars(r)["handle"])
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, page)
}

func (hg *apiHandlerGroup) getFollowing(w http.ResponseWriter, r *http.Request, _ *dal.Account) {
	page, err := hg.profile.Following(r.Context(), viewerIdFrom(r.Context()), mux.Vars(r)["handle"])
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, page)
}

func (hg *apiHandlerGroup) putFollow(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	targetId := mux.Vars(r)["accountId"]
	if targetId == viewer.Id {
		writeErrorResponse(hg.logger, w, cannotFollowSelfStr, http.StatusBadRequest)
		return
	}
	if err := hg.graph.Follow(r.Context(), viewer.Id, targetId); err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, dto.FollowState{AccountId: targetId, IsFollowing: true})
}

func (hg *apiHandlerGroup) deleteFollow(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	targetId := mux.Vars(r)["accountId"]
	if err := hg.graph.Unfollow(r.Context(), viewer.Id, targetId); err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, dto.FollowState{AccountId: targetId, IsFollowing: false})
}

func (hg *apiHandlerGroup) getSearch(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	res, err := hg.dir.Search(r.Context(), r.URL.Query().Get("q"), viewer.Id)
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, res)
}

func (hg *apiHandlerGroup) putHandle(w http.ResponseWriter, r *http.Request, viewer *dal.Account) {
	var req dto.SetHandleReq
	if !readJson(hg.logger, w, r, &req) {
		return
	}
	acct, err := hg.dir.SetHandle(r.Context(), viewer.Id, req.Handle)
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, logic.AccountToDto(&hg.idb, acct))
}

// putAccount is called by the identity provider on sign-in; no viewer is involved.
func (hg *apiHandlerGroup) putAccount(w http.ResponseWriter, r *http.Request, _ *dal.Account) {
	var req dto.UpsertAccountReq
	if !readJson(hg.logger, w, r, &req) {
		return
	}
	acct, err := hg.dir.UpsertAccount(r.Context(), mux.Vars(r)["id"], req.DisplayName, req.AvatarUrl)
	if err != nil {
		writeServiceError(hg.logger, hg.txt, w, r, err)
		return
	}
	writeJsonResponse(hg.logger, w, logic.AccountToDto(&hg.idb, acct))
}
