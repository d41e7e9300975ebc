package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/formations", RequireAuth(verifier, http.HandlerFunc(handler.ListFormations)))
	mux.Handle("GET /v1/inventory", RequireAuth(verifier, http.HandlerFunc(handler.ListInventory)))
	mux.Handle("GET /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayer)))
}

func registerSquadRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/squads", RequireAuth(verifier, http.HandlerFunc(handler.CreateSquad)))
	mux.Handle("GET /v1/squads", RequireAuth(verifier, http.HandlerFunc(handler.ListSquads)))
	mux.Handle("GET /v1/squads/{squadID}", RequireAuth(verifier, http.HandlerFunc(handler.GetSquad)))
	mux.Handle("DELETE /v1/squads/{squadID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteSquad)))
	mux.Handle("PUT /v1/squads/{squadID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.UpdateLineup)))
	mux.Handle("POST /v1/squads/{squadID}/activate", RequireAuth(verifier, http.HandlerFunc(handler.ActivateSquad)))
}
