package router

import (
	"database/sql"
	"net/http"

	handler "ownerapi/internal/owner"
	"ownerapi/internal/owner/repository"
	"ownerapi/internal/owner/service"
	"ownerapi/middleware"
	"ownerapi/socket"
)

func Setup(db *sql.DB, hub *socket.Hub) http.Handler {
	mux := http.NewServeMux()

	// Event feed
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r)
	})

	// REST API
	ownerRepo := repository.NewOwnerRepository(db)
	ownerService := service.NewOwnerService(ownerRepo, hub)
	ownerHandler := handler.NewOwnerHandler(ownerService)

	mux.HandleFunc("POST /owner/{$}", ownerHandler.CreateOwner)
	mux.HandleFunc("GET /owner/{id}", ownerHandler.GetOwner)
	mux.HandleFunc("PATCH /owner/{id}", ownerHandler.PatchOwner)
	mux.HandleFunc("DELETE /owner/{id}", ownerHandler.DeleteOwner)

	return middleware.CORSMiddleware(middleware.RequestIDMiddleware(mux))
}
