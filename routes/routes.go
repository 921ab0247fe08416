package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkup/handlers"
	"linkup/middleware"
	"linkup/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(userHandler *handlers.UserHandler, postHandler *handlers.PostHandler, secret []byte) http.Handler {
	router := mux.NewRouter()
	router.Use(monitoring.InstrumentHandler)

	api := router.PathPrefix("/api").Subrouter()

	// Public user routes
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", userHandler.Register).Methods("POST")
	users.HandleFunc("/login", userHandler.Login).Methods("POST")
	users.HandleFunc("/logout", userHandler.Logout).Methods("POST")

	// Protected user routes
	usersAuth := api.PathPrefix("/users").Subrouter()
	usersAuth.Use(middleware.RequireAuth(secret))
	usersAuth.HandleFunc("/getuser", userHandler.GetUser).Methods("GET")
	usersAuth.HandleFunc("/userprofile/{id}", userHandler.UserProfile).Methods("GET")
	usersAuth.HandleFunc("/follow/{id}", userHandler.Follow).Methods("PATCH")
	usersAuth.HandleFunc("/unfollow/{id}", userHandler.Unfollow).Methods("PATCH")

	// Post routes
	posts := api.PathPrefix("/post").Subrouter()
	posts.Use(middleware.RequireAuth(secret))
	posts.HandleFunc("/create", postHandler.Create).Methods("POST")
	posts.HandleFunc("/getposts", postHandler.GetPosts).Methods("GET")
	posts.HandleFunc("/updatepost/{id}", postHandler.Update).Methods("PATCH")
	posts.HandleFunc("/deletepost/{id}", postHandler.Delete).Methods("DELETE")
	posts.HandleFunc("/like/{id}", postHandler.Like).Methods("PATCH")
	posts.HandleFunc("/unlike/{id}", postHandler.Unlike).Methods("PATCH")

	// Metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}
