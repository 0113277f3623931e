package utils

import (
	"net/http"
	"strings"
	"sync"

	_ "github.com/akolanti/CaptionSpeech/cmd/api/docs"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/http-swagger"
)

var once sync.Once
var router *chi.Mux

func GetNewUUID() string {
	return uuid.New().String()
}

type RouterClient struct {
	Router *chi.Mux
}

func GetChiURLParam(request *http.Request, key string) string {
	return chi.URLParam(request, key)
}

func GetRouter() RouterClient {
	once.Do(func() {
		router = chi.NewRouter()
		// panics become 500s
		router.Use(chimw.Recoverer)
		InitSwagger(router)
		//register prometheus
		router.Handle("/metrics", promhttp.Handler())
	})

	return RouterClient{Router: router}
}

func InitSwagger(r chi.Router) {
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}

// MountStatic serves the files of dir under prefix, e.g. "/audio". Directory
// listings are not served.
func MountStatic(r chi.Router, prefix string, dir string) {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		fs.ServeHTTP(w, req)
	})
}
