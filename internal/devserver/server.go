// Package devserver is an in-memory stand-in for the marketplace backend,
// the geocoder and the asset host, for local runs and tests.
package devserver

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Levipasha/retrend/internal/logging"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxUploadBytes = 20 << 20

// Place is an entry in the built-in gazetteer.
type Place struct {
	Name        string
	Address     models.Address
	Coordinates models.Coordinates
}

// Server holds the fake state. The zero value is not usable; call New.
type Server struct {
	mu       sync.RWMutex
	tokens   map[string]bool
	products []models.Product
	wishlist map[string][]models.Product
	assets   map[string]asset
	places   []Place

	publicURL string
	logger    logrus.FieldLogger
}

type asset struct {
	contentType string
	data        []byte
}

// Option configures a Server.
type Option func(*Server)

// WithTokens sets the bearer tokens that are accepted. With no tokens
// configured, any non-empty token is accepted.
func WithTokens(tokens ...string) Option {
	return func(s *Server) {
		for _, t := range tokens {
			s.tokens[t] = true
		}
	}
}

// WithProducts seeds the product list.
func WithProducts(products ...models.Product) Option {
	return func(s *Server) {
		s.products = append(s.products, products...)
	}
}

// WithWishlist seeds the wishlist of token.
func WithWishlist(token string, products ...models.Product) Option {
	return func(s *Server) {
		s.wishlist[token] = append(s.wishlist[token], products...)
	}
}

// WithPlaces replaces the gazetteer.
func WithPlaces(places ...Place) Option {
	return func(s *Server) {
		s.places = places
	}
}

// WithPublicURL sets the base used for hosted asset URLs.
func WithPublicURL(u string) Option {
	return func(s *Server) {
		s.publicURL = strings.TrimRight(u, "/")
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New creates a Server.
func New(opts ...Option) *Server {
	s := &Server{
		tokens:   make(map[string]bool),
		wishlist: make(map[string][]models.Product),
		assets:   make(map[string]asset),
		places:   DefaultPlaces(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrDiscard(s.logger).WithField("component", "devserver")
	return s
}

// SetPublicURL sets the base used for hosted asset URLs. Used when the
// listen address is only known after the server starts.
func (s *Server) SetPublicURL(u string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publicURL = strings.TrimRight(u, "/")
}

// Products returns a copy of the stored products.
func (s *Server) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// UploadCount returns the number of assets received.
func (s *Server) UploadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}

// Router returns the HTTP handler.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/wishlist", s.handleWishlist).Methods("GET")
	r.HandleFunc("/getProducts", s.handleGetProducts).Methods("GET")
	r.HandleFunc("/add_product", s.handleAddProduct).Methods("POST")

	r.HandleFunc("/search", s.handleSearch).Methods("GET")
	r.HandleFunc("/reverse", s.handleReverse).Methods("GET")

	r.HandleFunc("/image/upload", s.handleUpload).Methods("POST")
	r.HandleFunc("/assets/{id}", s.handleAsset).Methods("GET")

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": r.Header.Get("X-Request-ID"),
			"elapsed":    time.Since(start).String(),
		}).Info("request")
	})
}

func (s *Server) bearer(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.tokens) > 0 && !s.tokens[token] {
		return "", false
	}
	return token, true
}

func (s *Server) handleWishlist(w http.ResponseWriter, r *http.Request) {
	token, ok := s.bearer(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.mu.RLock()
	items := append([]models.Product{}, s.wishlist[token]...)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.URL.Query().Get("location"))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Product{}
	for _, p := range s.products {
		if matchesLocation(p.Address, location) {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// matchesLocation treats an empty location or the country as matching
// everything; otherwise any comma-separated part of location must appear in
// the address.
func matchesLocation(address, location string) bool {
	if location == "" || strings.EqualFold(location, "India") {
		return true
	}
	address = strings.ToLower(address)
	for _, part := range strings.Split(location, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" && strings.Contains(address, part) {
			return true
		}
	}
	return false
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.bearer(r); !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload models.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Title == "" || len(payload.UploadedFiles) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "title and uploadedFiles are required")
		return
	}

	vehicle := payload.VehicleData
	product := models.Product{
		ID:            uuid.NewString(),
		Title:         payload.Title,
		Description:   payload.Description,
		Address:       payload.Address,
		Price:         models.Price(payload.Price),
		UploadedFiles: payload.UploadedFiles,
		Image:         payload.Image,
		Name:          payload.Name,
		Category:      payload.Category,
		Subcategory:   payload.Subcategory,
		CategoryData:  payload.CategoryData,
	}
	if vehicle != (models.VehicleData{}) {
		product.VehicleData = &vehicle
	}

	s.mu.Lock()
	s.products = append(s.products, product)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, product)
}

type searchResult struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Lat         string         `json:"lat"`
	Lon         string         `json:"lon"`
	Address     models.Address `json:"address"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	cc := strings.ToLower(r.URL.Query().Get("countrycodes"))

	out := []searchResult{}
	for _, p := range s.places {
		if len(out) == limit {
			break
		}
		if cc != "" && !strings.Contains(cc, p.Address.CountryCode) {
			continue
		}
		if q == "" || !strings.Contains(strings.ToLower(p.Name+" "+placeText(p.Address)), q) {
			continue
		}
		out = append(out, searchResult{
			Name:        p.Name,
			DisplayName: p.Name + ", " + placeText(p.Address),
			Lat:         strconv.FormatFloat(p.Coordinates.Lat, 'f', -1, 64),
			Lon:         strconv.FormatFloat(p.Coordinates.Lng, 'f', -1, 64),
			Address:     p.Address,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func placeText(a models.Address) string {
	parts := []string{}
	for _, v := range []string{a.Area(), a.Locality(), a.State, a.Country} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func (s *Server) handleReverse(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err1 != nil || err2 != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unable to geocode"})
		return
	}
	if len(s.places) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"error": "Unable to geocode"})
		return
	}

	nearest := s.places[0]
	best := math.Inf(1)
	for _, p := range s.places {
		d := math.Hypot(p.Coordinates.Lat-lat, p.Coordinates.Lng-lon)
		if d < best {
			best, nearest = d, p
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"display_name": nearest.Name + ", " + placeText(nearest.Address),
		"address":      nearest.Address,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, uploadError("invalid multipart body"))
		return
	}
	if r.FormValue("upload_preset") == "" {
		writeJSON(w, http.StatusBadRequest, uploadError("Upload preset must be specified when using unsigned upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, uploadError("Missing required parameter - file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, uploadError("failed to read file"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.assets[id] = asset{contentType: contentType, data: data}
	base := s.publicURL
	s.mu.Unlock()

	if base == "" {
		base = "http://" + r.Host
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"public_id":  id,
		"bytes":      len(data),
		"secure_url": base + "/assets/" + id,
	})
}

func uploadError(msg string) map[string]interface{} {
	return map[string]interface{}{"error": map[string]string{"message": msg}}
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.RLock()
	a, ok := s.assets[id]
	s.mu.RUnlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	w.Write(a.data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
