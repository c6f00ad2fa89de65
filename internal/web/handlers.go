package web

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/moodreel/go-movie-mood-recommender/internal/cache"
	"github.com/moodreel/go-movie-mood-recommender/internal/collections"
	"github.com/moodreel/go-movie-mood-recommender/internal/emotion"
	"github.com/moodreel/go-movie-mood-recommender/internal/recommend"
)

const defaultRecommendations = 5

// Handlers contains the JSON API handlers.
type Handlers struct {
	engine   *recommend.Engine
	catalog  *Catalog
	cache    *cache.Cache
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandlers creates a Handlers instance. The cache may be nil when
// caching is disabled.
func NewHandlers(engine *recommend.Engine, catalog *Catalog, responseCache *cache.Cache, log zerolog.Logger) *Handlers {
	return &Handlers{
		engine:   engine,
		catalog:  catalog,
		cache:    responseCache,
		validate: validator.New(),
		log:      log,
	}
}

type moodRequest struct {
	CurrentMood      string `json:"current_mood" validate:"required"`
	DesiredFeeling   string `json:"desired_feeling" validate:"required"`
	NRecommendations *int   `json:"n_recommendations" validate:"omitempty,lte=50"`
}

type emotionsRequest struct {
	TargetEmotions   []string `json:"target_emotions" validate:"required,min=1"`
	MinIntensity     float64  `json:"min_intensity" validate:"gte=0,lte=10"`
	MaxIntensity     float64  `json:"max_intensity" validate:"gte=0,lte=10"`
	MinComfort       float64  `json:"min_comfort" validate:"gte=0,lte=10"`
	NRecommendations *int     `json:"n_recommendations" validate:"omitempty,lte=50"`
}

type journeyRequest struct {
	StartMood string `json:"start_mood" validate:"required"`
	EndMood   string `json:"end_mood" validate:"required"`
	Steps     *int   `json:"steps" validate:"omitempty,lte=10"`
}

type movieResponse struct {
	TMDBID           int64    `json:"tmdb_id,omitempty"`
	Title            string   `json:"title"`
	Overview         string   `json:"overview,omitempty"`
	Genres           []string `json:"genres,omitempty"`
	PosterURL        string   `json:"poster_url,omitempty"`
	ReleaseYear      int      `json:"release_year,omitempty"`
	DominantEmotions []string `json:"dominant_emotions"`
	Intensity        float64  `json:"intensity_score"`
	Catharsis        float64  `json:"catharsis_score"`
	Comfort          float64  `json:"comfort_score"`
}

type matchResponse struct {
	movieResponse
	MatchScore  float64 `json:"match_score"`
	Explanation string  `json:"explanation"`
}

type recommendationsResponse struct {
	Results []matchResponse `json:"results"`
}

type journeyResponse struct {
	Steps    []matchResponse `json:"steps"`
	Complete bool            `json:"complete"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health reports liveness and catalog size (GET /health).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"catalog": h.catalog.Len(),
	})
}

// Moods lists the accepted mood, feeling and emotion labels (GET /moods).
func (h *Handlers) Moods(w http.ResponseWriter, r *http.Request) {
	emotions := make([]string, len(emotion.Categories))
	for i, c := range emotion.Categories {
		emotions[i] = string(c)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current_moods":    recommend.Moods(),
		"desired_feelings": recommend.Feelings(),
		"emotions":         emotions,
	})
}

// Movie returns one catalog entry by title (GET /movies/{title}).
func (h *Handlers) Movie(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	movie, ok := h.catalog.FindByTitle(title)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("movie %q not in catalog", title)})
		return
	}
	writeJSON(w, http.StatusOK, movieView(movie))
}

// Collections groups the catalog into mood collections (GET /collections).
func (h *Handlers) Collections(w http.ResponseWriter, r *http.Request) {
	type collectionView struct {
		Name        string   `json:"name"`
		TopEmotions []string `json:"top_emotions"`
		Movies      []string `json:"movies"`
	}
	type collectionsResponse struct {
		Collections []collectionView `json:"collections"`
		Outliers    []string         `json:"outliers"`
	}

	key := fmt.Sprintf("collections:v%d", h.catalog.Version())
	var cached collectionsResponse
	if err := h.cache.GetJSON(r.Context(), key, &cached); err == nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	built, outliers, err := collections.Build(h.catalog.Movies(), collections.DefaultConfig())
	if err != nil {
		h.log.Error().Err(err).Msg("building collections")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "building collections failed"})
		return
	}

	resp := collectionsResponse{
		Collections: make([]collectionView, 0, len(built)),
		Outliers:    make([]string, 0, len(outliers)),
	}
	for _, c := range built {
		view := collectionView{Name: c.Name, Movies: make([]string, 0, len(c.Movies))}
		for _, e := range c.TopEmotions {
			view.TopEmotions = append(view.TopEmotions, string(e))
		}
		for _, m := range c.Movies {
			view.Movies = append(view.Movies, m.Title)
		}
		resp.Collections = append(resp.Collections, view)
	}
	for _, m := range outliers {
		resp.Outliers = append(resp.Outliers, m.Title)
	}

	h.cacheSet(r.Context(), key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// RecommendMood recommends movies for a mood and desired feeling
// (POST /recommend/mood).
func (h *Handlers) RecommendMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if !h.decode(w, r, &req) {
		return
	}
	n := intOrDefault(req.NRecommendations, defaultRecommendations)

	key := fmt.Sprintf("mood:v%d:%s:%s:%d", h.catalog.Version(), req.CurrentMood, req.DesiredFeeling, n)
	var cached recommendationsResponse
	if err := h.cache.GetJSON(r.Context(), key, &cached); err == nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	results, err := h.engine.RecommendByMood(h.catalog.Movies(), req.CurrentMood, req.DesiredFeeling, n)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := recommendationsResponse{Results: matchViews(results)}
	h.cacheSet(r.Context(), key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// RecommendEmotions recommends movies matching explicit target
// emotions (POST /recommend/emotions).
func (h *Handlers) RecommendEmotions(w http.ResponseWriter, r *http.Request) {
	var req emotionsRequest
	if !h.decode(w, r, &req) {
		return
	}
	n := intOrDefault(req.NRecommendations, defaultRecommendations)

	filter := recommend.EmotionFilter{
		MinIntensity: req.MinIntensity,
		MaxIntensity: req.MaxIntensity,
		MinComfort:   req.MinComfort,
	}
	results, err := h.engine.RecommendByEmotions(h.catalog.Movies(), req.TargetEmotions, filter, n)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{Results: matchViews(results)})
}

// RecommendJourney builds a multi-movie mood journey (POST /recommend/journey).
func (h *Handlers) RecommendJourney(w http.ResponseWriter, r *http.Request) {
	var req journeyRequest
	if !h.decode(w, r, &req) {
		return
	}
	steps := intOrDefault(req.Steps, recommend.DefaultJourneySteps)

	journey, err := h.engine.MoodJourney(h.catalog.Movies(), req.StartMood, req.EndMood, steps)
	if errors.Is(err, recommend.ErrInsufficientCatalog) {
		// Partial journeys are still useful; flag them instead of
		// discarding the steps that were found.
		writeJSON(w, http.StatusUnprocessableEntity, journeyResponse{
			Steps:    matchViews(journey),
			Complete: false,
		})
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, journeyResponse{Steps: matchViews(journey), Complete: true})
}

// ReloadCatalog refreshes the in-memory catalog from the database
// (POST /catalog/reload).
func (h *Handlers) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalog.Reload(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("catalog reload failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "catalog reload failed"})
		return
	}
	h.log.Info().Int("movies", count).Uint64("version", h.catalog.Version()).Msg("catalog reloaded")
	writeJSON(w, http.StatusOK, map[string]any{
		"movies":  count,
		"version": h.catalog.Version(),
	})
}

// decode parses and validates a JSON request body. On failure it writes
// the error response and returns false.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	if err := h.validate.Struct(dest); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

// writeError maps recommendation errors onto HTTP statuses.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidPreset), errors.Is(err, recommend.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.log.Error().Err(err).Msg("recommendation failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// cacheSet stores a response best-effort; cache failures only log.
func (h *Handlers) cacheSet(ctx context.Context, key string, value any) {
	if err := h.cache.SetJSON(ctx, key, value); err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("response cache write failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Headers are already written; an encode failure has no recovery.
	_ = json.NewEncoder(w).Encode(body)
}

func matchViews(results []recommend.MatchResult) []matchResponse {
	views := make([]matchResponse, len(results))
	for i, r := range results {
		views[i] = matchResponse{
			movieResponse: movieView(r.Movie),
			MatchScore:    round2(r.MatchScore),
			Explanation:   r.Explanation,
		}
	}
	return views
}

func movieView(m *recommend.Movie) movieResponse {
	dominant := make([]string, len(m.Profile.Dominant))
	for i, c := range m.Profile.Dominant {
		dominant[i] = string(c)
	}
	return movieResponse{
		TMDBID:           m.TMDBID,
		Title:            m.Title,
		Overview:         m.Overview,
		Genres:           m.Genres,
		PosterURL:        m.PosterURL,
		ReleaseYear:      m.ReleaseYear,
		DominantEmotions: dominant,
		Intensity:        round2(m.Profile.Intensity),
		Catharsis:        round2(m.Profile.Catharsis),
		Comfort:          round2(m.Profile.Comfort),
	}
}

func intOrDefault(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
