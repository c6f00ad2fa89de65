package tmdb

// Genre is a TMDB genre with its numeric ID.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie is a single entry from a TMDB movie list endpoint.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	GenreIDs    []int64 `json:"genre_ids"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"` // "2006-01-02"
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
}

// genreListResponse is the JSON response for /genre/movie/list.
type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// movieListResponse is the JSON response for paged movie list endpoints.
type movieListResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// apiError is a TMDB error response body.
type apiError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
