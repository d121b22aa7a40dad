// Package admin contiene los DTOs de la API de administración.
package admin

// CacheStatsResponse respuesta de GET /api/admin/cache/stats.
type CacheStatsResponse struct {
	Driver        string  `json:"driver"`
	Keys          int64   `json:"keys"`
	Hits          int64   `json:"hits"`
	Misses        int64   `json:"misses"`
	HitRatio      float64 `json:"hit_ratio"`
	Invalidations int64   `json:"invalidations"`
}

// InvalidateRequest body de POST /api/admin/cache/invalidate.
type InvalidateRequest struct {
	Prefix string `json:"prefix"`
}

// InvalidateResponse cantidad de keys eliminadas.
type InvalidateResponse struct {
	Prefix  string `json:"prefix,omitempty"`
	Removed int    `json:"removed"`
}
