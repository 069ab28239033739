package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"supermarket/internal/engine"
	"supermarket/internal/models"
)

var ErrDataNotReady = errors.New("dataset is still loading")

const (
	previewRows      = 5
	defaultMinRating = 3.0
	ratingStep       = 0.1
)

type Handler struct {
	data    atomic.Pointer[engine.Dataset]
	metrics *Metrics
	bins    int
}

// NewHandler accepts nil data; routes answer 503 until SetData is called.
func NewHandler(data *engine.Dataset, metrics *Metrics, bins int) *Handler {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if bins <= 0 {
		bins = engine.DefaultHistogramBins
	}
	h := &Handler{metrics: metrics, bins: bins}
	if data != nil {
		h.SetData(data)
	}
	return h
}

func (h *Handler) SetData(data *engine.Dataset) {
	if data == nil {
		return
	}
	h.data.Store(data)
	h.metrics.datasetRows.Set(float64(len(data.Records)))
}

// RegisterRoutes mounts all routes. heavy wraps the stats and export routes only.
func (h *Handler) RegisterRoutes(e *echo.Echo, heavy ...echo.MiddlewareFunc) {
	e.GET("/", h.Index)
	e.GET("/healthz", h.Health)
	e.GET("/metrics", h.metrics.Handler())

	api := e.Group("/api", h.requireData)
	api.GET("/overview", h.GetOverview)
	api.GET("/stores", h.GetStores)
	api.GET("/query", h.Query)
	api.GET("/stats/histogram", h.GetHistogram, heavy...)
	api.GET("/stats/correlation", h.GetCorrelation, heavy...)
	api.GET("/export.csv", h.ExportCSV, heavy...)
	api.GET("/export.arrow", h.ExportArrow, heavy...)
}

func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.data.Load() == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, ErrDataNotReady.Error())
		}
		return next(c)
	}
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) Health(c echo.Context) error {
	status := "ok"
	if h.data.Load() == nil {
		status = "loading"
	}
	return c.JSON(http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", ratingSpan())
}

func (h *Handler) GetOverview(c echo.Context) error {
	ds := h.data.Load()
	return c.JSON(http.StatusOK, models.Overview{
		Rows:    len(ds.Records),
		Seed:    ds.Seed,
		Cities:  engine.DistinctCities(ds.Records),
		Markets: engine.DistinctMarkets(ds.Records),
		Rating:  ratingSpan(),
		Preview: engine.Preview(ds.Records, previewRows),
	})
}

func (h *Handler) GetStores(c echo.Context) error {
	records := h.data.Load().Records
	total := len(records)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"data":   []models.StoreRecord{},
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	}

	if limit > total-offset {
		limit = total - offset
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   records[offset : offset+limit],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetHistogram(c echo.Context) error {
	bins := h.bins
	if raw := c.QueryParam("bins"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 200 {
			return echo.NewHTTPError(http.StatusBadRequest, "bins must be an integer in [1, 200]")
		}
		bins = n
	}

	hist, err := h.data.Load().Store.Histogram(bins)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hist)
}

func (h *Handler) GetCorrelation(c echo.Context) error {
	m, err := h.data.Load().Store.Correlation()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Query runs the city/rating filter. An empty result is still a 200.
func (h *Handler) Query(c echo.Context) error {
	params, err := parseQueryParams(c)
	if err != nil {
		return err
	}

	res := engine.FilterAndRank(h.data.Load().Records, params)
	h.metrics.observeQuery(len(res.Matches), res.Empty)
	if res.Empty {
		c.Logger().Debugf("query %+v: %s", params, res.Notice)
	}
	return c.JSON(http.StatusOK, res)
}

func parseQueryParams(c echo.Context) (models.QueryParams, error) {
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return models.QueryParams{}, echo.NewHTTPError(http.StatusBadRequest, "city is required")
	}

	minRating := defaultMinRating
	if raw := c.QueryParam("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.QueryParams{}, echo.NewHTTPError(http.StatusBadRequest, "min_rating must be a number").SetInternal(err)
		}
		minRating = v
	}
	if minRating < engine.MinRating || minRating > engine.MaxRating {
		return models.QueryParams{}, echo.NewHTTPError(http.StatusBadRequest, "min_rating must be within [2.5, 5.0]")
	}

	return models.QueryParams{City: city, MinRating: minRating}, nil
}

func (h *Handler) ExportCSV(c echo.Context) error {
	return sendAttachment(c, "text/csv; charset=utf-8", "stores.csv", h.data.Load().Store.WriteCSV)
}

func (h *Handler) ExportArrow(c echo.Context) error {
	return sendAttachment(c, "application/vnd.apache.arrow.stream", "stores.arrow", h.data.Load().Store.WriteIPC)
}

// sendAttachment buffers the whole body so a failed write still becomes an error status.
func sendAttachment(c echo.Context, contentType, filename string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed").SetInternal(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func ratingSpan() models.RatingSpan {
	return models.RatingSpan{
		Min:     engine.MinRating,
		Max:     engine.MaxRating,
		Step:    ratingStep,
		Default: defaultMinRating,
	}
}
