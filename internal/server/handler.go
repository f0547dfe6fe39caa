package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/limaJavier/regatta/internal/app"
	"github.com/limaJavier/regatta/internal/cache"
	"github.com/limaJavier/regatta/internal/config"
	"github.com/limaJavier/regatta/internal/logger"
	"github.com/limaJavier/regatta/pkg/model"
	"github.com/limaJavier/regatta/pkg/report"
)

func init() {
	// Unknown request fields are malformed input
	binding.EnableDecoderDisallowUnknownFields = true
}

// ScheduleRequest carries the regatta definitions and optional overrides of the configured regatta settings
type ScheduleRequest struct {
	Settings       *config.RegattaConfig `json:"settings,omitempty"`
	TimeoutSeconds int                   `json:"timeout_seconds,omitempty"`
	Classes        []model.RawClass      `json:"classes"`
	Races          []model.RawRace       `json:"races"`
}

type ScheduleResponse struct {
	RunID        string          `json:"run_id"`
	Status       string          `json:"status"`
	Diagnostic   string          `json:"diagnostic"`
	Heats        int             `json:"heats"`
	Boats        int             `json:"boats"`
	Variables    uint64          `json:"variables"`
	Clauses      uint64          `json:"clauses"`
	DurationMs   int64           `json:"duration_ms"`
	Schedule     *model.Schedule `json:"schedule,omitempty"`
	RunningOrder []report.Row    `json:"running_order,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ScheduleHandler struct {
	service *app.Service
	cache   cache.ScheduleCache
	variant string // Strategy and backend, part of the cache key
	log     logger.Logger
}

// NewScheduleHandler creates the handler. A nil cache disables response caching.
func NewScheduleHandler(service *app.Service, responses cache.ScheduleCache, strategy, backend string) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		cache:   responses,
		variant: strategy + "/" + backend,
		log:     logger.New("server"),
	}
}

func (h *ScheduleHandler) HandleSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	var request ScheduleRequest
	if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
		respondError(c, http.StatusBadRequest, "malformed_input", err.Error())
		return
	}

	regatta, err := model.ProcessRawInput(model.RawRegattaInput{Classes: request.Classes, Races: request.Races})
	if err != nil {
		respondError(c, http.StatusBadRequest, "malformed_input", err.Error())
		return
	}
	settings, err := h.service.Settings(request.Settings, request.TimeoutSeconds)
	if err != nil {
		respondError(c, http.StatusBadRequest, "malformed_input", fmt.Sprintf("settings: %v", err))
		return
	}

	key, err := h.cacheKey(c, settings)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "encoding_error", err.Error())
		return
	}
	if h.cache != nil {
		cached, ok, err := h.cache.Get(ctx, key)
		if err != nil {
			h.log.Warnf("cache lookup failed: %v", err)
		} else if ok {
			c.Header("X-Cache", "hit")
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	run, err := h.service.Schedule(ctx, regatta, settings)
	if errors.Is(err, model.ErrMalformedInput) {
		respondError(c, http.StatusBadRequest, "malformed_input", err.Error())
		return
	} else if err != nil {
		respondError(c, http.StatusInternalServerError, "scheduling_error", err.Error())
		return
	}

	response := ScheduleResponse{
		RunID:      run.ID,
		Status:     run.Stats.Status.String(),
		Diagnostic: run.Stats.Diagnostic(),
		Heats:      run.Stats.Heats,
		Boats:      run.Stats.Boats,
		Variables:  run.Stats.Variables,
		Clauses:    run.Stats.Clauses,
		DurationMs: run.Stats.Duration.Milliseconds(),
	}
	if run.Schedule == nil {
		c.JSON(http.StatusUnprocessableEntity, response)
		return
	}
	response.Schedule = run.Schedule
	response.RunningOrder = report.Rows(run.Schedule)

	responseBytes, err := json.Marshal(response)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "encoding_error", err.Error())
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, key, responseBytes); err != nil {
			h.log.Warnf("cache store failed: %v", err)
		}
	}
	c.Data(http.StatusOK, "application/json", responseBytes)
}

// cacheKey covers the raw body, the solver variant and the resolved settings, so servers configured with different regatta defaults never share entries
func (h *ScheduleHandler) cacheKey(c *gin.Context, settings model.Settings) (string, error) {
	var body []byte
	if raw, ok := c.Get(gin.BodyBytesKey); ok {
		body, _ = raw.([]byte)
	}
	resolved, err := json.Marshal(settings)
	if err != nil {
		return "", err
	}
	return cache.Key(body, []byte(h.variant), resolved), nil
}

func respondError(c *gin.Context, status int, kind, message string) {
	c.JSON(status, ErrorResponse{Error: kind, Message: message})
}
