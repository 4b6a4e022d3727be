package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/anarkulova/maktab-monitor/internal/db"
	"github.com/anarkulova/maktab-monitor/internal/logger"
	"github.com/anarkulova/maktab-monitor/internal/middleware"
	"github.com/anarkulova/maktab-monitor/internal/models"
	"github.com/anarkulova/maktab-monitor/internal/services"
	"github.com/anarkulova/maktab-monitor/internal/utils"
)

// Router wires the service layer to the HTTP surface.
type Router struct {
	store       db.Store
	log         *logger.Logger
	submissions *services.SubmissionService
	dashboard   *services.DashboardService
	reports     *services.ReportService
	admin       *services.AdminService
	origins     []string
}

func NewRouter(store db.Store, gen services.TextGenerator, adminPassHash []byte, origins []string, log *logger.Logger) *Router {
	return &Router{
		store:       store,
		log:         log,
		submissions: services.NewSubmissionService(store),
		dashboard:   services.NewDashboardService(store),
		reports:     services.NewReportService(gen),
		admin:       services.NewAdminService(store, adminPassHash, middleware.SignAdminToken),
		origins:     origins,
	}
}

// Handler builds the chi handler tree.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(rt.origins))

	r.Get("/health", rt.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", rt.handleQuestions)
		r.Post("/responses", rt.handleSubmit)
		r.Post("/admin/login", rt.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.WithAuth, middleware.RequireAdmin)
			r.Get("/admin/summary", rt.handleSummary)
			r.Get("/admin/responses", rt.handleListResponses)
			r.Delete("/admin/responses", rt.handleDeleteAll)
			r.Post("/admin/reports/aggregate", rt.handleAggregateReport)
			r.Post("/admin/reports/individual", rt.handleIndividualReport)
			r.Get("/admin/export/responses.xlsx", rt.handleExportXLSX)
			r.Post("/admin/export/report.doc", rt.handleExportDoc)
		})
	})
	return r
}

func lang(r *http.Request) models.Language {
	return models.ParseLanguage(r.URL.Query().Get("lang"))
}

func (rt *Router) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		rt.log.WithError(err).Error("encode response")
	}
}

func (rt *Router) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorBadGateway:
			status = http.StatusBadGateway
		case services.ErrorTooManyRequests:
			status = http.StatusTooManyRequests
		}
	}
	rt.writeJSON(w, status, map[string]string{"error": msg})
}

// GET /health
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	l := lang(r)
	if err := rt.store.Ping(r.Context()); err != nil {
		rt.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":    false,
			"error": utils.T(string(l), "store.failed"),
		})
		return
	}
	rt.writeJSON(w, http.StatusOK, map[string]any{
		"ok":  true,
		"msg": utils.T(string(l), "health.ok"),
	})
}

// GET /api/questions?lang=
func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request) {
	l := lang(r)
	type questionView struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	out := make([]questionView, 0, len(models.SurveyQuestions))
	for i := range models.SurveyQuestions {
		q := &models.SurveyQuestions[i]
		out = append(out, questionView{ID: q.ID, Text: q.TextIn(l)})
	}
	rt.writeJSON(w, http.StatusOK, map[string]any{
		"questions": out,
		"labels":    models.ResponseLabels[l],
	})
}

// POST /api/responses?lang=
func (rt *Router) handleSubmit(w http.ResponseWriter, r *http.Request) {
	l := lang(r)
	var req struct {
		User    models.UserRegistration `json:"user"`
		Answers map[string]int          `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rt.writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	result, err := rt.submissions.Submit(r.Context(), services.SubmissionRequest{
		User:    req.User,
		Answers: req.Answers,
	}, l)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	rt.writeJSON(w, http.StatusCreated, map[string]string{
		"id":      result.ResponseID,
		"message": result.Message,
	})
}

// POST /api/admin/login?lang=
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	l := lang(r)
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rt.writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	token, err := rt.admin.Login(req.Password, l)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	rt.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GET /api/admin/summary?lang=
func (rt *Router) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := rt.dashboard.Summary(r.Context(), lang(r))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	rt.writeJSON(w, http.StatusOK, summary)
}

// GET /api/admin/responses
func (rt *Router) handleListResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := rt.store.ListResponses(r.Context())
	if err != nil {
		rt.writeError(w, err)
		return
	}
	rt.writeJSON(w, http.StatusOK, map[string]any{
		"total":     len(responses),
		"responses": responses,
	})
}

// DELETE /api/admin/responses?lang=
// The body must carry {"confirm": true}; the wipe is table-wide and
// irreversible.
func (rt *Router) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	l := lang(r)
	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rt.writeError(w, services.NewInvalidError(utils.T(string(l), "admin.confirm_required")))
		return
	}
	deleted, err := rt.admin.DeleteAllResponses(r.Context(), req.Confirm, l)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	rt.writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

// POST /api/admin/reports/aggregate?lang=
func (rt *Router) handleAggregateReport(w http.ResponseWriter, r *http.Request) {
	l := lang(r)
	responses, err := rt.store.ListResponses(r.Context())
	if err != nil {
		rt.writeError(w, err)
		return
	}
	narrative, err := rt.reports.AggregateReport(r.Context(), responses, l)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	rt.writeJSON(w, http.StatusOK, map[string]string{"narrative": narrative})
}

// POST /api/admin/reports/individual?lang=
func (rt *Router) handleIndividualReport(w http.ResponseWriter, r *http.Request) {
	l := lang(r)
	var req struct {
		ResponseID string `json:"response_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rt.writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	response, err := rt.store.GetResponse(r.Context(), req.ResponseID)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	if response == nil {
		rt.writeError(w, services.NewNotFoundError(utils.T(string(l), "response.not_found")))
		return
	}
	narrative, err := rt.reports.IndividualReport(r.Context(), response, l)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	rt.writeJSON(w, http.StatusOK, map[string]string{"narrative": narrative})
}

// GET /api/admin/export/responses.xlsx?lang=
func (rt *Router) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	responses, err := rt.store.ListResponses(r.Context())
	if err != nil {
		rt.writeError(w, err)
		return
	}
	data, err := services.ExportResponsesXLSX(responses, lang(r))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=responses.xlsx")
	_, _ = w.Write(data)
}

// POST /api/admin/export/report.doc?lang=
func (rt *Router) handleExportDoc(w http.ResponseWriter, r *http.Request) {
	l := lang(r)
	var req struct {
		Narrative string `json:"narrative"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rt.writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	if req.Narrative == "" {
		rt.writeError(w, services.NewInvalidError(utils.T(string(l), "report.no_data")))
		return
	}
	data, err := services.ExportReportDoc(req.Narrative, time.Now(), l)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/msword")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.doc", time.Now().UTC().Format("20060102")))
	_, _ = w.Write(data)
}
