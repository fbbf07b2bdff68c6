// Package server exposes the HTTP intake: survey submissions posted here are
// persisted and then rendered and delivered synchronously in the request
// path.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	shared "github.com/pitstopgolf/server/pkg"
	"github.com/pitstopgolf/server/pkg/types"
)

type Server struct {
	DB       shared.Database
	Renderer shared.Renderer
	Mailer   shared.Mailer
	Msgr     shared.Messenger
	Logger   *slog.Logger
}

// surveyRequest mirrors SurveyData with pointer sections so a missing
// section is distinguishable from an empty one.
type surveyRequest struct {
	Intro        *types.Intro        `json:"inicio"`
	Client       *types.Client       `json:"cliente"`
	Cart         *types.Cart         `json:"carrinho"`
	Battery      *types.Battery      `json:"bateria"`
	BatteryCheck *types.BatteryCheck `json:"verificarBateria"`
	VoltageCheck *types.VoltageCheck `json:"verificarTensao"`
	Comment      *types.Comment      `json:"comentario"`
}

func (r *surveyRequest) complete() bool {
	return r.Intro != nil && r.Client != nil && r.Cart != nil &&
		r.Battery != nil && r.BatteryCheck != nil &&
		r.VoltageCheck != nil && r.Comment != nil
}

func (r *surveyRequest) toSurvey() types.SurveyData {
	return types.SurveyData{
		Intro:        *r.Intro,
		Client:       *r.Client,
		Cart:         *r.Cart,
		Battery:      *r.Battery,
		BatteryCheck: *r.BatteryCheck,
		VoltageCheck: *r.VoltageCheck,
		Comment:      *r.Comment,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/survey", s.handleSurvey)
	return r
}

func (s *Server) handleSurvey(w http.ResponseWriter, r *http.Request) {
	var req surveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.complete() {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "Dados incompletos ou em formato inválido.",
		})
		return
	}

	survey := req.toSurvey()
	ctx := r.Context()
	log := s.Logger.With("request_id", middleware.GetReqID(ctx))

	id, err := s.DB.CreateSubmission(ctx, &types.Submission{
		Survey:      survey,
		Status:      types.StatusPending,
		SubmittedAt: time.Now(),
	})
	if err != nil {
		log.Error("Failed to save submission", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Erro interno crítico ao processar a requisição.",
		})
		return
	}
	log = log.With("submission_id", id)

	// Synchronous render+deliver: the caller gets a per-step result message.
	// Delivery failures are reported, not fatal, and nothing is attempted
	// without a rendered PDF.
	msg := "Questionário salvo com sucesso"

	artifact, err := s.Renderer.Render(ctx, &survey, id)
	if err != nil {
		log.Error("Failed to generate PDF", "error", err)
		msg += "\nMas não foi possivel gerar o PDF"
	}

	if artifact != nil {
		log.Info("PDF generated", "path", artifact.Path)

		if survey.Client.Email != "" {
			if err := s.Mailer.Send(ctx, survey.Client.Email, survey.Client.Name, artifact.Slug, artifact.Path); err != nil {
				log.Error("Failed to send email", "error", err)
				msg += "\nEmail não enviado."
			} else {
				msg += "\nEmail enviado com sucesso."
			}
		}

		if err := s.Msgr.Send(ctx, survey.Client.Phone, survey.Client.Name, artifact.Path); err != nil {
			log.Error("Failed to send WhatsApp message", "error", err)
			msg += "\nWhatsApp não enviado."
		} else {
			msg += "\nWhatsApp enviado com sucesso."
		}
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{
		"message": msg,
		"id":      id,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are gone; nothing left to do but note it.
		s.Logger.Error("Failed to encode response", "error", err)
	}
}
