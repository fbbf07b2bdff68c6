package firestore

import (
	"time"

	"github.com/pitstopgolf/server/pkg/types"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get bool from map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Helper to safely get time from map (handles time.Time from Firestore)
func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

func getTimePtr(m map[string]interface{}, key string) *time.Time {
	if t := getTime(m, key); !t.IsZero() {
		return &t
	}
	return nil
}

// Helper to safely get a string slice (Firestore hands back []interface{})
func getStrings(m map[string]interface{}, key string) []string {
	if v, ok := m[key].([]string); ok {
		return v
	}
	if v, ok := m[key].([]interface{}); ok {
		out := make([]string, len(v))
		for i, s := range v {
			if str, ok := s.(string); ok {
				out[i] = str
			}
		}
		return out
	}
	return nil
}

func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return map[string]interface{}{}
}

// --- Submission Converters ---

func surveyToFirestore(s *types.SurveyData) map[string]interface{} {
	return map[string]interface{}{
		"inicio": map[string]interface{}{
			"usuario": s.Intro.Employee,
			"cidade":  s.Intro.City,
			"estado":  s.Intro.State,
			"clube":   s.Intro.Club,
		},
		"cliente": map[string]interface{}{
			"nome":  s.Client.Name,
			"fone":  s.Client.Phone,
			"email": s.Client.Email,
		},
		"carrinho": map[string]interface{}{
			"marca":  s.Cart.Brand,
			"modelo": s.Cart.Model,
			"numero": s.Cart.Number,
			"dono":   s.Cart.Owner,
		},
		"bateria": map[string]interface{}{
			"marcaBat":   s.Battery.Brand,
			"tipo":       s.Battery.Type,
			"tensao":     s.Battery.Voltage,
			"quantidade": s.Battery.Quantity,
		},
		"verificarBateria": map[string]interface{}{
			"caixa":     s.BatteryCheck.Case,
			"parafusos": s.BatteryCheck.Screws,
			"terminais": s.BatteryCheck.Terminals,
			"polos":     s.BatteryCheck.Poles,
			"nivel":     s.BatteryCheck.Level,
		},
		"verificarTensao": map[string]interface{}{
			"tensao": s.VoltageCheck.Readings,
		},
		"comentario": map[string]interface{}{
			"comentario": s.Comment.Comment,
		},
	}
}

func firestoreToSurvey(m map[string]interface{}) types.SurveyData {
	inicio := getMap(m, "inicio")
	cliente := getMap(m, "cliente")
	carrinho := getMap(m, "carrinho")
	bateria := getMap(m, "bateria")
	verifBat := getMap(m, "verificarBateria")
	verifTensao := getMap(m, "verificarTensao")
	comentario := getMap(m, "comentario")

	return types.SurveyData{
		Intro: types.Intro{
			Employee: getString(inicio, "usuario"),
			City:     getString(inicio, "cidade"),
			State:    getString(inicio, "estado"),
			Club:     getString(inicio, "clube"),
		},
		Client: types.Client{
			Name:  getString(cliente, "nome"),
			Phone: getString(cliente, "fone"),
			Email: getString(cliente, "email"),
		},
		Cart: types.Cart{
			Brand:  getString(carrinho, "marca"),
			Model:  getString(carrinho, "modelo"),
			Number: getString(carrinho, "numero"),
			Owner:  getString(carrinho, "dono"),
		},
		Battery: types.Battery{
			Brand:    getString(bateria, "marcaBat"),
			Type:     getString(bateria, "tipo"),
			Voltage:  getString(bateria, "tensao"),
			Quantity: getString(bateria, "quantidade"),
		},
		BatteryCheck: types.BatteryCheck{
			Case:      getString(verifBat, "caixa"),
			Screws:    getString(verifBat, "parafusos"),
			Terminals: getString(verifBat, "terminais"),
			Poles:     getString(verifBat, "polos"),
			Level:     getString(verifBat, "nivel"),
		},
		VoltageCheck: types.VoltageCheck{
			Readings: getStrings(verifTensao, "tensao"),
		},
		Comment: types.Comment{
			Comment: getString(comentario, "comentario"),
		},
	}
}

func SubmissionToFirestore(s *types.Submission) map[string]interface{} {
	m := map[string]interface{}{
		"surveyData": surveyToFirestore(&s.Survey),
		"status":     string(s.Status),
		"enviadoEm":  s.SubmittedAt,
		"pdfGerado":  s.PDFGenerated,
	}
	if s.ProcessingStartedAt != nil {
		m["processadoInicioEm"] = *s.ProcessingStartedAt
	}
	if s.ProcessingEndedAt != nil {
		m["processadoFimEm"] = *s.ProcessingEndedAt
	}
	if s.EmailStatus != "" {
		m["emailStatus"] = string(s.EmailStatus)
	}
	if s.WhatsStatus != "" {
		m["whatsStatus"] = string(s.WhatsStatus)
	}
	if s.ErrorMessage != "" {
		m["mensagemErro"] = s.ErrorMessage
	}
	return m
}

func FirestoreToSubmission(m map[string]interface{}) *types.Submission {
	return &types.Submission{
		Survey:              firestoreToSurvey(getMap(m, "surveyData")),
		Status:              types.Status(getString(m, "status")),
		SubmittedAt:         getTime(m, "enviadoEm"),
		ProcessingStartedAt: getTimePtr(m, "processadoInicioEm"),
		ProcessingEndedAt:   getTimePtr(m, "processadoFimEm"),
		PDFGenerated:        getBool(m, "pdfGerado"),
		EmailStatus:         types.EmailStatus(getString(m, "emailStatus")),
		WhatsStatus:         types.WhatsStatus(getString(m, "whatsStatus")),
		ErrorMessage:        getString(m, "mensagemErro"),
	}
}

// --- Customer Converters ---

// Note: the document ID is never written into the body; it lives on the
// DocumentRef only.

func CustomerToFirestore(c *types.Customer) map[string]interface{} {
	m := map[string]interface{}{
		"nome":      c.Name,
		"fone":      c.Phone,
		"enviadoEm": c.CreatedAt,
	}
	if c.Email != "" {
		m["email"] = c.Email
	}
	return m
}

func FirestoreToCustomer(m map[string]interface{}) *types.Customer {
	return &types.Customer{
		Name:      getString(m, "nome"),
		Phone:     getString(m, "fone"),
		Email:     getString(m, "email"),
		CreatedAt: getTime(m, "enviadoEm"),
	}
}

// --- Cart Converters ---

func CartToFirestore(c *types.CartRecord) map[string]interface{} {
	return map[string]interface{}{
		"marca":     c.Brand,
		"modelo":    c.Model,
		"numero":    c.Number,
		"dono":      c.Owner,
		"enviadoEm": c.CreatedAt,
	}
}

func FirestoreToCart(m map[string]interface{}) *types.CartRecord {
	return &types.CartRecord{
		Brand:     getString(m, "marca"),
		Model:     getString(m, "modelo"),
		Number:    getString(m, "numero"),
		Owner:     getString(m, "dono"),
		CreatedAt: getTime(m, "enviadoEm"),
	}
}
