// Package types holds the domain records for the Pit Stop Golf survey
// backend. Wire field names (JSON and Firestore) stay in Portuguese to match
// the documents the mobile survey app already writes.
package types

import "time"

// Status is the lifecycle state of a submission. Values are the literal
// strings stored in Firestore.
type Status string

const (
	StatusPending    Status = "pendente"
	StatusProcessing Status = "processando"
	StatusSuccess    Status = "sucesso"
	StatusError      Status = "erro"
)

// EmailStatus records the outcome of the email delivery attempt.
type EmailStatus string

const (
	EmailNotApplicable EmailStatus = "nao_aplicavel"
	EmailSuccess       EmailStatus = "sucesso"
	EmailError         EmailStatus = "erro"
)

// WhatsStatus records the outcome of the WhatsApp delivery attempt.
type WhatsStatus string

const (
	WhatsNotSent  WhatsStatus = "nao_enviado"
	WhatsSuccess  WhatsStatus = "sucesso"
	WhatsError    WhatsStatus = "erro"
	WhatsNoNumber WhatsStatus = "sem_numero"
)

// Terminal reports whether a status is a final state.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusError
}

// Intro is the survey header: who filled it in and where.
type Intro struct {
	Employee string `json:"usuario"`
	City     string `json:"cidade"`
	State    string `json:"estado"`
	Club     string `json:"clube"`
}

// Client identifies the cart owner. Phone is the dedup key across
// submissions; Email is optional.
type Client struct {
	Name  string `json:"nome"`
	Phone string `json:"fone"`
	Email string `json:"email,omitempty"`
}

// Cart describes the golf cart under inspection. Owner, when non-blank,
// references an existing customer document and suppresses cart creation.
type Cart struct {
	Brand  string `json:"marca"`
	Model  string `json:"modelo,omitempty"`
	Number string `json:"numero,omitempty"`
	Owner  string `json:"dono,omitempty"`
}

// Battery describes the installed battery set.
type Battery struct {
	Brand    string `json:"marcaBat"`
	Type     string `json:"tipo"`
	Voltage  string `json:"tensao"`
	Quantity string `json:"quantidade"`
}

// BatteryCheck is the visual verification checklist.
type BatteryCheck struct {
	Case      string `json:"caixa"`
	Screws    string `json:"parafusos"`
	Terminals string `json:"terminais"`
	Poles     string `json:"polos"`
	Level     string `json:"nivel"`
}

// VoltageCheck holds the per-battery voltage readings, as entered (strings;
// non-numeric entries render as zero in the chart).
type VoltageCheck struct {
	Readings []string `json:"tensao"`
}

// Comment is the free-text closing section.
type Comment struct {
	Comment string `json:"comentario,omitempty"`
}

// SurveyData is one complete battery-inspection survey response.
type SurveyData struct {
	Intro        Intro        `json:"inicio"`
	Client       Client       `json:"cliente"`
	Cart         Cart         `json:"carrinho"`
	Battery      Battery      `json:"bateria"`
	BatteryCheck BatteryCheck `json:"verificarBateria"`
	VoltageCheck VoltageCheck `json:"verificarTensao"`
	Comment      Comment      `json:"comentario"`
}

// Submission is a stored survey response plus its processing metadata. The
// payload is immutable; the metadata is mutated only by the pipeline, and
// status advances pendente -> processando -> {sucesso, erro}, never
// backwards.
type Submission struct {
	ID     string     `json:"id"`
	Survey SurveyData `json:"surveyData"`

	Status              Status      `json:"status"`
	SubmittedAt         time.Time   `json:"enviadoEm"`
	ProcessingStartedAt *time.Time  `json:"processadoInicioEm,omitempty"`
	ProcessingEndedAt   *time.Time  `json:"processadoFimEm,omitempty"`
	PDFGenerated        bool        `json:"pdfGerado"`
	EmailStatus         EmailStatus `json:"emailStatus,omitempty"`
	WhatsStatus         WhatsStatus `json:"whatsStatus,omitempty"`
	ErrorMessage        string      `json:"mensagemErro,omitempty"`
}

// Customer is the deduplicated owner record, keyed by exact phone match.
// Uniqueness is lookup-before-create, not a storage constraint.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Phone     string    `json:"fone"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"enviadoEm"`
}

// CartRecord is a stored cart with its owner reference.
type CartRecord struct {
	ID        string    `json:"id"`
	Brand     string    `json:"marca"`
	Model     string    `json:"modelo,omitempty"`
	Number    string    `json:"numero,omitempty"`
	Owner     string    `json:"dono"`
	CreatedAt time.Time `json:"enviadoEm"`
}

// ReportArtifact is the rendered PDF for one submission: the file on disk
// plus the normalized customer-name slug used in its filename.
type ReportArtifact struct {
	Path string
	Slug string
}
