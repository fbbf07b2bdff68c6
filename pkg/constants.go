package shared

const (
	ProjectID = "pitstopgolf-project" // Can be overridden by env var in main if needed

	TopicSubmissionProcessed = "topic-submission-processed"

	CollectionSubmissions = "questionario"
	CollectionCustomers   = "clientes"
	CollectionCarts       = "carrinhos"
)
