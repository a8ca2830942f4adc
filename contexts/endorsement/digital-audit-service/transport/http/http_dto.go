package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// AuditID names the conflicting run on duplicate triggers.
	AuditID string `json:"audit_id,omitempty"`
}

type TriggerAuditRequest struct {
	Force bool `json:"force,omitempty"`
}

type TriggerAuditResponse struct {
	AuditID string `json:"audit_id"`
	Status  string `json:"status"`
}

type PlatformResponse struct {
	PlatformID string            `json:"platform_id"`
	EntityType string            `json:"entity_type"`
	EntityName string            `json:"entity_name"`
	TotalScore float64           `json:"total_score"`
	Findings   map[string]string `json:"findings"`
	CreatedAt  string            `json:"created_at"`
}

type AuditDetailResponse struct {
	AuditID      string  `json:"audit_id"`
	VettingID    string  `json:"vetting_id"`
	Status       string  `json:"status"`
	TriggeredBy  string  `json:"triggered_by,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
	CreatedAt    string  `json:"created_at"`
	CompletedAt  *string `json:"completed_at"`
}

// AuditViewResponse is the latest audit for a vetting; Audit is null when no
// audit has ever been triggered.
type AuditViewResponse struct {
	Audit     *AuditDetailResponse `json:"audit"`
	Platforms []PlatformResponse   `json:"platforms"`
}
