package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"caucus/contexts/endorsement/digital-audit-service/application/commands"
	"caucus/contexts/endorsement/digital-audit-service/application/queries"
	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
	httptransport "caucus/contexts/endorsement/digital-audit-service/transport/http"
)

type Handler struct {
	Trigger commands.TriggerUseCase
	Queries queries.AuditQueries
	Logger  *slog.Logger
}

// TriggerAuditHandler godoc
// @Summary Trigger a digital audit
// @Description Accepts the run immediately and researches platforms in the background; at most one active audit per vetting.
// @Tags digital-audit-service
// @Accept json
// @Produce json
// @Param X-Member-Id header string true "Acting member id"
// @Param vetting_id path string true "Vetting id"
// @Param request body httptransport.TriggerAuditRequest false "Force flag"
// @Success 202 {object} httptransport.TriggerAuditResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /vettings/{vetting_id}/audit [post]
func (h Handler) TriggerAuditHandler(
	ctx context.Context,
	actorID string,
	vettingID string,
	req httptransport.TriggerAuditRequest,
) (httptransport.TriggerAuditResponse, error) {
	result, err := h.Trigger.TriggerAudit(ctx, commands.TriggerAuditCommand{
		ActorID:   actorID,
		VettingID: vettingID,
		Force:     req.Force,
	})
	if err != nil {
		return httptransport.TriggerAuditResponse{}, err
	}
	return httptransport.TriggerAuditResponse{
		AuditID: result.AuditID,
		Status:  string(result.Status),
	}, nil
}

// GetLatestAuditHandler godoc
// @Summary Get the latest digital audit
// @Description Returns the most recent audit with platforms ordered by entity type then score; audit is null when none exists.
// @Tags digital-audit-service
// @Produce json
// @Param vetting_id path string true "Vetting id"
// @Success 200 {object} httptransport.AuditViewResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /vettings/{vetting_id}/audit [get]
func (h Handler) GetLatestAuditHandler(ctx context.Context, vettingID string) (httptransport.AuditViewResponse, error) {
	view, err := h.Queries.GetLatestAudit(ctx, vettingID)
	if err != nil {
		return httptransport.AuditViewResponse{}, err
	}
	platforms := make([]httptransport.PlatformResponse, 0, len(view.Platforms))
	for _, platform := range view.Platforms {
		platforms = append(platforms, mapPlatform(platform))
	}
	return httptransport.AuditViewResponse{
		Audit:     mapAudit(view.Audit),
		Platforms: platforms,
	}, nil
}

func mapAudit(audit *entities.DigitalAudit) *httptransport.AuditDetailResponse {
	if audit == nil {
		return nil
	}
	return &httptransport.AuditDetailResponse{
		AuditID:      audit.AuditID,
		VettingID:    audit.VettingID,
		Status:       string(audit.Status),
		TriggeredBy:  audit.TriggeredBy,
		ErrorMessage: audit.ErrorMessage,
		CreatedAt:    audit.CreatedAt.UTC().Format(time.RFC3339),
		CompletedAt:  timeString(audit.CompletedAt),
	}
}

func mapPlatform(platform entities.AuditPlatform) httptransport.PlatformResponse {
	return httptransport.PlatformResponse{
		PlatformID: platform.PlatformID,
		EntityType: platform.EntityType,
		EntityName: platform.EntityName,
		TotalScore: platform.TotalScore,
		Findings:   platform.Findings,
		CreatedAt:  platform.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func timeString(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.UTC().Format(time.RFC3339)
	return &formatted
}
