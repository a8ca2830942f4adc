package bootstrap

import (
	"context"
	"errors"

	pressCommands "caucus/contexts/content/press-service/application/commands"
	auditports "caucus/contexts/endorsement/digital-audit-service/ports"
	vettingentities "caucus/contexts/endorsement/vetting-service/domain/entities"
	vettingerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
	vettingports "caucus/contexts/endorsement/vetting-service/ports"
	membershipQueries "caucus/contexts/identity/membership-service/application/queries"
)

// Cross-context adapters. Each module defines its own port types; the
// composition root is the only place that translates between them.

type vettingActorDirectory struct {
	actors membershipQueries.ActorQueries
}

func (d vettingActorDirectory) ResolveActor(ctx context.Context, memberID string) (vettingports.ActorContext, error) {
	actor, err := d.actors.ResolveActor(ctx, memberID)
	if err != nil {
		return vettingports.ActorContext{}, err
	}
	return vettingports.ActorContext{
		MemberID:          actor.MemberID,
		IsCommitteeMember: actor.IsCommitteeMember,
		IsChair:           actor.IsChair,
		IsBoardMember:     actor.IsBoardMember,
		IsNationalAdmin:   actor.IsNationalAdmin,
	}, nil
}

type auditActorDirectory struct {
	actors membershipQueries.ActorQueries
}

func (d auditActorDirectory) ResolveActor(ctx context.Context, memberID string) (auditports.ActorContext, error) {
	actor, err := d.actors.ResolveActor(ctx, memberID)
	if err != nil {
		return auditports.ActorContext{}, err
	}
	return auditports.ActorContext{
		MemberID:        actor.MemberID,
		IsChair:         actor.IsChair,
		IsNationalAdmin: actor.IsNationalAdmin,
	}, nil
}

type auditVettingDirectory struct {
	vettings vettingports.VettingRepository
}

func (d auditVettingDirectory) GetVetting(ctx context.Context, vettingID string) (auditports.VettingProjection, bool, error) {
	vetting, err := d.vettings.GetVetting(ctx, vettingID)
	if err != nil {
		if errors.Is(err, vettingerrors.ErrVettingNotFound) {
			return auditports.VettingProjection{}, false, nil
		}
		return auditports.VettingProjection{}, false, err
	}
	return auditports.VettingProjection{
		VettingID:     vetting.VettingID,
		CandidateName: vetting.CandidateName,
		State:         vetting.State,
		Office:        vetting.Office,
	}, true, nil
}

type pressPublisher struct {
	posts pressCommands.PostUseCase
}

func (p pressPublisher) PublishDraft(ctx context.Context, draft vettingentities.PressReleaseDraft) (string, error) {
	post, err := p.posts.CreateDraft(ctx, pressCommands.CreateDraftCommand{
		Title:       draft.Title,
		Slug:        draft.Slug,
		ContentHTML: draft.ContentHTML,
		Excerpt:     draft.Excerpt,
		ContentType: draft.ContentType,
		Categories:  draft.Categories,
		Tags:        draft.Tags,
	})
	if err != nil {
		return "", err
	}
	return post.PostID, nil
}

var (
	_ vettingports.ActorDirectory = vettingActorDirectory{}
	_ auditports.ActorDirectory   = auditActorDirectory{}
	_ auditports.VettingDirectory = auditVettingDirectory{}
	_ vettingports.PressPublisher = pressPublisher{}
)
