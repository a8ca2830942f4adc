package queries

import (
	"context"
	"sort"
	"strings"

	"caucus/contexts/endorsement/vetting-service/domain/entities"
	"caucus/contexts/endorsement/vetting-service/domain/services"
	"caucus/contexts/endorsement/vetting-service/ports"
)

// Report is the full committee view of one vetting: the case record, its
// sections in canonical order, the votes, and a live tally preview. The
// preview never fails; a tie or empty vote set simply yields no result.
type Report struct {
	Vetting       entities.Vetting
	Sections      []entities.ReportSection
	Votes         []entities.BoardVote
	Tally         entities.Tally
	PreviewResult *entities.Decision
}

type ReportUseCase struct {
	Vettings  ports.VettingRepository
	Sections  ports.SectionRepository
	Votes     ports.VoteRepository
	TiePolicy services.TiePolicy
}

func (uc ReportUseCase) GetReport(ctx context.Context, vettingID string) (Report, error) {
	vetting, err := uc.Vettings.GetVetting(ctx, strings.TrimSpace(vettingID))
	if err != nil {
		return Report{}, err
	}
	sections, err := uc.Sections.ListSections(ctx, vetting.VettingID)
	if err != nil {
		return Report{}, err
	}
	votes, err := uc.Votes.ListVotes(ctx, vetting.VettingID)
	if err != nil {
		return Report{}, err
	}

	order := make(map[entities.SectionType]int, len(entities.SectionTypes()))
	for index, sectionType := range entities.SectionTypes() {
		order[sectionType] = index
	}
	sort.Slice(sections, func(i, j int) bool {
		return order[sections[i].SectionType] < order[sections[j].SectionType]
	})
	sort.Slice(votes, func(i, j int) bool {
		return votes[i].VoterID < votes[j].VoterID
	})

	report := Report{
		Vetting:  vetting,
		Sections: sections,
		Votes:    votes,
	}
	tally, result, err := services.ComputeTally(votes, uc.TiePolicy)
	report.Tally = tally
	if err == nil {
		report.PreviewResult = &result
	}
	return report, nil
}

func (uc ReportUseCase) ListVettings(ctx context.Context) ([]entities.Vetting, error) {
	vettings, err := uc.Vettings.ListVettings(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(vettings, func(i, j int) bool {
		if vettings[i].CreatedAt.Equal(vettings[j].CreatedAt) {
			return vettings[i].VettingID < vettings[j].VettingID
		}
		return vettings[i].CreatedAt.After(vettings[j].CreatedAt)
	})
	return vettings, nil
}
