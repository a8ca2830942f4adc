// Package research implements the built-in heuristic researcher. It derives
// deterministic findings from the candidate's public profile so audits are
// reproducible without external accounts; a real crawler satisfies the same
// port.
package research

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"caucus/contexts/endorsement/digital-audit-service/ports"
)

var defaultPlatforms = []string{"twitter", "facebook", "news", "campaign_site"}

type HeuristicResearcher struct {
	platforms []string
}

func NewHeuristicResearcher(platforms ...string) *HeuristicResearcher {
	if len(platforms) == 0 {
		platforms = defaultPlatforms
	}
	return &HeuristicResearcher{platforms: platforms}
}

func (r *HeuristicResearcher) Platforms() []string {
	out := make([]string, len(r.platforms))
	copy(out, r.platforms)
	return out
}

func (r *HeuristicResearcher) ResearchPlatform(ctx context.Context, vetting ports.VettingProjection, platform string) (ports.PlatformFinding, error) {
	if err := ctx.Err(); err != nil {
		return ports.PlatformFinding{}, err
	}
	handle := deriveHandle(vetting.CandidateName, platform)
	score := deriveScore(vetting.VettingID, platform)
	return ports.PlatformFinding{
		EntityType: platform,
		EntityName: handle,
		TotalScore: score,
		Findings: map[string]string{
			"handle":   handle,
			"state":    vetting.State,
			"office":   vetting.Office,
			"coverage": coverageBand(score),
		},
	}, nil
}

func deriveHandle(candidateName, platform string) string {
	name := strings.ToLower(strings.TrimSpace(candidateName))
	name = strings.ReplaceAll(name, " ", ".")
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf("%s@%s", name, platform)
}

// deriveScore maps the (vetting, platform) pair onto a stable 0..100 score.
func deriveScore(vettingID, platform string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(vettingID + "/" + platform))
	return float64(h.Sum32() % 101)
}

func coverageBand(score float64) string {
	switch {
	case score >= 75:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}

var _ ports.Researcher = (*HeuristicResearcher)(nil)
