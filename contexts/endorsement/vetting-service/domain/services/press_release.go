package services

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"

	"caucus/contexts/endorsement/vetting-service/domain/entities"
)

// DraftPressRelease renders the draft announcement for a committed board
// decision. Pure function of its inputs; candidate-supplied strings are
// HTML-escaped before interpolation. Slugs combine the candidate-name slug, an
// 8-character vetting-id fragment, and the decision date so concurrent drafts
// for same-named candidates cannot collide.
func DraftPressRelease(
	result entities.Decision,
	vetting entities.Vetting,
	orgName string,
	decisionDate time.Time,
) entities.PressReleaseDraft {
	org := strings.TrimSpace(orgName)
	if org == "" {
		org = "The Organization"
	}
	name := html.EscapeString(strings.TrimSpace(vetting.CandidateName))
	office := html.EscapeString(strings.TrimSpace(vetting.Office))
	race := office
	if location := raceLocation(vetting); location != "" {
		race = fmt.Sprintf("%s (%s)", office, html.EscapeString(location))
	}
	date := decisionDate.UTC().Format("January 2, 2006")

	var title, body string
	switch result {
	case entities.DecisionEndorse:
		title = fmt.Sprintf("%s Endorses %s for %s", org, name, office)
		body = fmt.Sprintf(
			"<p>On %s, following a full committee review and board vote, %s proudly endorses <strong>%s</strong> in the race for %s.</p>",
			date, org, name, race,
		)
	case entities.DecisionDoNotEndorse:
		title = fmt.Sprintf("%s Declines to Endorse %s for %s", org, name, office)
		body = fmt.Sprintf(
			"<p>On %s, after a full committee review and board vote, %s has declined to endorse %s in the race for %s.</p>",
			date, org, name, race,
		)
	case entities.DecisionNoPosition:
		title = fmt.Sprintf("%s Takes No Position on %s for %s", org, name, office)
		body = fmt.Sprintf(
			"<p>On %s, following its review process, %s has decided to take no position in the race for %s involving %s.</p>",
			date, org, race, name,
		)
	default:
		title = fmt.Sprintf("%s Announces Decision on %s", org, name)
		body = fmt.Sprintf(
			"<p>On %s, %s concluded its candidate vetting process for %s in the race for %s.</p>",
			date, org, name, race,
		)
	}

	return entities.PressReleaseDraft{
		Title:       title,
		Slug:        pressReleaseSlug(vetting, decisionDate),
		ContentHTML: body,
		Excerpt:     title,
		ContentType: "press_release",
		Status:      "draft",
		Categories:  []string{"news"},
		Tags:        []string{"press-release", "endorsement"},
	}
}

func raceLocation(vetting entities.Vetting) string {
	parts := make([]string, 0, 2)
	if state := strings.TrimSpace(vetting.State); state != "" {
		parts = append(parts, state)
	}
	if district := strings.TrimSpace(vetting.District); district != "" {
		parts = append(parts, district)
	}
	return strings.Join(parts, " ")
}

func pressReleaseSlug(vetting entities.Vetting, decisionDate time.Time) string {
	fragment := strings.TrimSpace(vetting.VettingID)
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}
	parts := []string{
		slugify(vetting.CandidateName),
		fragment,
		decisionDate.UTC().Format("2006-01-02"),
	}
	joined := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			joined = append(joined, part)
		}
	}
	return strings.Join(joined, "-")
}

func slugify(value string) string {
	var builder strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
			lastDash = false
		case !lastDash:
			builder.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(builder.String(), "-")
}
