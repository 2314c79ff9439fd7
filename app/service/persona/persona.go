// Package persona selects the speaking role for the answer model and
// renders its prompt. The role follows the intent, not the user: staff
// questions get the workforce analyst, flight questions get the TCC
// advocate, everything else is plain conversation.
package persona

import (
	"strings"

	_ "embed"

	"airops/app/service/intent"
	"airops/app/util/textlang"

	"github.com/samber/do"
)

//go:embed analyst_prompt.txt
var analystPromptTemplate string

//go:embed advocate_prompt.txt
var advocatePromptTemplate string

//go:embed free_talk_prompt.txt
var freeTalkPromptTemplate string

type Role string

const (
	RoleAnalyst  Role = "analyst"
	RoleAdvocate Role = "advocate"
	RoleFreeTalk Role = "free_talk"
)

type Service struct{}

func New(_ *do.Injector) (*Service, error) {
	return &Service{}, nil
}

// RoleFor maps an intent onto a persona. Flight-side intents get the
// advocate; all employee and shift intents get the analyst.
func RoleFor(tag intent.Intent) Role {
	switch tag {
	case intent.FlightDelay, intent.DepEmployeeDelay, intent.AirlineStats:
		return RoleAdvocate
	case intent.FreeTalk:
		return RoleFreeTalk
	}
	return RoleAnalyst
}

// Compose renders the full answer prompt. The digest is embedded as the
// model's only permitted fact source; free talk carries no digest.
func (s *Service) Compose(message string, lang textlang.Lang, req intent.Request, digest, history string) (Role, string) {
	role := RoleFor(req.Intent)

	var template string
	switch role {
	case RoleAdvocate:
		template = advocatePromptTemplate
	case RoleFreeTalk:
		template = freeTalkPromptTemplate
	default:
		template = analystPromptTemplate
	}

	if history == "" {
		history = "(no previous turns)"
	}

	values := map[string]string{
		"lang_label": lang.Label(),
		"history":    history,
		"digest":     digest,
		"message":    message,
	}

	prompt := template
	for key, value := range values {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", value)
	}

	return role, prompt
}
