package region

import (
	"fmt"
	"os"
	"strings"

	"shopbot/internal/domain"

	"go.yaml.in/yaml/v3"
)

// moscowRegions is the built-in gazetteer of Moscow and Moscow-oblast names.
// Matching is by substring, so "г. Москва" and "московская обл." both hit.
var moscowRegions = []string{
	"москва", "moscow", "мск",
	"московская область", "подмосковье",
	"балашиха", "химки", "подольск", "королёв", "мытищи",
	"люберцы", "красногорск", "электросталь", "коломна", "одинцово",
	"домодедово", "серпухов", "щёлково", "раменское", "орехово-зуево",
	"долгопрудный", "реутов", "жуковский", "пушкино", "ногинск",
	"сергиев посад", "дмитров", "видное", "лобня", "ивантеевка",
	"клин", "дубна", "егорьевск", "чехов", "наро-фоминск",
}

// Classifier decides whether an order is handled by the manager (local) or by
// the automated payment flow (remote). Pure and deterministic.
type Classifier struct {
	regions []string
}

func NewClassifier() *Classifier {
	return &Classifier{regions: moscowRegions}
}

// NewClassifierFromFile extends the built-in gazetteer with names from a YAML
// list, so the operator can add towns without a redeploy. Built-in names are
// never removed.
func NewClassifierFromFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading regions file: %w", err)
	}

	var extra []string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parsing regions file: %w", err)
	}

	regions := append([]string(nil), moscowRegions...)
	for _, name := range extra {
		name = normalize(name)
		if name != "" {
			regions = append(regions, name)
		}
	}

	return &Classifier{regions: regions}, nil
}

// Classify maps free-text city input to a routing decision. Anything that
// does not match the gazetteer, including empty input, is remote.
func (c *Classifier) Classify(city string) domain.Region {
	normalized := normalize(city)
	if normalized == "" {
		return domain.RegionRemote
	}
	for _, r := range c.regions {
		if strings.Contains(normalized, r) {
			return domain.RegionLocal
		}
	}
	return domain.RegionRemote
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
