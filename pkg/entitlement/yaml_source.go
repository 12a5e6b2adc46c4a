package entitlement

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLSource loads the plan catalog from a YAML file, letting the plan
// lineup ship as configuration rather than code:
//
//	plans:
//	  - id: free
//	    name: Free
//	    maxLanguages: 2
//	    dailyLimit: 100
//	    interval: none
//	  - id: tier1_monthly
//	    name: Standard Monthly
//	    productIds: ["app.polylingo.tier1.monthly"]
//	    maxLanguages: 3
//	    dailyLimit: 300
//	    interval: monthly
//	    price: {amount: 299, currency: USD}
type YAMLSource struct {
	path string
}

func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

type yamlCatalog struct {
	Plans []Plan `yaml:"plans"`
}

func (s *YAMLSource) Load(ctx context.Context) (map[string]Plan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if len(doc.Plans) == 0 {
		return nil, errors.Join(ErrFailedToLoadPlans, errors.New("no plans defined"))
	}

	plans := make(map[string]Plan, len(doc.Plans))
	for _, plan := range doc.Plans {
		plans[plan.ID] = plan
	}
	return plans, nil
}
