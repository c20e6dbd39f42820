package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

var decisionSchemas = map[string]string{
	models.AgentCustomer: `{
		"type": "object",
		"required": ["order"],
		"properties": {
			"order": {"enum": [true, false, "true", "false", "True", "False"]},
			"concern_level": {"type": "string"},
			"reasoning": {"type": "string"}
		}
	}`,
	models.AgentRider: `{
		"type": "object",
		"required": ["action"],
		"properties": {
			"action": {"type": "string", "pattern": "(?i)^\\s*(deliver|rest|complain)\\s*$"},
			"risk_level": {"type": "string"},
			"reasoning": {"type": "string"}
		}
	}`,
	models.AgentGovernment: `{
		"type": "object",
		"required": ["subsidy_amount", "build_shelter"],
		"properties": {
			"subsidy_amount": {"type": "number", "minimum": 0},
			"build_shelter": {"type": "boolean"},
			"urgency": {"type": "string"},
			"reasoning": {"type": "string"}
		}
	}`,
	models.AgentPlatform: `{
		"type": "object",
		"required": ["adjust_pay"],
		"properties": {
			"adjust_pay": {"type": "number", "exclusiveMinimum": 0},
			"fire_riders": {"type": "boolean"},
			"risk_level": {"type": "string"},
			"reasoning": {"type": "string"}
		}
	}`,
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func schemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*jsonschema.Schema, len(decisionSchemas))
		for agent, src := range decisionSchemas {
			s, err := jsonschema.CompileString(strings.ToLower(agent)+".json", src)
			if err != nil {
				compileErr = fmt.Errorf("compile %s schema: %w", agent, err)
				return
			}
			compiled[agent] = s
		}
	})
	return compiled, compileErr
}

// rawDecision mirrors every key any agent prompt asks for.
type rawDecision struct {
	Order         interface{} `json:"order"`
	ConcernLevel  string      `json:"concern_level"`
	Action        string      `json:"action"`
	RiskLevel     string      `json:"risk_level"`
	SubsidyAmount *float64    `json:"subsidy_amount"`
	BuildShelter  *bool       `json:"build_shelter"`
	Urgency       string      `json:"urgency"`
	AdjustPay     *float64    `json:"adjust_pay"`
	FireRiders    *bool       `json:"fire_riders"`
	Reasoning     string      `json:"reasoning"`
}

// extractObject returns the text between the first '{' and the last '}'.
func extractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// Parse turns completion text into a Decision for the given agent type.
// Anything that is not a schema-valid object comes back Unparsed.
func Parse(agent, text string) Decision {
	unparsed := Decision{Kind: Unparsed, Reasoning: text, Raw: text}

	obj, ok := extractObject(text)
	if !ok {
		return unparsed
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(obj), &doc); err != nil {
		return unparsed
	}

	all, err := schemas()
	if err != nil {
		return unparsed
	}
	schema, ok := all[agent]
	if !ok {
		return unparsed
	}
	if err := schema.Validate(doc); err != nil {
		return unparsed
	}

	var raw rawDecision
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return unparsed
	}

	d := Decision{
		Kind:          Structured,
		Action:        strings.ToLower(strings.TrimSpace(raw.Action)),
		SubsidyAmount: raw.SubsidyAmount,
		BuildShelter:  raw.BuildShelter,
		AdjustPay:     raw.AdjustPay,
		FireRiders:    raw.FireRiders,
		Reasoning:     raw.Reasoning,
		Raw:           text,
	}
	switch v := raw.Order.(type) {
	case bool:
		d.Order = &v
	case string:
		b := strings.EqualFold(v, "true")
		d.Order = &b
	}
	for _, level := range []string{raw.ConcernLevel, raw.RiskLevel, raw.Urgency} {
		if level != "" {
			d.Level = level
			break
		}
	}
	return d
}
