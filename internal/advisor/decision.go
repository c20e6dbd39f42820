package advisor

import "fmt"

// Kind tags how a Decision was produced.
type Kind int

const (
	// RuleBased means no advice is available and the caller must use its
	// local rule. Transport failures and a disabled client end up here.
	RuleBased Kind = iota
	// Structured carries fields decoded from a schema-valid JSON object.
	Structured
	// Unparsed carries free text that could not be decoded. Callers treat
	// it exactly like RuleBased.
	Unparsed
)

func (k Kind) String() string {
	switch k {
	case Structured:
		return "structured"
	case Unparsed:
		return "unparsed"
	default:
		return "rule_based"
	}
}

// Decision is the advisor's answer for one agent at one hour. Only the
// fields relevant to the requesting agent are set; nil means "not given".
type Decision struct {
	Kind Kind

	Order         *bool    `json:"order,omitempty"`
	Action        string   `json:"action,omitempty"`
	SubsidyAmount *float64 `json:"subsidy_amount,omitempty"`
	BuildShelter  *bool    `json:"build_shelter,omitempty"`
	AdjustPay     *float64 `json:"adjust_pay,omitempty"`
	FireRiders    *bool    `json:"fire_riders,omitempty"`
	Level         string   `json:"level,omitempty"`
	Reasoning     string   `json:"reasoning,omitempty"`

	// Raw is the untouched completion text, kept for the agent log.
	Raw string `json:"-"`
}

// maxNoteRaw bounds how much of an unusable reply lands in a log line.
const maxNoteRaw = 120

// Thought is the log text for advice the agent acted on.
func (d Decision) Thought() string {
	note := d.Reasoning
	if note == "" {
		note = clip(d.Raw)
	}
	if d.Level != "" {
		note = fmt.Sprintf("%s [level %s]", note, d.Level)
	}
	return note
}

// RuleThought is the log text when the agent fell back to rule. Advice that
// arrived but was not acted on is appended so it stays visible.
func (d Decision) RuleThought(rule string) string {
	switch d.Kind {
	case Unparsed:
		return fmt.Sprintf("%s; unusable advice %q", rule, clip(d.Raw))
	case Structured:
		return fmt.Sprintf("%s; advice ignored: %s", rule, d.Thought())
	default:
		return rule
	}
}

func clip(text string) string {
	r := []rune(text)
	if len(r) <= maxNoteRaw {
		return text
	}
	return string(r[:maxNoteRaw]) + "..."
}

// Usable reports whether the caller should act on the decision instead of
// its own rule.
func (d Decision) Usable() bool {
	return d.Kind == Structured
}

func Fallback() Decision {
	return Decision{Kind: RuleBased}
}
