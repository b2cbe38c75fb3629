// ABOUTME: Audit report models returned by the AI insights service
// ABOUTME: Mirrors the declared response schema plus review period codes
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// ReviewPeriod is the audit window code.
type ReviewPeriod string

const (
	PeriodWeekly    ReviewPeriod = "W"
	PeriodMonthly   ReviewPeriod = "M"
	PeriodQuarterly ReviewPeriod = "Q"
	PeriodYearly    ReviewPeriod = "Y"
)

// ReviewPeriods lists the periods in selector order.
var ReviewPeriods = []ReviewPeriod{PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly}

var periodLabels = map[ReviewPeriod]string{
	PeriodWeekly:    "Weekly (7 days)",
	PeriodMonthly:   "Monthly (30 days)",
	PeriodQuarterly: "Quarterly (90 days)",
	PeriodYearly:    "Yearly (365 days)",
}

var periodNames = map[ReviewPeriod]string{
	PeriodWeekly:    "Weekly",
	PeriodMonthly:   "Monthly",
	PeriodQuarterly: "Quarterly",
	PeriodYearly:    "Yearly",
}

// Valid reports whether p is one of W, M, Q, Y.
func (p ReviewPeriod) Valid() bool {
	_, ok := periodLabels[p]
	return ok
}

// Label is the prompt description, e.g. "Monthly (30 days)".
func (p ReviewPeriod) Label() string {
	return periodLabels[p]
}

// Name is the selector caption, e.g. "Monthly".
func (p ReviewPeriod) Name() string {
	return periodNames[p]
}

// ParseReviewPeriod accepts a period code or name, case-insensitively.
func ParseReviewPeriod(raw string) (ReviewPeriod, error) {
	raw = strings.TrimSpace(raw)
	for _, p := range ReviewPeriods {
		if strings.EqualFold(raw, string(p)) || strings.EqualFold(raw, p.Name()) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown review period %q (want W, M, Q or Y)", raw)
}

type PersonaProfile struct {
	Traits     []string `json:"traits"`
	Background string   `json:"background"`
	Seniority  string   `json:"seniority"`
	Summary    string   `json:"summary"`
}

type HitRate struct {
	Name        string  `json:"name"`
	Percentage  float64 `json:"percentage"`
	Description string  `json:"description"`
}

type MetricWithTrend struct {
	CurrentValue    float64 `json:"currentValue"`
	ComparisonValue string  `json:"comparisonValue"` // e.g. "↑5% vs avg"
	IsPositive      bool    `json:"isPositive"`
}

type Funnel struct {
	Sent         int             `json:"sent"`
	Responded    int             `json:"responded"`
	Coffee       int             `json:"coffee"`
	ResponseRate MetricWithTrend `json:"responseRate"`
	CoffeeRate   MetricWithTrend `json:"coffeeRate"`
}

type Personas struct {
	Success       PersonaProfile `json:"success"`
	Failure       PersonaProfile `json:"failure"`
	DriftAnalysis string         `json:"driftAnalysis,omitempty"`
}

type Keywords struct {
	MyThoughts     []string `json:"myThoughts"`
	TheirInfo      []string `json:"theirInfo"`
	EvolutionNotes string   `json:"evolutionNotes,omitempty"`
}

type Altruism struct {
	HelpCount              int      `json:"helpCount"`
	MomentumScore          int      `json:"momentumScore"`
	Summary                string   `json:"summary"`
	TopRecipientCategories []string `json:"topRecipientCategories"`
}

// Insight is the model's structured networking analysis.
type Insight struct {
	Funnel          Funnel    `json:"funnel"`
	Personas        Personas  `json:"personas"`
	FeatureHitRates []HitRate `json:"featureHitRates"`
	Keywords        Keywords  `json:"keywords"`
	Altruism        Altruism  `json:"altruism"`
}

// AuditReport wraps an Insight with the request it answered.
type AuditReport struct {
	ID           string       `json:"id"`
	Period       ReviewPeriod `json:"period"`
	GeneratedAt  time.Time    `json:"generated_at"`
	ContactCount int          `json:"contact_count"`
	Insight      Insight      `json:"insight"`
}

// Normalize replaces nil slices with empty ones so the report always
// encodes arrays, never null.
func (in *Insight) Normalize() {
	in.Personas.Success.Traits = nonNil(in.Personas.Success.Traits)
	in.Personas.Failure.Traits = nonNil(in.Personas.Failure.Traits)
	if in.FeatureHitRates == nil {
		in.FeatureHitRates = []HitRate{}
	}
	in.Keywords.MyThoughts = nonNil(in.Keywords.MyThoughts)
	in.Keywords.TheirInfo = nonNil(in.Keywords.TheirInfo)
	in.Altruism.TopRecipientCategories = nonNil(in.Altruism.TopRecipientCategories)
}

// Clone returns a deep copy of the insight.
func (in Insight) Clone() Insight {
	out := in
	out.Personas.Success.Traits = cloneStrings(in.Personas.Success.Traits)
	out.Personas.Failure.Traits = cloneStrings(in.Personas.Failure.Traits)
	if in.FeatureHitRates != nil {
		out.FeatureHitRates = append([]HitRate{}, in.FeatureHitRates...)
	}
	out.Keywords.MyThoughts = cloneStrings(in.Keywords.MyThoughts)
	out.Keywords.TheirInfo = cloneStrings(in.Keywords.TheirInfo)
	out.Altruism.TopRecipientCategories = cloneStrings(in.Altruism.TopRecipientCategories)
	return out
}

// Clone returns a deep copy of the report.
func (r *AuditReport) Clone() *AuditReport {
	out := *r
	out.Insight = r.Insight.Clone()
	return &out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// JSON Schema counts 4.0 as an integer, so counts are decoded as numbers
// and rounded.
func (f *Funnel) UnmarshalJSON(data []byte) error {
	type plain Funnel
	var raw struct {
		plain
		Sent      float64 `json:"sent"`
		Responded float64 `json:"responded"`
		Coffee    float64 `json:"coffee"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = Funnel(raw.plain)
	f.Sent = roundInt(raw.Sent)
	f.Responded = roundInt(raw.Responded)
	f.Coffee = roundInt(raw.Coffee)
	return nil
}

func (a *Altruism) UnmarshalJSON(data []byte) error {
	type plain Altruism
	var raw struct {
		plain
		HelpCount     float64 `json:"helpCount"`
		MomentumScore float64 `json:"momentumScore"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Altruism(raw.plain)
	a.HelpCount = roundInt(raw.HelpCount)
	a.MomentumScore = roundInt(raw.MomentumScore)
	return nil
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
