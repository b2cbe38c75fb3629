// ABOUTME: Tests for the audit service, prompt projection and reply parsing
// ABOUTME: Uses a scripted fake model so no network is involved
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/genai"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

const validReply = `{
  "funnel": {
    "sent": 4, "responded": 3, "coffee": 2,
    "responseRate": {"currentValue": 75, "comparisonValue": "↑5% vs avg", "isPositive": true},
    "coffeeRate": {"currentValue": 67, "comparisonValue": "↓2% vs avg", "isPositive": false}
  },
  "personas": {
    "success": {"traits": ["Alumni"], "background": "Finance", "seniority": "Partner", "summary": "Warm intros land."},
    "failure": {"traits": ["Cold"], "background": "Product", "seniority": "Lead", "summary": "No shared context."},
    "driftAnalysis": "Shifting toward climate."
  },
  "featureHitRates": [{"name": "Alumni", "percentage": 66.7, "description": "Shared school"}],
  "keywords": {"myThoughts": ["climate"], "theirInfo": ["Series B"], "evolutionNotes": "More infra talk."},
  "altruism": {"helpCount": 2, "momentumScore": 71, "summary": "Giving first.", "topRecipientCategories": ["Founders"]}
}`

type fakeModel struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	prompts []string
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeModel) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(model Model) *Service {
	svc := NewService(model, nil, time.Second)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func seed() []models.Contact {
	return db.SeedContacts("2024-06-01")
}

func TestAuditNoContactsNeverCallsModel(t *testing.T) {
	model := &fakeModel{reply: validReply}
	svc := newTestService(model)

	for _, period := range append(models.ReviewPeriods, "bogus") {
		report, err := svc.Audit(context.Background(), nil, period)
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrNoContacts)
		assert.Equal(t, "No contacts found to analyze.", err.Error())
	}
	assert.Equal(t, 0, model.Calls())
}

func TestAuditInvalidPeriod(t *testing.T) {
	model := &fakeModel{reply: validReply}
	svc := newTestService(model)

	_, err := svc.Audit(context.Background(), seed(), "D")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.Equal(t, 0, model.Calls())
}

func TestAuditWithoutModel(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Audit(context.Background(), seed(), models.PeriodMonthly)
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestAuditSuccess(t *testing.T) {
	model := &fakeModel{reply: "```json\n" + validReply + "\n```"}
	svc := newTestService(model)

	report, err := svc.Audit(context.Background(), seed(), models.PeriodQuarterly)
	require.NoError(t, err)

	_, err = ulid.Parse(report.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PeriodQuarterly, report.Period)
	assert.Equal(t, fixedNow, report.GeneratedAt)
	assert.Equal(t, 4, report.ContactCount)
	assert.Equal(t, 3, report.Insight.Funnel.Responded)
	assert.Equal(t, float64(67), report.Insight.Funnel.CoffeeRate.CurrentValue)
	assert.False(t, report.Insight.Funnel.CoffeeRate.IsPositive)
	assert.Equal(t, []string{"Alumni"}, report.Insight.Personas.Success.Traits)
	assert.Equal(t, 71, report.Insight.Altruism.MomentumScore)

	latest := svc.Latest()
	require.NotNil(t, latest)
	assert.Equal(t, report.ID, latest.ID)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Networking Audit Period: Quarterly (90 days).")
}

func TestAuditFailuresAreRetryable(t *testing.T) {
	cases := map[string]*fakeModel{
		"transport":   {err: errors.New("503 Service Unavailable")},
		"empty":       {reply: "   "},
		"not json":    {reply: "Here is your audit!"},
		"missing key": {reply: `{"funnel": {}, "personas": {}, "featureHitRates": [], "keywords": {}}`},
		"wrong type":  {reply: strings.Replace(validReply, `"sent": 4`, `"sent": "four"`, 1)},
	}

	for name, model := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(model)
			report, err := svc.Audit(context.Background(), seed(), models.PeriodWeekly)
			assert.Nil(t, report)

			var auditErr *AuditError
			require.ErrorAs(t, err, &auditErr)
			assert.True(t, auditErr.Retryable())
			assert.NotEmpty(t, auditErr.Error())
			assert.Nil(t, svc.Latest())
			assert.False(t, svc.Running())
		})
	}
}

func TestParseReplyAcceptsIntegralFloats(t *testing.T) {
	reply := strings.Replace(validReply, `"sent": 4`, `"sent": 4.0`, 1)
	reply = strings.Replace(reply, `"momentumScore": 71`, `"momentumScore": 71.0`, 1)
	require.NoError(t, ValidateReply(reply))

	insight, err := ParseReply(reply)
	require.NoError(t, err)
	assert.Equal(t, 4, insight.Funnel.Sent)
	assert.Equal(t, 3, insight.Funnel.Responded)
	assert.Equal(t, 71, insight.Altruism.MomentumScore)
	assert.Equal(t, "Giving first.", insight.Altruism.Summary)
	assert.Equal(t, "↑5% vs avg", insight.Funnel.ResponseRate.ComparisonValue)
}

func TestParseReplyFillsMissingArrays(t *testing.T) {
	sparse := `{
  "funnel": {"sent": 1, "responded": 0, "coffee": 0,
    "responseRate": {"currentValue": 0, "comparisonValue": "", "isPositive": false},
    "coffeeRate": {"currentValue": 0, "comparisonValue": "", "isPositive": false}},
  "personas": {},
  "featureHitRates": [],
  "keywords": {},
  "altruism": {"helpCount": 0, "momentumScore": 10}
}`
	insight, err := ParseReply(sparse)
	require.NoError(t, err)
	assert.NotNil(t, insight.Personas.Success.Traits)
	assert.NotNil(t, insight.Personas.Failure.Traits)
	assert.NotNil(t, insight.Keywords.MyThoughts)
	assert.NotNil(t, insight.Keywords.TheirInfo)
	assert.NotNil(t, insight.Altruism.TopRecipientCategories)

	data, err := json.Marshal(insight)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "null")
}

func TestLatestDoesNotShareSlices(t *testing.T) {
	svc := newTestService(&fakeModel{reply: validReply})
	_, err := svc.Audit(context.Background(), seed(), models.PeriodMonthly)
	require.NoError(t, err)

	first := svc.Latest()
	first.Insight.Personas.Success.Traits[0] = "changed"
	first.Insight.FeatureHitRates[0].Name = "changed"
	first.Insight.Keywords.MyThoughts[0] = "changed"

	second := svc.Latest()
	assert.Equal(t, []string{"Alumni"}, second.Insight.Personas.Success.Traits)
	assert.Equal(t, "Alumni", second.Insight.FeatureHitRates[0].Name)
	assert.Equal(t, []string{"climate"}, second.Insight.Keywords.MyThoughts)
}

func TestAuditSingleFlight(t *testing.T) {
	model := &fakeModel{
		reply:   validReply,
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	svc := newTestService(model)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Audit(context.Background(), seed(), models.PeriodMonthly)
		done <- err
	}()

	<-model.entered
	assert.True(t, svc.Running())

	_, err := svc.Audit(context.Background(), seed(), models.PeriodMonthly)
	assert.ErrorIs(t, err, ErrAuditInProgress)

	close(model.block)
	require.NoError(t, <-done)
	assert.False(t, svc.Running())
	assert.Equal(t, 1, model.Calls())
}

func TestAuditTimeout(t *testing.T) {
	model := &fakeModel{reply: validReply, block: make(chan struct{})}
	svc := NewService(model, nil, 20*time.Millisecond)

	_, err := svc.Audit(context.Background(), seed(), models.PeriodYearly)
	var auditErr *AuditError
	require.ErrorAs(t, err, &auditErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProjectionPrunesIdentity(t *testing.T) {
	projected := Projection(seed())
	require.Len(t, projected, 4)

	sarah := projected[0]
	assert.Equal(t, models.StatusNurturing, sarah.Status)
	assert.Equal(t, "TechFlow AI", sarah.Company)
	assert.Equal(t, 1, sarah.Events)
	require.NotEmpty(t, sarah.Ints)

	raw, err := json.Marshal(projected)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Sarah Chen")
	assert.NotContains(t, string(raw), "linkedin")

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	keys := make([]string, 0, len(generic[0]))
	for k := range generic[0] {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"status", "company", "pos", "edu", "loc", "common", "ints", "events"}, keys)

	empty := Projection([]models.Contact{{Status: models.StatusLead}})
	raw, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"common":[]`)
	assert.Contains(t, string(raw), `"ints":[]`)
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(seed(), models.PeriodMonthly)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "Networking Audit Period: Monthly (30 days)."))
	assert.Contains(t, prompt, "Dataset: [")
	assert.Contains(t, prompt, "1. Calculate Conversion Funnel (Sent vs Responded vs Coffee).")
	assert.Contains(t, prompt, "4. Extract keyword trends and altruism momentum.")
	assert.Contains(t, prompt, "Constraint: Be precise, data-driven, and brief.")

	_, err = BuildPrompt(seed(), "")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestResponseSchema(t *testing.T) {
	s := ResponseSchema()
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"funnel", "personas", "featureHitRates", "keywords", "altruism"}, s.Required)
	assert.ElementsMatch(t,
		[]string{"sent", "responded", "coffee", "responseRate", "coffeeRate"},
		s.Properties["funnel"].Required)
	assert.ElementsMatch(t,
		[]string{"currentValue", "comparisonValue", "isPositive"},
		s.Properties["funnel"].Properties["responseRate"].Required)
	assert.Equal(t, genai.TypeArray, s.Properties["featureHitRates"].Type)

	js := JSONSchema(s)
	assert.Equal(t, "object", js["type"])
	funnel := js["properties"].(map[string]any)["funnel"].(map[string]any)
	sent := funnel["properties"].(map[string]any)["sent"].(map[string]any)
	assert.Equal(t, "integer", sent["type"])
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		`{"a":1}`:                   `{"a":1}`,
		"  {\"a\":1}\n":             `{"a":1}`,
		"```json\n{\"a\":1}\n```":   `{"a":1}`,
		"```\n{\"a\":1}\n```":       `{"a":1}`,
		"```json {\"a\":1}```":      `{"a":1}`,
		"```":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripCodeFence(in), "input %q", in)
	}
}

func TestGeminiGenerateConfig(t *testing.T) {
	cfg := generateConfig(0.2)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.ThinkingConfig)
	require.NotNil(t, cfg.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(0), *cfg.ThinkingConfig.ThinkingBudget)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.2, *cfg.Temperature, 1e-6)
	assert.Equal(t, genai.TypeObject, cfg.ResponseSchema.Type)
}

func TestNewGeminiModelRequiresKeyAndModel(t *testing.T) {
	_, err := NewGeminiModel(context.Background(), GeminiOptions{Model: "gemini-3-flash-preview"})
	assert.Error(t, err)

	_, err = NewGeminiModel(context.Background(), GeminiOptions{APIKey: "k"})
	assert.Error(t, err)
}
