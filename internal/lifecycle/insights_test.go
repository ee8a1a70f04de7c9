// internal/lifecycle/insights_test.go
package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleByName(t *testing.T, name string) Rule {
	t.Helper()
	for _, r := range DefaultRules() {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("rule %q not registered", name)
	return Rule{}
}

func titles(insights []Insight) []string {
	out := make([]string, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Title)
	}
	return out
}

// ==========================
// Rule Registration
// ==========================

func TestDefaultRules_Order(t *testing.T) {
	names := make([]string, 0)
	for _, r := range DefaultRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"fast-track",
		"extended-timeline",
		"interview-preparation",
		"pending-decision",
		"relevant-experience",
		"compensation",
	}, names)
}

// ==========================
// Individual Rules
// ==========================

func TestFastTrackAndExtendedTimeline(t *testing.T) {
	tests := []struct {
		totalDays     int
		wantFastTrack bool
		wantExtended  bool
	}{
		{0, true, false},
		{21, true, false},
		{22, false, false},
		{60, false, false},
		{61, false, true},
	}

	fast := ruleByName(t, "fast-track")
	extended := ruleByName(t, "extended-timeline")
	c := &Candidate{ID: "c1", Status: "screening"}

	for _, tt := range tests {
		in := RuleInput{Candidate: c, Snapshot: &LifecycleSnapshot{TotalDays: tt.totalDays}, Now: fixedNow}

		insight, ok := fast.Evaluate(in)
		assert.Equal(t, tt.wantFastTrack, ok, "fast-track totalDays=%d", tt.totalDays)
		if ok {
			assert.Equal(t, InsightSuccess, insight.Type)
			assert.Equal(t, PriorityHigh, insight.Priority)
			assert.Equal(t, "Fast Track Candidate", insight.Title)
		}

		insight, ok = extended.Evaluate(in)
		assert.Equal(t, tt.wantExtended, ok, "extended totalDays=%d", tt.totalDays)
		if ok {
			assert.Equal(t, InsightWarning, insight.Type)
			assert.Equal(t, PriorityMedium, insight.Priority)
			assert.Contains(t, insight.Description, "61 days")
		}
	}
}

func TestSnapshotRules_SkippedWithoutSnapshot(t *testing.T) {
	in := RuleInput{Candidate: &Candidate{ID: "c1"}, Now: fixedNow}

	_, ok := ruleByName(t, "fast-track").Evaluate(in)
	assert.False(t, ok)
	_, ok = ruleByName(t, "extended-timeline").Evaluate(in)
	assert.False(t, ok)
}

func TestInterviewPreparationRule(t *testing.T) {
	rule := ruleByName(t, "interview-preparation")

	insight, ok := rule.Evaluate(RuleInput{Candidate: &Candidate{ID: "c1", Status: "interview_scheduled"}})
	require.True(t, ok)
	assert.Equal(t, InsightInfo, insight.Type)
	assert.Equal(t, PriorityHigh, insight.Priority)

	_, ok = rule.Evaluate(RuleInput{Candidate: &Candidate{ID: "c1", Status: "interviewed"}})
	assert.False(t, ok)
}

func TestPendingDecisionRule(t *testing.T) {
	rule := ruleByName(t, "pending-decision")

	tests := []struct {
		name        string
		raw         map[string]interface{}
		wantInsight bool
		wantDays    string
	}{
		{
			name:        "six days since interview",
			raw:         map[string]interface{}{"id": "c1", "status": "interviewed", "interview_date": daysAgo(6)},
			wantInsight: true,
			wantDays:    "6 days",
		},
		{
			name:        "five days is not enough",
			raw:         map[string]interface{}{"id": "c1", "status": "interviewed", "interview_date": daysAgo(5)},
			wantInsight: false,
		},
		{
			name: "approval date present",
			raw: map[string]interface{}{
				"id": "c1", "status": "interviewed", "interview_date": daysAgo(10), "approval_date": daysAgo(1),
			},
			wantInsight: false,
		},
		{
			name:        "no interview date",
			raw:         map[string]interface{}{"id": "c1", "status": "interviewed"},
			wantInsight: false,
		},
		{
			name:        "other status",
			raw:         map[string]interface{}{"id": "c1", "status": "screening", "interview_date": daysAgo(10)},
			wantInsight: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight, ok := rule.Evaluate(RuleInput{Candidate: ParseCandidate(tt.raw), Now: fixedNow})
			assert.Equal(t, tt.wantInsight, ok)
			if tt.wantInsight {
				assert.Equal(t, "Pending Decision", insight.Title)
				assert.Equal(t, InsightWarning, insight.Type)
				assert.Equal(t, PriorityHigh, insight.Priority)
				assert.Contains(t, insight.Description, tt.wantDays)
			}
		})
	}
}

func TestRelevantExperienceRule(t *testing.T) {
	rule := ruleByName(t, "relevant-experience")

	tests := []struct {
		name        string
		total       float64
		relevant    float64
		wantInsight bool
	}{
		{"ratio above threshold", 10, 9, true},
		{"ratio exactly threshold", 10, 8, false},
		{"ratio below threshold", 10, 5, false},
		{"zero total never fires", 0, 5, false},
		{"zero both", 0, 0, false},
		{"negative total", -4, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Candidate{ID: "c1", TotalExperience: tt.total, RelevantExperience: tt.relevant}
			insight, ok := rule.Evaluate(RuleInput{Candidate: c})
			assert.Equal(t, tt.wantInsight, ok)
			if ok {
				assert.Equal(t, InsightSuccess, insight.Type)
				assert.Equal(t, PriorityMedium, insight.Priority)
				assert.Contains(t, insight.Description, "90%")
				assert.NotContains(t, insight.Description, "NaN")
				assert.NotContains(t, insight.Description, "Inf")
			}
		})
	}
}

func TestCompensationRule(t *testing.T) {
	rule := ruleByName(t, "compensation")

	tests := []struct {
		name      string
		current   float64
		expected  float64
		wantTitle string
		wantText  string
	}{
		{"high expectation", 100, 160, "High Salary Expectation", "60%"},
		{"just above fifty", 100, 150.5, "High Salary Expectation", "51%"},
		{"exactly fifty is a gap", 100, 150, "", ""},
		{"thirty five percent gap", 100, 135, "", ""},
		{"exactly twenty is a gap", 100, 120, "", ""},
		{"reasonable", 100, 115, "Reasonable Expectations", "15%"},
		{"pay cut counts as reasonable", 100, 90, "Reasonable Expectations", "-10%"},
		{"missing current", 0, 150, "", ""},
		{"missing expected", 100, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Candidate{ID: "c1", CurrentCTC: tt.current, ExpectedCTC: tt.expected}
			insight, ok := rule.Evaluate(RuleInput{Candidate: c})
			if tt.wantTitle == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantTitle, insight.Title)
			assert.Contains(t, insight.Description, tt.wantText)
			if tt.wantTitle == "High Salary Expectation" {
				assert.Equal(t, InsightWarning, insight.Type)
				assert.Equal(t, PriorityMedium, insight.Priority)
			} else {
				assert.Equal(t, InsightSuccess, insight.Type)
				assert.Equal(t, PriorityLow, insight.Priority)
			}
		})
	}
}

// ==========================
// Rule Evaluation
// ==========================

func TestEvaluateRules_KeepsRuleOrder(t *testing.T) {
	c := &Candidate{
		ID:                 "c1",
		Status:             "interview_scheduled",
		TotalExperience:    10,
		RelevantExperience: 9,
		CurrentCTC:         100,
		ExpectedCTC:        200,
	}

	insights := EvaluateRules(DefaultRules(), RuleInput{Candidate: c, Snapshot: &LifecycleSnapshot{TotalDays: 5}, Now: fixedNow})

	assert.Equal(t, []string{
		"Fast Track Candidate",
		"Interview Preparation",
		"Highly Relevant Experience",
		"High Salary Expectation",
	}, titles(insights))
}

func TestEvaluateRules_NoDedup(t *testing.T) {
	always := Rule{Name: "always", Evaluate: func(RuleInput) (Insight, bool) {
		return Insight{Type: InsightError, Title: "Same", Priority: PriorityLow}, true
	}}

	insights := EvaluateRules([]Rule{always, always}, RuleInput{Candidate: &Candidate{ID: "c1"}})

	assert.Len(t, insights, 2)
}

func TestEvaluateRules_AbsentCandidate(t *testing.T) {
	insights := EvaluateRules(DefaultRules(), RuleInput{Candidate: nil, Now: fixedNow})
	assert.NotNil(t, insights)
	assert.Empty(t, insights)

	insights = EvaluateRules(DefaultRules(), RuleInput{Candidate: &Candidate{}, Now: fixedNow})
	assert.Empty(t, insights)
}

func BenchmarkEvaluateRules(b *testing.B) {
	c := ParseCandidate(createFullPipelineRecord(date("2024-01-01")))
	c.TotalExperience, c.RelevantExperience = 8, 7
	s := ComputeLifecycleSnapshot(c, fixedNow)
	rules := DefaultRules()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EvaluateRules(rules, RuleInput{Candidate: c, Snapshot: s, Now: fixedNow})
	}
}
