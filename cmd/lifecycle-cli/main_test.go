// cmd/lifecycle-cli/main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeCandidate(t *testing.T, record map[string]interface{}) string {
	t.Helper()
	data, err := json.Marshal(record)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "candidate.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// ==========================
// evaluate
// ==========================

func TestEvaluateCommand_FromFile(t *testing.T) {
	path := writeCandidate(t, map[string]interface{}{
		"id":               "c-100",
		"status":           "screening",
		"application_date": "2024-03-01",
		"screening_date":   "2024-03-03",
	})

	out, err := execute(t, "evaluate", "--candidate", path, "--now", "2024-03-20T12:00:00Z")
	require.NoError(t, err)

	var result struct {
		Snapshot map[string]interface{}   `json:"snapshot"`
		Insights []map[string]interface{} `json:"insights"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "c-100", result.Snapshot["candidateId"])
	assert.EqualValues(t, 2, result.Snapshot["totalDays"])
	assert.Equal(t, "Screening", result.Snapshot["currentStageName"])
	require.Len(t, result.Insights, 1)
	assert.Equal(t, "Fast Track Candidate", result.Insights[0]["title"])
}

func TestEvaluateCommand_WritesOutputFile(t *testing.T) {
	path := writeCandidate(t, map[string]interface{}{"id": "c-101", "application_date": "2024-03-01"})
	outPath := filepath.Join(t.TempDir(), "evaluation.json")

	_, err := execute(t, "evaluate", "-c", path, "--now", "2024-03-05", "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"candidateId": "c-101"`)
}

func TestEvaluateCommand_Errors(t *testing.T) {
	noID := writeCandidate(t, map[string]interface{}{"status": "screening"})
	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o600))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no source flag", []string{"evaluate"}, "candidate"},
		{"both source flags", []string{"evaluate", "--candidate", noID, "--id", "c1"}, "candidate"},
		{"missing file", []string{"evaluate", "--candidate", filepath.Join(t.TempDir(), "absent.json")}, "failed to read candidate file"},
		{"malformed file", []string{"evaluate", "--candidate", broken}, "failed to parse candidate file"},
		{"record without id", []string{"evaluate", "--candidate", noID}, "no id"},
		{"bad clock", []string{"evaluate", "--candidate", noID, "--now", "soon"}, "invalid --now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ==========================
// stages
// ==========================

func TestStagesCommand(t *testing.T) {
	out, err := execute(t, "stages")
	require.NoError(t, err)

	assert.Contains(t, out, "Interview Scheduled")
	assert.Contains(t, out, "offer_released_date")
	assert.Contains(t, out, "Rejected")
}

func TestStagesCommand_JSON(t *testing.T) {
	out, err := execute(t, "stages", "--json")
	require.NoError(t, err)

	var stages []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &stages))
	require.Len(t, stages, 8)
	assert.Equal(t, "applied", stages[0]["id"])
	assert.Equal(t, "rejected", stages[7]["id"])
}

// ==========================
// activities
// ==========================

func TestActivitiesCommand(t *testing.T) {
	out, err := execute(t, "activities")
	require.NoError(t, err)
	assert.Contains(t, out, "compute-lifecycle-snapshot")
	assert.Contains(t, out, "generate-candidate-insights")
	assert.Contains(t, out, "CANDIDATE_NOT_FOUND")
}

func TestActivitiesCommand_Validate(t *testing.T) {
	out, err := execute(t, "activities", "--validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 activities")

	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"activities": []}`), 0o600))

	_, err = execute(t, "activities", "--validate", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no activities")
}

// ==========================
// cache
// ==========================

func TestCachePurgeCommand(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	require.NoError(t, mr.Set("candidate:record:c1", "{}"))
	require.NoError(t, mr.Set("candidate:record:c2", "{}"))
	require.NoError(t, mr.Set("session:abc", "keep"))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: recruitment
    user: postgres
  redis:
    address: `+mr.Addr()+`
`), 0o600))

	out, err := execute(t, "cache", "purge", "--config", cfgPath, "--id", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "c1")
	assert.False(t, mr.Exists("candidate:record:c1"))
	assert.True(t, mr.Exists("candidate:record:c2"))

	out, err = execute(t, "cache", "purge", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Purged 1 cached records")
	assert.False(t, mr.Exists("candidate:record:c2"))
	assert.True(t, mr.Exists("session:abc"))
}
