package execution

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndexGroupsByID(t *testing.T) {
	records := []Record{
		{TestCaseID: "TC018", TestName: "a", Status: StatusPassed},
		{TestName: "untagged", Status: StatusFailed},
		{TestCaseID: "TC019", TestName: "b", Status: StatusError},
		{TestCaseID: "TC018", TestName: "c", Status: StatusFailed},
	}

	idx := NewIndex(records)
	require.Len(t, idx, 2)
	assert.Equal(t, []string{"a", "c"}, names(idx.Lookup("TC018")))
	assert.Equal(t, []string{"b"}, names(idx.Lookup("TC019")))
	assert.Nil(t, idx.Lookup("TC001"))
	assert.Nil(t, Index(nil).Lookup("TC018"))
}

func TestDecodeNullIdentifier(t *testing.T) {
	doc := `{"tests": [
  {"test_case_id": null, "test_name": "tests.test_apps.AppsTest.test_name", "status": "passed"},
  {"test_case_id": "TC008", "test_name": "tests.test_models.ModelTest.test_str", "status": "passed"}
]}`
	records, err := Decode(strings.NewReader(doc), "result_test_auto.json")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].TestCaseID)

	idx := NewIndex(records)
	assert.Len(t, idx, 1)
	assert.Len(t, idx.Lookup("TC008"), 1)
}

func TestDecodeNonStringFields(t *testing.T) {
	doc := `{"tests": [
  {"test_case_id": 7, "status": "passed"},
  {"test_case_id": "T2", "status": 3},
  {"test_case_id": ["T3"], "status": "failed"},
  "not a record",
  {"test_case_id": "T4", "status": "passed", "test_name": {"nested": true}}
]}`
	records, err := Decode(strings.NewReader(doc), "result_test_auto.json")
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, Record{TestCaseID: "7", Status: StatusPassed}, records[0])
	assert.Equal(t, Record{TestCaseID: "T2", Status: "3"}, records[1])
	assert.Empty(t, records[2].TestCaseID)
	assert.Equal(t, Record{}, records[3])
	assert.Equal(t, Record{TestCaseID: "T4", Status: StatusPassed}, records[4])

	idx := NewIndex(records)
	assert.Len(t, idx, 3)
	assert.Len(t, idx.Lookup("7"), 1)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"tests": {"id": 1}}`), "result_test_auto.json")
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`not json`), "result_test_auto.json")
	assert.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "result_test_auto.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result_test_auto.json")
	records := []Record{{TestCaseID: "TC001", TestName: "pkg/TestURLs", Module: "pkg", Method: "TestURLs", Status: StatusPassed}}

	require.NoError(t, WriteFile(path, records))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestWriteEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, nil))
	assert.Equal(t, "{\n  \"tests\": []\n}\n", buf.String())
}

func names(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.TestName)
	}
	return out
}
