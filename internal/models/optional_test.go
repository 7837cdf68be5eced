package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sparsePayload struct {
	Name  Optional[string] `json:"name"`
	Count Optional[int]    `json:"count"`
	Tag   Optional[string] `json:"tag"`
}

func TestOptionalDistinguishesOmittedNullAndValue(t *testing.T) {
	var p sparsePayload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"alpha","count":null}`), &p))

	assert.True(t, p.Name.IsSet())
	assert.False(t, p.Name.IsNull())
	v, ok := p.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "alpha", v)

	assert.True(t, p.Count.IsSet())
	assert.True(t, p.Count.IsNull())
	_, ok = p.Count.Get()
	assert.False(t, ok)

	assert.False(t, p.Tag.IsSet())
	assert.False(t, p.Tag.IsNull())
}

func TestOptionalApply(t *testing.T) {
	dst := "before"
	Some("after").Apply(&dst)
	assert.Equal(t, "after", dst)

	Null[string]().Apply(&dst)
	assert.Equal(t, "after", dst)

	var omitted Optional[string]
	omitted.Apply(&dst)
	assert.Equal(t, "after", dst)
}

func TestOptionalApplyPtr(t *testing.T) {
	initial := "stored"
	dst := &initial

	var omitted Optional[string]
	omitted.ApplyPtr(&dst)
	require.NotNil(t, dst)
	assert.Equal(t, "stored", *dst)

	Some("replaced").ApplyPtr(&dst)
	require.NotNil(t, dst)
	assert.Equal(t, "replaced", *dst)

	Null[string]().ApplyPtr(&dst)
	assert.Nil(t, dst)
}

func TestOptionalMarshal(t *testing.T) {
	p := sparsePayload{Name: Some("alpha"), Count: Null[int]()}
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"alpha","count":null,"tag":null}`, string(raw))
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-09-01", d.String())

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-09-01"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-09-01"`), &parsed))
	assert.Equal(t, d.String(), parsed.String())

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}
