package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocato/penal-engine/config"
	"github.com/advocato/penal-engine/legaldate"
	"github.com/advocato/penal-engine/sentence"
)

const sentenceYAML = `
kind: sentence
as_of: 2021-02-04
sentence:
  regime: closed
  offenses:
    - description: roubo simples
      article: art. 157 CP
      penalty: {years: 6}
      classification: primary
  episodes:
    - start: 2020-01-01
      type: sentence
  remissions:
    - date: 2020-07-19
      days: 100
      note: remição por trabalho
`

const alimonyYAML = `
kind: alimony
as_of: 2024-03-05
alimony:
  monthly_amount: "1000.00"
  due_day: 5
  start: 2024-01-05
  payments:
    - date: 2024-02-05
      amount: "1000.00"
`

func TestParse_SentenceCase(t *testing.T) {
	cf, err := config.Parse([]byte(sentenceYAML))
	require.NoError(t, err)
	require.Equal(t, config.KindSentence, cf.Kind)

	s, episodes, remissions, err := cf.Sentence.BuildSentence()
	require.NoError(t, err)

	assert.Equal(t, 2190, s.TotalDays)
	assert.Equal(t, sentence.RegimeClosed, s.Regime)
	require.Len(t, episodes, 1)
	assert.True(t, episodes[0].Countable, "countable defaults to true")
	assert.Nil(t, episodes[0].End)
	require.Len(t, remissions, 1)
	assert.Equal(t, 100, remissions[0].Days)

	asOf, err := cf.ResolveAsOf()
	require.NoError(t, err)
	assert.True(t, asOf.Equal(legaldate.New(2021, time.February, 4)))
}

func TestParse_AlimonyCase(t *testing.T) {
	cf, err := config.Parse([]byte(alimonyYAML))
	require.NoError(t, err)

	o, payments, err := cf.Alimony.BuildAlimony()
	require.NoError(t, err)

	assert.Equal(t, 5, o.DueDay)
	assert.Equal(t, "1000", o.MonthlyAmount.String())
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Date.Equal(legaldate.New(2024, time.February, 5)))
}

func TestParse_RejectsMalformedFiles(t *testing.T) {
	cases := map[string]string{
		"unknown kind":    "kind: divorce\n",
		"missing section": "kind: sentence\n",
		"mismatched body": "kind: alimony\nsentence:\n  regime: closed\n",
		"not yaml at all": "{{{",
	}
	for name, body := range cases {
		_, err := config.Parse([]byte(body))
		assert.Error(t, err, name)
	}
}

func TestBuildSentence_RejectsBadDates(t *testing.T) {
	cf, err := config.Parse([]byte(`
kind: sentence
sentence:
  regime: closed
  offenses:
    - penalty: {years: 1}
      classification: primary
  episodes:
    - start: 01/01/2020
`))
	require.NoError(t, err)
	_, _, _, err = cf.Sentence.BuildSentence()
	assert.Error(t, err, "BR-formatted date must be rejected")
}

func TestBuildAlimony_RejectsBadAmount(t *testing.T) {
	cf, err := config.Parse([]byte(`
kind: alimony
alimony:
  monthly_amount: "mil reais"
  due_day: 5
  start: 2024-01-05
`))
	require.NoError(t, err)
	_, _, err = cf.Alimony.BuildAlimony()
	assert.Error(t, err)
}
