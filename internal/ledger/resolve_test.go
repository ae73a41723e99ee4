package ledger_test

import (
	"testing"
	"time"

	"office-pump/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entities = []ledger.Entity{{Label: "CGML"}, {Label: "CGME"}}

func entry(account, entity, sheet string) ledger.MappingEntry {
	return ledger.MappingEntry{Account: account, Key: ledger.MatchKey(account), Entity: entity, Sheet: sheet}
}

func TestResolver_Priority(t *testing.T) {
	r := ledger.NewResolver([]ledger.MappingEntry{
		entry("00123", "CGME", "old"),
		entry("123", "CGML", "new"),
		entry("777", "CGME", "old"),
		entry("777", "CGML", "old"),
	}, entities, "new")

	tests := []struct {
		name   string
		rec    ledger.Record
		entity string
		rule   ledger.Rule
	}{
		{"signal wins", ledger.Record{Key: "123", Signal: "CGME", Level: "CGML Desk"}, "CGME", ledger.RuleSignal},
		{"unknown signal ignored", ledger.Record{Key: "123", Signal: "XYZ"}, "CGML", ledger.RuleNewSheet},
		{"level hint", ledger.Record{Key: "123", Level: "EMEA cgme rates"}, "CGME", ledger.RuleHint},
		{"new sheet", ledger.Record{Key: "123"}, "CGML", ledger.RuleNewSheet},
		{"first candidate", ledger.Record{Key: "777"}, "CGME", ledger.RuleFallback},
		{"unmapped", ledger.Record{Key: "999"}, "", ledger.RuleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, rule := r.Resolve(tt.rec)
			assert.Equal(t, tt.entity, entity)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestResolver_HintUsesConfiguredCode(t *testing.T) {
	r := ledger.NewResolver([]ledger.MappingEntry{
		entry("5", "CGML", "old"),
		entry("5", "CGME", "old"),
	}, []ledger.Entity{{Label: "CGML", Hint: "LDN"}, {Label: "CGME", Hint: "FRA"}}, "new")

	entity, rule := r.Resolve(ledger.Record{Key: "5", Level: "FRA Credit"})
	assert.Equal(t, "CGME", entity)
	assert.Equal(t, ledger.RuleHint, rule)
}

func record(key, entity string, day int, signal string) ledger.Record {
	return ledger.Record{
		Account: key,
		Key:     key,
		Date:    time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Entity:  entity,
		Signal:  signal,
	}
}

func TestEnforceSingleEntity_Majority(t *testing.T) {
	in := []ledger.Record{
		record("123", "CGML", 1, ""),
		record("123", "CGME", 1, ""),
		record("123", "CGML", 1, ""),
		record("123", "CGML", 1, ""),
		record("123", "CGME", 2, ""),
	}

	out, dropped := ledger.EnforceSingleEntity(in)
	assert.Equal(t, 1, dropped)
	require.Len(t, out, 4)
	for _, r := range out[:3] {
		assert.Equal(t, "CGML", r.Entity)
	}
	assert.Equal(t, "CGME", out[3].Entity, "other days are independent")
}

func TestEnforceSingleEntity_SignalBeatsMajority(t *testing.T) {
	in := []ledger.Record{
		record("123", "CGML", 1, ""),
		record("123", "CGML", 1, ""),
		record("123", "CGML", 1, ""),
		record("123", "CGME", 1, "CGME"),
	}

	out, dropped := ledger.EnforceSingleEntity(in)
	assert.Equal(t, 3, dropped)
	require.Len(t, out, 1)
	assert.Equal(t, "CGME", out[0].Entity)
}

func TestEnforceSingleEntity_MajorityBeatsHintedRecord(t *testing.T) {
	in := []ledger.Record{
		record("123", "CGML", 1, ""),
		record("123", "CGML", 1, ""),
		record("123", "CGML", 1, ""),
		record("123", "CGME", 1, ""),
	}
	for i := range in[:3] {
		in[i].Rule = ledger.RuleNewSheet
	}
	in[3].Level = "CGME Credit"
	in[3].Rule = ledger.RuleHint

	out, dropped := ledger.EnforceSingleEntity(in)
	assert.Equal(t, 1, dropped)
	require.Len(t, out, 3)
	for _, r := range out {
		assert.Equal(t, "CGML", r.Entity)
	}
}

func TestEnforceSingleEntity_TieIsAlphabetical(t *testing.T) {
	in := []ledger.Record{
		record("9", "CGML", 4, ""),
		record("9", "CGME", 4, "XYZ"),
	}

	out, dropped := ledger.EnforceSingleEntity(in)
	assert.Equal(t, 1, dropped)
	require.Len(t, out, 1)
	assert.Equal(t, "CGME", out[0].Entity)
}

func TestEnforceSingleEntity_NoConflict(t *testing.T) {
	in := []ledger.Record{record("1", "CGML", 1, ""), record("1", "CGML", 1, "")}
	out, dropped := ledger.EnforceSingleEntity(in)
	assert.Zero(t, dropped)
	assert.Len(t, out, 2, "records of the chosen entity are not merged")
}

func amount(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestAggregate(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	records := []ledger.Record{
		{Entity: "CGML", Date: d2, CleanPnL: amount("1.5"), Actual: amount(""), BookType: "BB"},
		{Entity: "CGML", Date: d1, CleanPnL: amount("10"), Actual: amount(""), BookType: "TB"},
		{Entity: "CGML", Date: d1, CleanPnL: amount("5"), Actual: amount(""), BookType: " tb "},
		{Entity: "CGME", Date: d1, CleanPnL: amount("100"), Actual: amount("100"), BookType: "TB"},
	}

	all := ledger.Aggregate(records, "CGML", false, "TB")
	assert.Equal(t, "CGML_All", all.Name())
	require.Len(t, all.Points, 2)
	assert.True(t, d1.Equal(all.Points[0].Date))
	assert.True(t, all.Points[0].CleanPnL.Valid)
	assert.True(t, decimal.NewFromInt(15).Equal(all.Points[0].CleanPnL.Decimal))
	assert.False(t, all.Points[0].Actual.Valid, "all-null day stays null")
	assert.Equal(t, 2, all.Points[0].Lines)

	tb := ledger.Aggregate(records, "CGML", true, "TB")
	assert.Equal(t, "CGML_TB", tb.Name())
	require.Len(t, tb.Points, 1)
	assert.True(t, d1.Equal(tb.Points[0].Date))

	none := ledger.Aggregate(records, "OTHER", false, "TB")
	assert.Empty(t, none.Points)
}

func TestRuleString(t *testing.T) {
	assert.Equal(t, "new-sheet", ledger.RuleNewSheet.String())
	assert.Equal(t, "none", ledger.Rule(42).String())
}
