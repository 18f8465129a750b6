package handlog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/axiomind/internal/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterNextIDIsMonotonicPerDate(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(mustParseTime(t, "2026-07-30T12:00:00Z"))

	path := filepath.Join(t.TempDir(), "hands.jsonl")
	w, err := Create(path, clock)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, "20260730-000001", w.NextID())
	assert.Equal(t, "20260730-000002", w.NextID())
	assert.Equal(t, "20260730-000003", w.NextID())
}

func TestWriterInjectsTimestampWhenAbsent(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(mustParseTime(t, "2026-07-30T12:00:00Z"))

	path := filepath.Join(t.TempDir(), "hands.jsonl")
	w, err := Create(path, clock)
	require.NoError(t, err)

	rec := HandRecord{HandID: w.NextID(), Board: nil}
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := ReadAll(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-07-30T12:00:00Z", records[0].Ts)
}

func TestWriterPreservesExplicitTimestamp(t *testing.T) {
	clock := quartz.NewMock(t)
	path := filepath.Join(t.TempDir(), "hands.jsonl")
	w, err := Create(path, clock)
	require.NoError(t, err)

	rec := HandRecord{HandID: w.NextID(), Ts: "2020-01-01T00:00:00Z"}
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	data, _ := os.ReadFile(path)
	records, err := ReadAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T00:00:00Z", records[0].Ts)
}

func TestWriterEmitsLFOnlyLineEndings(t *testing.T) {
	clock := quartz.NewMock(t)
	path := filepath.Join(t.TempDir(), "hands.jsonl")
	w, err := Create(path, clock)
	require.NoError(t, err)
	require.NoError(t, w.Write(HandRecord{HandID: w.NextID(), Ts: "2020-01-01T00:00:00Z"}))
	require.NoError(t, w.Write(HandRecord{HandID: w.NextID(), Ts: "2020-01-01T00:00:00Z"}))
	require.NoError(t, w.Close())

	data, _ := os.ReadFile(path)
	assert.NotContains(t, string(data), "\r\n")
	assert.Contains(t, string(data), "\n")
}

func TestReadAllToleratesBOMAndCRLF(t *testing.T) {
	raw := "\xEF\xBB\xBF{\"hand_id\":\"20260730-000001\",\"board\":[]}\r\n{\"hand_id\":\"20260730-000002\",\"board\":[]}\r\n"
	records, err := ReadAll(bytes.NewReader([]byte(raw)))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "20260730-000001", records[0].HandID)
	assert.Equal(t, "20260730-000002", records[1].HandID)
}

func TestVerifyRejectsMalformedHandID(t *testing.T) {
	err := Verify(HandRecord{HandID: "not-a-hand-id"})
	require.Error(t, err)
	var verr *VerifyError
	require.ErrorAs(t, err, &verr)
}

func TestVerifyRejectsBadBoardLength(t *testing.T) {
	err := Verify(HandRecord{
		HandID: "20260730-000001",
		Board: []cards.Card{
			cards.New(cards.Clubs, cards.Two),
			cards.New(cards.Diamonds, cards.Three),
		},
	})
	require.Error(t, err)
}

func TestVerifyRejectsDuplicateBoardCards(t *testing.T) {
	c := cards.New(cards.Clubs, cards.Two)
	err := Verify(HandRecord{
		HandID: "20260730-000001",
		Board:  []cards.Card{c, c, cards.New(cards.Hearts, cards.Four)},
	})
	require.Error(t, err)
}

func TestVerifyRejectsNonMonotonicActions(t *testing.T) {
	err := Verify(HandRecord{
		HandID: "20260730-000001",
		Actions: []ActionRecord{
			{PlayerID: 0, Street: Flop, Action: "Check"},
			{PlayerID: 1, Street: Preflop, Action: "Check"},
		},
	})
	require.Error(t, err)
}

func TestVerifyAcceptsWellFormedRecord(t *testing.T) {
	err := Verify(HandRecord{
		HandID: "20260730-000001",
		Board: []cards.Card{
			cards.New(cards.Clubs, cards.Two),
			cards.New(cards.Diamonds, cards.Three),
			cards.New(cards.Hearts, cards.Four),
		},
		Actions: []ActionRecord{
			{PlayerID: 0, Street: Preflop, Action: "Call"},
			{PlayerID: 1, Street: Flop, Action: "Check"},
		},
	})
	assert.NoError(t, err)
}

func TestActionRecordMarshalsBareStringForUnsizedActions(t *testing.T) {
	for _, action := range []string{"Fold", "Check", "Call", "AllIn"} {
		rec := ActionRecord{PlayerID: 1, Street: Flop, Action: action, Amount: 0}
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.JSONEq(t, `{"player_id":1,"street":"Flop","action":"`+action+`"}`, string(data))
	}
}

func TestActionRecordMarshalsTaggedObjectForBetAndRaise(t *testing.T) {
	bet := ActionRecord{PlayerID: 0, Street: Preflop, Action: "Bet", Amount: 50}
	data, err := json.Marshal(bet)
	require.NoError(t, err)
	assert.JSONEq(t, `{"player_id":0,"street":"Preflop","action":{"Bet":50}}`, string(data))

	raise := ActionRecord{PlayerID: 1, Street: Turn, Action: "Raise", Amount: 200}
	data, err = json.Marshal(raise)
	require.NoError(t, err)
	assert.JSONEq(t, `{"player_id":1,"street":"Turn","action":{"Raise":200}}`, string(data))
}

func TestActionRecordRoundTripsThroughJSON(t *testing.T) {
	records := []ActionRecord{
		{PlayerID: 0, Street: Preflop, Action: "Fold"},
		{PlayerID: 1, Street: Flop, Action: "Check"},
		{PlayerID: 0, Street: Turn, Action: "Call"},
		{PlayerID: 1, Street: River, Action: "AllIn"},
		{PlayerID: 0, Street: Preflop, Action: "Bet", Amount: 100},
		{PlayerID: 1, Street: Flop, Action: "Raise", Amount: 300},
	}
	for _, rec := range records {
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		var decoded ActionRecord
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, rec, decoded)
	}
}

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return parsed
}
