package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mbti-service/internal/domain"
)

func TestResultStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore(time.Minute)

	_, err := store.Get(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrResultNotFound)

	first := sampleRecord("ESTJ")
	require.NoError(t, store.Put(ctx, "s1", first))
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := sampleRecord("INFP")
	require.NoError(t, store.Put(ctx, "s1", second))
	got, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	require.NoError(t, store.Clear(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestResultStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore(0)

	require.NoError(t, store.Put(ctx, "s1", sampleRecord("ESTJ")))
	require.NoError(t, store.Clear(ctx, "s2"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.TypeCode("ESTJ"), got.TypeCode)
}

func TestResultStoreExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewResultStoreWithClock(30*time.Minute, func() time.Time { return now })

	require.NoError(t, store.Put(ctx, "s1", sampleRecord("ESTJ")))
	require.NoError(t, store.Put(ctx, "s2", sampleRecord("INFP")))

	now = now.Add(29 * time.Minute)
	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrResultNotFound)

	assert.Equal(t, 1, store.Sweep())
}

func TestResultStoreCopiesRecords(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore(0)
	record := sampleRecord("ESTJ")

	require.NoError(t, store.Put(ctx, "s1", record))
	record.Tally["E"] = 99
	record.Answers[1] = domain.ChoiceB

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Tally["E"])
	assert.Equal(t, domain.ChoiceA, got.Answers[1])
}

func TestResultStoreKeepsNilMaps(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore(0)
	record := domain.ResultRecord{TypeCode: "ESTJ"}

	require.NoError(t, store.Put(ctx, "s1", record))
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, record, got)
	assert.Nil(t, got.Tally)
	assert.Nil(t, got.Answers)
}

func sampleRecord(code domain.TypeCode) domain.ResultRecord {
	return domain.ResultRecord{
		TypeCode: code,
		Tally:    domain.ScoreTally{"E": 2, "I": 0, "S": 3, "N": 0, "T": 3, "F": 0, "J": 2, "P": 0},
		Answers:  domain.AnswerSet{1: domain.ChoiceA, 2: domain.ChoiceA},
		ScoredAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}
