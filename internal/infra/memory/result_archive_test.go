package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mbti-service/internal/domain"
)

func TestResultArchiveTypeCounts(t *testing.T) {
	ctx := context.Background()
	archive := NewResultArchive()

	for _, code := range []domain.TypeCode{"INFP", "ESTJ", "INFP", "ENTP"} {
		require.NoError(t, archive.Archive(ctx, "s", sampleRecord(code)))
	}

	counts, err := archive.TypeCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TypeCount{
		{TypeCode: "INFP", Count: 2},
		{TypeCode: "ENTP", Count: 1},
		{TypeCode: "ESTJ", Count: 1},
	}, counts)
	assert.Equal(t, 4, archive.Len())
}
