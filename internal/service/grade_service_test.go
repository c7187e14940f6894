package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

func TestGradeServiceUpsert_ReplacesExistingPair(t *testing.T) {
	store := rosterFixture()
	svc := NewGradeService(store, nil, zap.NewNop())

	student, err := svc.Upsert("S001", UpsertGradeRequest{Subject: "Mathematics", Term: 1, Score: 95})
	require.NoError(t, err)

	count := 0
	for _, g := range student.Grades {
		if g.Subject == "Mathematics" && g.Term == 1 {
			count++
			assert.Equal(t, 95.0, g.Score)
		}
	}
	assert.Equal(t, 1, count)
	// The term-2 Mathematics grade is a different pair and stays untouched.
	g, ok := student.GradeFor("Mathematics", 2)
	require.True(t, ok)
	assert.Equal(t, 91.0, g.Score)
}

func TestGradeServiceUpsert_Validation(t *testing.T) {
	svc := NewGradeService(rosterFixture(), nil, zap.NewNop())

	_, err := svc.Upsert("S001", UpsertGradeRequest{Subject: "Mathematics", Term: 4, Score: 50})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Upsert("S001", UpsertGradeRequest{Subject: "Mathematics", Term: 1, Score: 101})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Upsert("S001", UpsertGradeRequest{Term: 1, Score: 50})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGradeServiceUpsert_UnknownStudent(t *testing.T) {
	svc := NewGradeService(rosterFixture(), nil, zap.NewNop())

	_, err := svc.Upsert("ghost", UpsertGradeRequest{Subject: "Mathematics", Term: 1, Score: 80})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGradeServiceTable(t *testing.T) {
	svc := NewGradeService(rosterFixture(), nil, zap.NewNop())

	rows, err := svc.Table(1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]GradeTableRow{}
	for _, row := range rows {
		byID[row.StudentID] = row
	}
	alex := byID["S001"]
	assert.Equal(t, 88.0, alex.Scores["Mathematics"])
	assert.Equal(t, 92.0, alex.Scores["Science"])
	assert.InDelta(t, 90.0, alex.Average, 0.001)
	// Term-2 scores must not leak into the term-1 table.
	assert.Len(t, alex.Scores, 2)

	sarah := byID["S002"]
	assert.Equal(t, 85.0, sarah.Scores["English"])
	assert.InDelta(t, 85.0, sarah.Average, 0.001)

	_, err = svc.Table(0)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
