package repository

import (
	"context"
	"regexp"
	"testing"

	"nclex_keys/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var programCols = []string{"id", "name", "description", "price", "duration", "features", "is_active", "created_at"}

func TestProgramRepository_Create_NilFeatures(t *testing.T) {
	mock := newMockDB(t)
	repo := NewProgramRepository(mock)
	id := uuid.New()
	program := &model.Program{Name: "NCLEX-RN", Price: 25000, IsActive: true}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO programs")).
		WithArgs("NCLEX-RN", "", int64(25000), "", []string{}, true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, fixedTime))

	require.NoError(t, repo.Create(context.Background(), program))
	assert.Equal(t, id, program.ID)
	assert.NotNil(t, program.Features)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepository_ListActive(t *testing.T) {
	mock := newMockDB(t)
	repo := NewProgramRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE is_active = TRUE ORDER BY price ASC")).
		WillReturnRows(pgxmock.NewRows(programCols).
			AddRow(uuid.New(), "NCLEX-PN", "", int64(15000), "8 weeks", []string{"Live classes"}, true, fixedTime).
			AddRow(uuid.New(), "NCLEX-RN", "", int64(25000), "12 weeks", []string{}, true, fixedTime))

	programs, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, []string{"Live classes"}, programs[0].Features)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepository_FindByID_NotFound(t *testing.T) {
	mock := newMockDB(t)
	repo := NewProgramRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM programs WHERE id = $1")).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	program, err := repo.FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, program)
}

func TestProgramRepository_Update_NotFound(t *testing.T) {
	mock := newMockDB(t)
	repo := NewProgramRepository(mock)
	program := &model.Program{ID: uuid.New(), Name: "Gone", Features: []string{"x"}}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE programs")).
		WithArgs("Gone", "", int64(0), "", []string{"x"}, false, program.ID).
		WillReturnError(pgx.ErrNoRows)

	assert.ErrorIs(t, repo.Update(context.Background(), program), ErrNotFound)
}
