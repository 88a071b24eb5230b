package queries_test

import (
	"testing"

	"careshift/internal/core/application/usecases/queries"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAllJobPostsQuery_Valid(t *testing.T) {
	workerID := kernel.NewUUID()

	query, err := queries.NewGetAllJobPostsQuery(
		queries.JobPostFilter{
			Statuses: []jobpost.Status{jobpost.Open},
			DateFrom: "2030-05-01",
			DateTo:   "2030-05-31",
		},
		&workerID, 2, 50,
	)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	assert.Equal(t, 2, query.Page())
	assert.Equal(t, 50, query.PageSize())
	require.NotNil(t, query.WorkerID())
	assert.True(t, query.WorkerID().IsEqual(workerID))
}

func TestNewGetAllJobPostsQuery_DefaultPageSize(t *testing.T) {
	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, nil, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultPageSize, query.PageSize())
}

func TestNewGetAllJobPostsQuery_InvalidPage(t *testing.T) {
	_, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, nil, 0, 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetAllJobPostsQuery_PageSizeTooLarge(t *testing.T) {
	_, err := queries.NewGetAllJobPostsQuery(
		queries.JobPostFilter{}, nil, 1, queries.MaxPageSize+1,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetAllJobPostsQuery_InvalidDateFilter(t *testing.T) {
	_, err := queries.NewGetAllJobPostsQuery(
		queries.JobPostFilter{DateFrom: "05/01/2030"}, nil, 1, 20,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetAllJobPostsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllJobPostsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllJobPostsQueryIsNotConstructed)
}
