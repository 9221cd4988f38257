package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"ledgerimport/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockImporter struct {
	mock.Mock
}

func (m *mockImporter) Import(ctx context.Context) (models.ImportCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ImportCounts), args.Error(1)
}

type mockViews struct {
	mock.Mock
}

func (m *mockViews) ProvisionViews(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestShouldProvisionViews(t *testing.T) {
	tests := []struct {
		name     string
		counts   models.ImportCounts
		expected bool
	}{
		{"all loaded", models.ImportCounts{Clients: 2, Accounts: 2, Transactions: 3}, true},
		{"no clients", models.ImportCounts{Clients: 0, Accounts: 5, Transactions: 5}, false},
		{"no accounts", models.ImportCounts{Clients: 5, Accounts: 0, Transactions: 5}, false},
		{"no transactions", models.ImportCounts{Clients: 5, Accounts: 5, Transactions: 0}, false},
		{"failed run", models.ImportCounts{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldProvisionViews(tt.counts))
		})
	}
}

func TestImportAndReport_Success(t *testing.T) {
	ctx := context.Background()
	importer := new(mockImporter)
	views := new(mockViews)
	importer.On("Import", ctx).Return(models.ImportCounts{Clients: 2, Accounts: 2, Transactions: 3}, nil)
	views.On("ProvisionViews", ctx).Return(nil)

	var out bytes.Buffer
	counts := ImportAndReport(ctx, &out, importer, views)

	assert.Equal(t, models.ImportCounts{Clients: 2, Accounts: 2, Transactions: 3}, counts)
	assert.Equal(t, "Data Import Completed [2, 2, 3]\n", out.String())
	views.AssertCalled(t, "ProvisionViews", ctx)
}

func TestImportAndReport_FailedImportSkipsViews(t *testing.T) {
	ctx := context.Background()
	importer := new(mockImporter)
	views := new(mockViews)
	importer.On("Import", ctx).Return(models.ImportCounts{}, errors.New("bulk fetch failed"))

	var out bytes.Buffer
	ImportAndReport(ctx, &out, importer, views)

	assert.Equal(t, "Data Import Completed [0, 0, 0]\n", out.String())
	views.AssertNotCalled(t, "ProvisionViews", mock.Anything)
}

func TestImportAndReport_EmptyDatasetSkipsViews(t *testing.T) {
	ctx := context.Background()
	importer := new(mockImporter)
	views := new(mockViews)
	importer.On("Import", ctx).Return(models.ImportCounts{Clients: 5, Accounts: 5, Transactions: 0}, nil)

	var out bytes.Buffer
	ImportAndReport(ctx, &out, importer, views)

	assert.Equal(t, "Data Import Completed [5, 5, 0]\n", out.String())
	views.AssertNotCalled(t, "ProvisionViews", mock.Anything)
}

func TestImportAndReport_ViewFailureStillReports(t *testing.T) {
	ctx := context.Background()
	importer := new(mockImporter)
	views := new(mockViews)
	importer.On("Import", ctx).Return(models.ImportCounts{Clients: 1, Accounts: 1, Transactions: 1}, nil)
	views.On("ProvisionViews", ctx).Return(errors.New("permission denied"))

	var out bytes.Buffer
	counts := ImportAndReport(ctx, &out, importer, views)

	assert.Equal(t, models.ImportCounts{Clients: 1, Accounts: 1, Transactions: 1}, counts)
	assert.Equal(t, "Data Import Completed [1, 1, 1]\n", out.String())
}
