package mocks

import (
	"context"

	"apmatch/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockBriefArchive struct {
	mock.Mock
}

func (m *MockBriefArchive) Save(ctx context.Context, b model.ResolutionBrief) (string, error) {
	args := m.Called(ctx, b)
	return args.String(0), args.Error(1)
}

func (m *MockBriefArchive) Load(ctx context.Context, invoiceNumber string) (model.ResolutionBrief, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Get(0).(model.ResolutionBrief), args.Error(1)
}
