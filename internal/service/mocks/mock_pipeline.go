package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"apmatch/internal/model"
	"apmatch/internal/service"
)

type MockInvoicePipeline struct {
	mock.Mock
}

func (m *MockInvoicePipeline) Process(ctx context.Context, inv model.InvoiceRecord) (*service.ProcessOutcome, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessOutcome), args.Error(1)
}
