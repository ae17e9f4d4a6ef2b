package mocks

import (
	"context"

	"apmatch/internal/ledger"
	"apmatch/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockPostingRepository struct {
	mock.Mock
}

func (m *MockPostingRepository) Create(ctx context.Context, p *ledger.Posting) (*ledger.Posting, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Posting), args.Error(1)
}

func (m *MockPostingRepository) FindByInvoice(ctx context.Context, invoiceNumber string) (*ledger.Posting, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Posting), args.Error(1)
}

func (m *MockPostingRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[ledger.Posting], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[ledger.Posting]), args.Error(1)
}
