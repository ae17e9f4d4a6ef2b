package mocks

import (
	"context"

	"apmatch/internal/ledger"
	"github.com/stretchr/testify/mock"
)

type MockPoster struct {
	mock.Mock
}

func (m *MockPoster) Post(ctx context.Context, p ledger.Payload) (ledger.Posting, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(ledger.Posting), args.Error(1)
}
