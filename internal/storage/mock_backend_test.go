package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Load(ctx context.Context, profile string) (map[string]string, error) {
	args := m.Called(ctx, profile)
	values, _ := args.Get(0).(map[string]string)
	return values, args.Error(1)
}

func (m *mockBackend) Store(ctx context.Context, profile, key, value string) error {
	return m.Called(ctx, profile, key, value).Error(0)
}

func (m *mockBackend) Delete(ctx context.Context, profile, key string) error {
	return m.Called(ctx, profile, key).Error(0)
}

func (m *mockBackend) Profiles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *mockBackend) Close() error {
	return m.Called().Error(0)
}
