// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the auth ports. To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	provider := mocks.NewMockIdentityProvider(ctrl)
//	provider.EXPECT().SignIn(gomock.Any(), "a@b.c", "pw").Return(result, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=identity_provider_mock.go github.com/nardonidigital/agency-api/internal/ports IdentityProvider

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/nardonidigital/agency-api/internal/ports SessionStore
