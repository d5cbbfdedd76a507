//go:build tools

package tools

// Mocks are generated with the mockery binary (v2), configured by
// .mockery.yaml. Run: mockery (from the repository root).
