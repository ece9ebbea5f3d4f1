// Package utils provides common utility functions for booking-bridge.
// It contains loose-typed conversion helpers used when reading webhook
// payloads and ledger API responses, whose JSON decodes into map[string]any
// with serializer-dependent value types.
package utils
