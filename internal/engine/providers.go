package engine

import "context"

// PassthroughLocationResolver returns the raw location untouched. Stands in
// until a geocoding collaborator is wired.
type PassthroughLocationResolver struct{}

// Resolve implements LocationResolver.
func (PassthroughLocationResolver) Resolve(_ context.Context, raw string) (string, error) {
	return raw, nil
}

// StaticDeviceStatus reports a fixed status for every device. Stands in until
// the device telemetry collaborator is wired.
type StaticDeviceStatus struct {
	Value string
}

// Status implements DeviceStatusProvider.
func (s StaticDeviceStatus) Status(_ context.Context, _ string) (string, error) {
	return s.Value, nil
}
