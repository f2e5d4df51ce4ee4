package service

import (
	"testing"
)

func TestNotificationServiceStartWithoutBus(t *testing.T) {
	// A failed NATS connection leaves the container with a nil subscriber.
	// Start must degrade to a no-op instead of panicking the process.
	svc := NewNotificationService(nil, nil, nil, nopLogger{})

	svc.Start()
}
