package constants

// Queue names. Payload shapes live in internals/mq/jobs.go.
const (
	QueueGenerateBill         = "generate-bill"
	QueueSendLineNotification = "send-line-notification"
)

// Worker prefetch per queue (concurrent in-flight deliveries).
const (
	PrefetchGenerateBill = 5
	PrefetchNotification = 10
)
