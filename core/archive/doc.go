// Package archive stores raw webhook payloads in object storage.
//
// Every accepted delivery is written as a JSON object under
// webhooks/<date>/<ray-id>.json before the synchronization job is enqueued.
// Archiving is best-effort: a storage failure is logged and the delivery
// still proceeds, so the archive can never block intake.
//
// The backend is any S3-compatible store reachable through the Minio client.
package archive
