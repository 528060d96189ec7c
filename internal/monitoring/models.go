package monitoring

import (
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Evidence types
const (
	EvidenceGeotaggedPhoto = "GEOTAGGED_PHOTO"
	EvidenceDroneFootage   = "DRONE_FOOTAGE"
	EvidenceSatellite      = "SATELLITE"
	EvidenceOther          = "OTHER"
)

// Monitoring update statuses
const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// MaxUploadSize caps evidence uploads at 15 MB.
const MaxUploadSize = 15 << 20

// MonitoringUpdate is one field-submitted evidence record tied to a project.
type MonitoringUpdate struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty" json:"_id"`
	Project      primitive.ObjectID     `bson:"project" json:"project"`
	SubmittedBy  primitive.ObjectID     `bson:"submittedBy" json:"submittedBy"`
	Timestamp    time.Time              `bson:"timestamp" json:"timestamp"`
	EvidenceType string                 `bson:"evidenceType" json:"evidenceType"`
	IPFSHash     string                 `bson:"ipfsHash" json:"ipfsHash"`
	FilePath     string                 `bson:"filePath" json:"filePath"`
	DataPayload  map[string]interface{} `bson:"dataPayload,omitempty" json:"dataPayload,omitempty"`
	Status       string                 `bson:"status" json:"status"`
	CreatedAt    time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// IngestRequest carries one evidence submission: the uploaded image plus
// its structured metadata.
type IngestRequest struct {
	ProjectID    string
	SubmittedBy  string
	EvidenceType string
	FileName     string
	ContentType  string
	FileSize     int64
	File         io.Reader
	DataPayload  string // JSON string, optional
}

// NormalizeEvidenceType maps free input onto the evidence type enum.
// Unrecognized values fall back to OTHER.
func NormalizeEvidenceType(input string) string {
	switch input {
	case EvidenceGeotaggedPhoto, EvidenceDroneFootage, EvidenceSatellite, EvidenceOther:
		return input
	default:
		return EvidenceOther
	}
}
