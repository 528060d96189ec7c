package projects

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses
const (
	StatusDraft     = "DRAFT"
	StatusActive    = "ACTIVE"
	StatusPaused    = "PAUSED"
	StatusCompleted = "COMPLETED"
	StatusArchived  = "ARCHIVED"
)

// Project represents a restoration project run by an organization.
type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Organization primitive.ObjectID `bson:"organization" json:"organization"`
	Location     string             `bson:"location" json:"location"`
	ProjectArea  float64            `bson:"projectArea" json:"projectArea"`               // hectares
	Boundary     interface{}        `bson:"boundary,omitempty" json:"boundary,omitempty"` // GeoJSON site boundary
	Centroid     []float64          `bson:"centroid,omitempty" json:"centroid,omitempty"` // [lon, lat] map pin
	BaselineData interface{}        `bson:"baselineData,omitempty" json:"baselineData,omitempty"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ListedProject is a Project with the organization reference flattened to
// the organization's name, the shape the dashboards consume.
type ListedProject struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Organization *string            `bson:"organization" json:"organization"`
	Location     string             `bson:"location" json:"location"`
	ProjectArea  float64            `bson:"projectArea" json:"projectArea"`
	Centroid     []float64          `bson:"centroid,omitempty" json:"centroid,omitempty"`
	BaselineData interface{}        `bson:"baselineData,omitempty" json:"baselineData,omitempty"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateProjectRequest is the payload for registering a project.
type CreateProjectRequest struct {
	Name         string          `json:"name"`
	Organization string          `json:"organization"`
	Location     string          `json:"location"`
	ProjectArea  float64         `json:"projectArea"`
	Boundary     json.RawMessage `json:"boundary"`
	BaselineData interface{}     `json:"baselineData"`
}

// MonitoringRecordView is one evidence record shaped for the project
// monitoring screen.
type MonitoringRecordView struct {
	ID           string      `json:"id"`
	Timestamp    string      `json:"timestamp"`
	Evidence     string      `json:"evidence"`
	EvidenceType string      `json:"evidenceType"`
	Status       string      `json:"status"`
	DataPayload  PayloadView `json:"dataPayload"`
}

// PayloadView is the free-form payload reduced to the fields the screen shows.
type PayloadView struct {
	SpeciesPlanted string `json:"speciesPlanted"`
	NumberOfTrees  string `json:"numberOfTrees"`
	Notes          string `json:"notes"`
}

// MonitoringView is the GET /api/project/:id/monitoring response.
type MonitoringView struct {
	ProjectName       string                 `json:"projectName"`
	ProjectInfo       ProjectInfo            `json:"projectInfo"`
	MonitoringRecords []MonitoringRecordView `json:"monitoringRecords"`
}

type ProjectInfo struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
}
