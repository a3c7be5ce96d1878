package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Analysis is the opaque AI analysis document attached to a response.
type Analysis struct {
	ResponseID string    `json:"response_id" bson:"_id"`
	Payload    bson.M    `json:"payload" bson:"payload"`
	ReceivedAt time.Time `json:"received_at" bson:"received_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
