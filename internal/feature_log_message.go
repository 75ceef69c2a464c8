package internal

import "time"

const FeatureLogMessageType = "featureLogMessage"

// FeatureLogMessage is one structured log line: which feature produced it
// and which object (correlation id, station id) it concerns.
type FeatureLogMessage struct {
	Time       string    `json:"time" bson:"time"`
	TimeStamp  time.Time `json:"timestamp" bson:"timestamp"`
	Feature    string    `json:"feature" bson:"feature"`
	ObjectId   string    `json:"id" bson:"object_id"`
	Text       string    `json:"text" bson:"text"`
	Importance string    `json:"importance" bson:"importance"`
}

func (fm *FeatureLogMessage) MessageType() string {
	return FeatureLogMessageType
}

func (fm *FeatureLogMessage) DataType() string {
	return FeatureLogMessageType
}
