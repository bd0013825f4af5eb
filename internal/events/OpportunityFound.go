package events

import "github.com/oppradar/oppradar/internal/domain/models"

var OpportunityFoundTopic = "OpportunityFoundEvent"

type OpportunityFound struct {
	SearchID string
	Title    string
	Url      string
	Type     models.OpportunityType
	Country  string
}
