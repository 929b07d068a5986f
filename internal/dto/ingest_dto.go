package dto

// PublishEmbedTicketMessage asks the embedding consumer to vectorize one
// stored ticket.
type PublishEmbedTicketMessage struct {
	EntityId string `json:"entity_id"`
}
