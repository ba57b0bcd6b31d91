package view

type AdminOrderEvent struct {
	Field       string `json:"field"`
	From        string `json:"from"`
	To          string `json:"to"`
	ActorUserID string `json:"actor_user_id"`
	Note        string `json:"note,omitempty"`
	At          string `json:"at"`
}
