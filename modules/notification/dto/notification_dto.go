package dto

type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}

type CreateNotificationRequest struct {
	UserAddr string                 `json:"user_addr"`
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Type     string                 `json:"type"`
	Data     map[string]interface{} `json:"data"`
}
