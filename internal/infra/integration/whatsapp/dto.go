package whatsapp

type Parameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type SendMessageInput struct {
	PhoneNumber  string
	TemplateName string
	Parameters   []Parameter
}

type SendMessageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}
