package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
)

// Client fala com a API Cloud do WhatsApp Business. Toda mensagem sai de
// template pré-aprovado em pt_BR.
type Client struct {
	accessToken string
	phoneID     string
	baseURL     string
}

func NewClient() *Client {
	return &Client{
		accessToken: os.Getenv("WHATSAPP_ACCESS_TOKEN"),
		phoneID:     os.Getenv("WHATSAPP_PHONE_ID"),
		baseURL:     "https://graph.facebook.com/v18.0",
	}
}

func (c *Client) SendMessage(input SendMessageInput) error {
	if c.accessToken == "" || c.phoneID == "" {
		log.Println("⚠️ WhatsApp: ACCESS_TOKEN ou PHONE_ID não configurados")
		return fmt.Errorf("whatsapp não configurado")
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                input.PhoneNumber,
		"type":              "template",
		"template": map[string]interface{}{
			"name": input.TemplateName,
			"language": map[string]string{
				"code": "pt_BR",
			},
			"components": []map[string]interface{}{
				{
					"type":       "body",
					"parameters": input.Parameters,
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ WhatsApp: Erro ao serializar payload: %v", err)
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("❌ WhatsApp: Erro ao enviar mensagem: %v", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("❌ WhatsApp: API retornou status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("whatsapp api error: %d", resp.StatusCode)
	}

	return nil
}

// SendAssignmentAlert avisa o corretor que recebeu leads. O template tem
// dois parâmetros: nome do corretor e quantidade de leads.
func (c *Client) SendAssignmentAlert(phone, brokerName string, leadCount int) error {
	templateID := os.Getenv("WHATSAPP_ASSIGNMENT_TEMPLATE")
	if templateID == "" {
		templateID = "novos_leads_atribuidos"
	}

	return c.SendMessage(SendMessageInput{
		PhoneNumber:  phone,
		TemplateName: templateID,
		Parameters: []Parameter{
			{Type: "text", Text: brokerName},
			{Type: "text", Text: strconv.Itoa(leadCount)},
		},
	})
}
