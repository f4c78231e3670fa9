package notify

import (
	"context"
	"fmt"

	"github.com/homelead/territory-api/internal/infra/integration/textgrid"
)

type SMSSender struct {
	client *textgrid.Client
}

func NewSMSSender(client *textgrid.Client) *SMSSender {
	return &SMSSender{client: client}
}

func (s *SMSSender) SendLeadAlert(ctx context.Context, number string, notice LeadNotice) error {
	body := fmt.Sprintf("New lead in %s: %s", notice.ZipCode, notice.Name)
	if notice.Phone != "" {
		body += " " + notice.Phone
	}
	body += " - check your dashboard for details."

	return s.client.SendMessage(ctx, textgrid.SendMessageInput{
		To:   number,
		Body: body,
	})
}
