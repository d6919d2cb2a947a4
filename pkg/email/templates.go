package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	orderConfirmTmpl *template.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	orderConfirmTmpl, err := template.New("orderConfirmation").Parse(orderConfirmationTemplate)
	if err != nil {
		return nil, err
	}

	return &TemplateManager{orderConfirmTmpl: orderConfirmTmpl}, nil
}

// OrderConfirmationData holds the dynamic data for the confirmation email.
type OrderConfirmationData struct {
	Name          string
	OrderID       string
	Total         string
	PaymentMethod string
	AddressLine   string
	City          string
}

// GenerateOrderConfirmationHTML executes the confirmation template.
func (tm *TemplateManager) GenerateOrderConfirmationHTML(data OrderConfirmationData) (string, error) {
	var body bytes.Buffer
	if err := tm.orderConfirmTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// GenerateOrderConfirmationText renders the plain-text alternative.
func (tm *TemplateManager) GenerateOrderConfirmationText(data OrderConfirmationData) string {
	return fmt.Sprintf(
		"Hi %s, your order %s is confirmed. Total: %s, paid via %s. Delivering to %s, %s.",
		data.Name, data.OrderID, data.Total, data.PaymentMethod, data.AddressLine, data.City,
	)
}

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Order Confirmed</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Thanks for your order, {{.Name}}!</h2>
	<p>Your order <strong>{{.OrderID}}</strong> has been placed successfully.</p>
	<p>Order total: <strong>{{.Total}}</strong> ({{.PaymentMethod}})</p>
	<p>Delivering to: {{.AddressLine}}, {{.City}}</p>
	<p>We will let you know as soon as it ships.</p>
</body>
</html>
`
