package mailer

// Template names understood by the worker.
const TemplateOrderConfirmation = "order_confirmation"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email.
type EmailJob struct {
	To       string `json:"to"`
	Template string `json:"template"`
	Data     any    `json:"data,omitempty"`
}

// OrderItem is one confirmed line in an order confirmation mail.
type OrderItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Noodle   string `json:"noodle"`
}

// OrderConfirmationData fills the order confirmation template.
type OrderConfirmationData struct {
	Account string      `json:"account"`
	OrderID string      `json:"order_id"`
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	Items   []OrderItem `json:"items"`
	Total   int         `json:"total"`
}
