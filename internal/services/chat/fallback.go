package chat

import "strings"

// Правила заготовленных ответов. Порядок значим и является контрактом:
// сообщение может зацепить несколько тем ("track my quote"), выигрывает
// первое совпадение сверху вниз.
type fallbackRule struct {
	keywords []string
	reply    string
}

var fallbackRules = []fallbackRule{
	{
		keywords: []string{"track", "shipment"},
		reply:    "To track your shipment, please visit our Track page and enter your tracking number. Would you like me to guide you there?",
	},
	{
		keywords: []string{"quote", "price", "cost"},
		reply:    "I'd be happy to help you get a quote! Please visit our Quote page or I can connect you with our sales team.",
	},
	{
		keywords: []string{"service"},
		reply:    "We offer Ocean Freight, Air Freight, Land Transport, and Warehouse Solutions. Visit our Services page for more details!",
	},
	{
		keywords: []string{"contact", "phone", "email"},
		reply:    "You can reach us at contact@focuslogistics.com or visit our Contact page.",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hello! Welcome to FOCUS Logistics. How can I assist you with your shipping needs today?",
	},
}

const fallbackDefaultReply = "Thank you for your message! I'm here to help with shipping inquiries, quotes, and tracking. What would you like to know?"

func fallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return fallbackDefaultReply
}
