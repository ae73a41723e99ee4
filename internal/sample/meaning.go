package sample

import "strings"

var abbreviations = map[string]string{
	// Common Nouns
	"nm": "name", "dt": "date", "no": "number", "cd": "code",
	"desc": "description", "amt": "amount", "cnt": "count", "qty": "quantity",
	"addr": "address", "tel": "phone", "ph": "phone", "mail": "email",
	"acct": "account", "acc": "account", "ccy": "currency", "bal": "balance",
	"msg": "message", "txt": "text", "subj": "subject", "doc": "document",
	"cust": "customer", "inv": "invoice", "co": "company", "ctry": "country",

	// Status
	"yn": "yesno", "is": "yesno", "flg": "flag", "stat": "status",
}

// Meaning expands abbreviations in a snake_case column name,
// e.g. "cust_addr" becomes "customer address".
func Meaning(colName string) string {
	parts := strings.Split(strings.ToLower(colName), "_")
	for i, part := range parts {
		if full, ok := abbreviations[part]; ok {
			parts[i] = full
		}
	}
	return strings.Join(parts, " ")
}
