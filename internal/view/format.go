package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats a whole-dollar amount, e.g. 1200 -> "$1,200".
func Money(amount int) string {
	return printer.Sprintf("$%d", amount)
}
