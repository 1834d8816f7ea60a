// Package translate formats user visible messages for the host locale.
package translate

//go:generate go tool gotext -srclang=en-US update -out=catalog.go -lang=en-US github.com/ezrec/ehbc/...

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Locales returns the host locales, or en-US if none are available.
func Locales() []string {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ehbc: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{language.AmericanEnglish.String()}
	}

	return locales
}

func getPrinter() *message.Printer {
	printerOnce.Do(func() {
		printer = message.NewPrinter(message.MatchLanguage(Locales()...))
	})

	return printer
}

// SetLanguage replaces the printer with one for a specific language tag.
func SetLanguage(tag language.Tag) {
	printerOnce.Do(func() {})
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return getPrinter().Sprintf(key, args...)
}

// Logf logs an en-US Printf() format, translated.
func Logf(key message.Reference, args ...any) {
	log.Print(From(key, args...))
}
