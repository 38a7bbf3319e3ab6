package orders

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

const messagingBaseURL = "https://wa.me/"

// BuildSupplierMessage redacta el pedido para el proveedor: saludo, una viñeta por línea y cierre.
func BuildSupplierMessage(supplier entity.Supplier, lines []entity.OrderLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá %s!\n\n", supplier.Name)
	b.WriteString("Preciso dos seguintes itens:\n\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "• %s %s de %s\n", l.Quantity, l.Product.Unit, l.Product.Name)
	}
	b.WriteString("\nPor favor, confirme a disponibilidade e o valor total.\n\n")
	b.WriteString("Obrigado!")
	return b.String()
}

// MessageLink construye https://wa.me/<cc><dígitos>?text=<mensaje>. El teléfono se reduce a sus dígitos;
// devuelve false si no queda ninguno.
func MessageLink(countryCode, phone, message string) (string, bool) {
	digits := onlyDigits(phone)
	if digits == "" {
		return "", false
	}
	return messagingBaseURL + onlyDigits(countryCode) + digits + "?text=" + escapeComponent(message), true
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// componentUnescaper deshace lo que QueryEscape escapa de más respecto de un componente de URI:
// el espacio va como %20 y ! ' ( ) * quedan literales.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
