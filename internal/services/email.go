package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/EduardKrecmer/pizzeria/internal/models"
)

// defaultRestaurantEmail je adresa pizzerie pre notifikácie o objednávkach,
// ak nie je nastavená premenná RESTAURANT_EMAIL.
const defaultRestaurantEmail = "objednavky@pizzeriajanicek.sk"

// EmailService odosiela e-maily cez SMTP. Bez nastavených SMTP údajov
// beží v tichom režime — odoslanie sa len zaloguje.
type EmailService struct {
	dialer     *gomail.Dialer
	from       string
	restaurant string
}

// NewEmailService vytvorí EmailService z premenných prostredia
// (SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, RESTAURANT_EMAIL).
func NewEmailService() *EmailService {
	restaurant := os.Getenv("RESTAURANT_EMAIL")
	if restaurant == "" {
		restaurant = defaultRestaurantEmail
	}

	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		log.Println("SMTP údaje nie sú nastavené. Odosielanie e-mailov je vypnuté.")
		return &EmailService{
			dialer:     nil,
			from:       "Pizzeria Janíček <" + defaultRestaurantEmail + ">",
			restaurant: restaurant,
		}
	}

	return &EmailService{
		dialer:     gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass),
		from:       "Pizzeria Janíček <" + smtpUser + ">",
		restaurant: restaurant,
	}
}

// SendCustomerConfirmation pošle zákazníkovi potvrdenie objednávky.
func (es *EmailService) SendCustomerConfirmation(order *models.Order) error {
	if es.dialer == nil {
		log.Printf("E-maily vypnuté. Potvrdenie objednávky #%d pre %s sa neodosiela.", order.ID, order.CustomerEmail)
		return nil
	}

	subject := "Potvrdenie vašej objednávky v Pizzerii Janíček"
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h1 style="color: #4a5d23;">Potvrdenie objednávky č. %d</h1>
			%s
			%s
			<div style="margin: 30px 0; padding: 15px; background-color: #f5f5f5; border-radius: 5px;">
				<p style="margin: 0;">Ďakujeme za vašu objednávku! V prípade akýchkoľvek otázok nás kontaktujte na telefónnom čísle +421 944 386 486.</p>
			</div>
			<p style="font-size: 12px; color: #666; text-align: center;">© Pizzeria Janíček, Púchov. Všetky práva vyhradené.</p>
		</div>
	`, order.ID, formatCustomerBlock(order), formatItemsTable(order))

	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", order.CustomerEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		return err
	}

	log.Printf("Potvrdenie objednávky #%d odoslané na %s", order.ID, order.CustomerEmail)
	return nil
}

// SendRestaurantAlert pošle pizzerii notifikáciu o novej objednávke.
func (es *EmailService) SendRestaurantAlert(order *models.Order) error {
	if es.dialer == nil {
		log.Printf("E-maily vypnuté. Notifikácia o objednávke #%d sa neodosiela.", order.ID)
		return nil
	}

	subject := fmt.Sprintf("NOVÁ OBJEDNÁVKA č. %d - %s", order.ID, order.CustomerName)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h1 style="color: #4a5d23;">NOVÁ OBJEDNÁVKA č. %d</h1>
			<p><strong>Čas objednávky:</strong> %s</p>
			%s
			%s
		</div>
	`, order.ID, order.CreatedAt.Format("02.01.2006 15:04"), formatCustomerBlock(order), formatItemsTable(order))

	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", es.restaurant)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		return err
	}

	log.Printf("Notifikácia o objednávke #%d odoslaná reštaurácii (%s)", order.ID, es.restaurant)
	return nil
}

// formatCustomerBlock zloží HTML blok s kontaktom a spôsobom prevzatia.
func formatCustomerBlock(order *models.Order) string {
	var sb strings.Builder
	sb.WriteString(`<div style="margin: 20px 0;"><h2 style="font-size: 18px;">Kontaktné údaje</h2>`)
	fmt.Fprintf(&sb, "<p><strong>Meno:</strong> %s</p>", order.CustomerName)
	fmt.Fprintf(&sb, "<p><strong>Telefón:</strong> %s</p>", order.CustomerPhone)
	if order.CustomerEmail != "" {
		fmt.Fprintf(&sb, "<p><strong>Email:</strong> %s</p>", order.CustomerEmail)
	}

	if order.DeliveryType == models.DeliveryPickup {
		sb.WriteString("<p><strong>Typ prevzatia:</strong> Osobný odber v reštaurácii</p>")
	} else {
		city := order.DeliveryCity
		if order.DeliveryCityPart != "" {
			city += " (" + order.DeliveryCityPart + ")"
		}
		fmt.Fprintf(&sb, "<p><strong>Adresa doručenia:</strong> %s, %s %s</p>",
			order.DeliveryAddress, city, order.DeliveryPostalCode)
	}

	if order.Notes != "" {
		fmt.Fprintf(&sb, "<p><strong>Poznámka:</strong> %s</p>", order.Notes)
	}
	sb.WriteString("</div>")
	return sb.String()
}

// formatItemsTable zloží HTML tabuľku položiek so súčtami.
func formatItemsTable(order *models.Order) string {
	var sb strings.Builder
	sb.WriteString(`<div style="margin: 20px 0;"><h2 style="font-size: 18px;">Položky objednávky</h2><table style="width: 100%; border-collapse: collapse;">`)

	for _, item := range order.Items {
		extras := ""
		if len(item.Extras) > 0 {
			names := make([]string, 0, len(item.Extras))
			for _, extra := range item.Extras {
				names = append(names, fmt.Sprintf("%s (+%.2f€)", extra.Name, extra.Price))
			}
			extras = `<br><span style="font-size: 12px; color: #666;">+ ` + strings.Join(names, ", ") + `</span>`
		}
		fmt.Fprintf(&sb, `<tr>
			<td style="padding: 8px; border-bottom: 1px solid #ddd;">%s%s</td>
			<td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td>
			<td style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">%d×</td>
			<td style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">%.2f€</td>
		</tr>`, item.Name, extras, sizeLabel(item.Size), item.Quantity, item.Price*float64(item.Quantity))
	}

	if order.DeliveryFee > 0 {
		fmt.Fprintf(&sb, `<tr><td colspan="3" style="text-align: right; padding: 8px;">Doprava:</td><td style="text-align: right; padding: 8px;">%.2f€</td></tr>`, order.DeliveryFee)
	}
	fmt.Fprintf(&sb, `<tr><td colspan="3" style="text-align: right; padding: 8px; border-top: 1px solid #ddd;"><strong>Celková suma:</strong></td><td style="text-align: right; padding: 8px; font-weight: bold;">%.2f€</td></tr>`, order.TotalAmount)
	sb.WriteString("</table></div>")
	return sb.String()
}

// sizeLabel vráti slovenský popis cesta pre e-mail.
func sizeLabel(size models.PizzaSize) string {
	switch size {
	case models.SizeRegular:
		return "Klasické cesto"
	case models.SizeCream:
		return "Smotanový základ"
	case models.SizeGlutenFree:
		return "Bezlepkové cesto"
	case models.SizeVegan:
		return "Vegánska mozzarella"
	case models.SizeThick:
		return "Hrubé cesto"
	default:
		return string(size)
	}
}
